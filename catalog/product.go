package catalog

import (
	"time"

	"github.com/sarrafiye/goldweb/store"
)

// Collection is the document-store collection holding catalog products.
const Collection = "products"

// CategoryAll is the sentinel meaning "no category filter".
const CategoryAll = "all"

// Product is a piece from the historical collection showcased on the site.
// The catalog is curated out of band; this side only reads it.
type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Period         string    `json:"period"`
	Material       string    `json:"material"`
	Technique      string    `json:"technique"`
	Image          string    `json:"image"`
	Category       string    `json:"category"`
	HistoricalInfo string    `json:"historical_info"`
	IsFeatured     bool      `json:"is_featured"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Filter is the transient list filter: category (CategoryAll disables it)
// and a case-insensitive substring search over name and description.
type Filter struct {
	Category    string
	SearchQuery string
}

// productFromDoc normalizes a raw store document into a strict Product.
// Absent timestamps fall back to now so list ordering stays total.
func productFromDoc(doc store.RawDocument, now time.Time) Product {
	p := Product{
		ID:             doc.String("id"),
		Name:           doc.String("name"),
		Description:    doc.String("description"),
		Period:         doc.String("period"),
		Material:       doc.String("material"),
		Technique:      doc.String("technique"),
		Image:          doc.String("image"),
		Category:       doc.String("category"),
		HistoricalInfo: doc.String("historicalInfo"),
		IsFeatured:     doc.Bool("isFeatured"),
		CreatedAt:      doc.Time("createdAt"),
		UpdatedAt:      doc.Time("updatedAt"),
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	return p
}
