package blog

import (
	"time"

	"github.com/sarrafiye/goldweb/store"
)

// Collection is the document-store collection holding blog posts.
const Collection = "blogPosts"

// Post is a blog content entity. Content is opaque rich-text HTML and is
// never inspected here.
type Post struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	Excerpt     string     `json:"excerpt"`
	Author      string     `json:"author"`
	Image       string     `json:"image"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	IsPublished bool       `json:"is_published"`
	IsFeatured  bool       `json:"is_featured"`
	Views       int64      `json:"views"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Draft carries the author-supplied fields of a new post. Id, views and
// timestamps are assigned by the repository at creation.
type Draft struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Content     string   `json:"content"`
	Excerpt     string   `json:"excerpt"`
	Author      string   `json:"author"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"is_published"`
	IsFeatured  bool     `json:"is_featured"`
}

// Patch is a partial update. Nil pointers leave the stored value untouched.
type Patch struct {
	Title       *string   `json:"title"`
	Slug        *string   `json:"slug"`
	Content     *string   `json:"content"`
	Excerpt     *string   `json:"excerpt"`
	Author      *string   `json:"author"`
	Image       *string   `json:"image"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	IsPublished *bool     `json:"is_published"`
	IsFeatured  *bool     `json:"is_featured"`
}

// FilterState is the transient, UI-scoped list filter. CategoryAll disables
// category filtering.
type FilterState struct {
	Category      string
	SearchQuery   string
	PublishedOnly bool
}

// CategoryAll is the sentinel meaning "no category filter".
const CategoryAll = "all"

// postFromDoc normalizes a raw store document into a strict Post. Missing
// fields take their zero defaults rather than whatever shape the store
// returned; absent timestamps fall back to now so list ordering stays total.
func postFromDoc(doc store.RawDocument, now time.Time) Post {
	p := Post{
		ID:          doc.String("id"),
		Title:       doc.String("title"),
		Slug:        doc.String("slug"),
		Content:     doc.String("content"),
		Excerpt:     doc.String("excerpt"),
		Author:      doc.String("author"),
		Image:       doc.String("image"),
		Category:    doc.String("category"),
		Tags:        doc.StringSlice("tags"),
		IsPublished: doc.Bool("isPublished"),
		IsFeatured:  doc.Bool("isFeatured"),
		Views:       doc.Int64("views"),
		CreatedAt:   doc.Time("createdAt"),
		UpdatedAt:   doc.Time("updatedAt"),
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	if t := doc.Time("publishedAt"); !t.IsZero() {
		p.PublishedAt = &t
	}
	return p
}

func docFromDraft(d Draft, now time.Time) store.RawDocument {
	doc := store.RawDocument{
		"title":       d.Title,
		"slug":        d.Slug,
		"content":     d.Content,
		"excerpt":     d.Excerpt,
		"author":      d.Author,
		"image":       d.Image,
		"category":    d.Category,
		"tags":        d.Tags,
		"isPublished": d.IsPublished,
		"isFeatured":  d.IsFeatured,
		"views":       int64(0),
		"createdAt":   now.UTC().Format(store.TimeFormat),
		"updatedAt":   now.UTC().Format(store.TimeFormat),
	}
	if d.IsPublished {
		doc["publishedAt"] = now.UTC().Format(store.TimeFormat)
	}
	return doc
}

func docFromPatch(p Patch) store.RawDocument {
	doc := store.RawDocument{}
	if p.Title != nil {
		doc["title"] = *p.Title
	}
	if p.Slug != nil {
		doc["slug"] = *p.Slug
	}
	if p.Content != nil {
		doc["content"] = *p.Content
	}
	if p.Excerpt != nil {
		doc["excerpt"] = *p.Excerpt
	}
	if p.Author != nil {
		doc["author"] = *p.Author
	}
	if p.Image != nil {
		doc["image"] = *p.Image
	}
	if p.Category != nil {
		doc["category"] = *p.Category
	}
	if p.Tags != nil {
		doc["tags"] = *p.Tags
	}
	if p.IsPublished != nil {
		doc["isPublished"] = *p.IsPublished
	}
	if p.IsFeatured != nil {
		doc["isFeatured"] = *p.IsFeatured
	}
	return doc
}
