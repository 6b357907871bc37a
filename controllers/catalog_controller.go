package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sarrafiye/goldweb/catalog"
	"github.com/sarrafiye/goldweb/utils"
)

// CatalogController serves the historical-collection showcase. The catalog
// is read-only on this side; curation happens out of band.
type CatalogController struct {
	svc *catalog.Service
}

// NewCatalogController creates a new CatalogController instance.
func NewCatalogController(svc *catalog.Service) *CatalogController {
	return &CatalogController{svc: svc}
}

// ListProducts returns catalog products, newest first, optionally narrowed
// by category and a case-insensitive search over name and description.
func (c *CatalogController) ListProducts(ctx *gin.Context) {
	if _, err := c.svc.RefreshProducts(ctx.Request.Context()); err != nil {
		respondCatalogError(ctx, err)
		return
	}

	filter := catalog.Filter{
		Category:    strings.TrimSpace(ctx.DefaultQuery("category", catalog.CategoryAll)),
		SearchQuery: strings.TrimSpace(ctx.Query("search")),
	}
	utils.Success(ctx, gin.H{"items": c.svc.Cache().Filtered(filter)})
}

// GetProduct returns a single catalog product by id.
func (c *CatalogController) GetProduct(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))
	if id == "" {
		utils.Error(ctx, http.StatusBadRequest, 40013, "missing product id")
		return
	}

	product, err := c.svc.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondCatalogError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"product": product})
}

func respondCatalogError(ctx *gin.Context, err error) {
	var fErr *catalog.FetchError
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40404, "product not found")
	case errors.As(err, &fErr):
		utils.Sugar.Errorw("catalog fetch failed", "err", err)
		utils.Error(ctx, http.StatusBadGateway, 50221, "failed to load products")
	default:
		utils.Sugar.Errorw("unexpected catalog error", "err", err)
		utils.Error(ctx, http.StatusInternalServerError, 50000, "internal error")
	}
}
