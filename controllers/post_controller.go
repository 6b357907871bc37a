package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sarrafiye/goldweb/blog"
	"github.com/sarrafiye/goldweb/utils"
)

// PostController serves the public blog surface and the admin CRUD surface.
type PostController struct {
	svc *blog.Service
}

// NewPostController creates a new PostController instance.
func NewPostController(svc *blog.Service) *PostController {
	return &PostController{svc: svc}
}

// ListPosts returns published posts, newest first, optionally narrowed by
// category and a case-insensitive search over title, excerpt and content.
func (p *PostController) ListPosts(ctx *gin.Context) {
	if _, err := p.svc.RefreshPosts(ctx.Request.Context(), true); err != nil {
		respondBlogError(ctx, err)
		return
	}

	filter := blog.FilterState{
		Category:      strings.TrimSpace(ctx.DefaultQuery("category", blog.CategoryAll)),
		SearchQuery:   strings.TrimSpace(ctx.Query("search")),
		PublishedOnly: true,
	}
	utils.Success(ctx, gin.H{"items": p.svc.Cache().Filtered(filter)})
}

// GetPost returns a single published post by slug together with its related
// recommendations. Each successful call counts one view.
func (p *PostController) GetPost(ctx *gin.Context) {
	slug := strings.TrimSpace(ctx.Param("slug"))
	if slug == "" {
		utils.Error(ctx, http.StatusBadRequest, 40010, "missing post slug")
		return
	}

	post, err := p.svc.GetBySlug(ctx.Request.Context(), slug)
	if err != nil {
		respondBlogError(ctx, err)
		return
	}

	related, err := p.svc.Related(ctx.Request.Context(), post)
	if err != nil {
		// The detail page is still useful without the widget.
		utils.Sugar.Warnw("related posts unavailable", "slug", slug, "err", err)
		related = nil
	}

	utils.Success(ctx, gin.H{"post": post, "related": related})
}

// AdminListPosts returns all posts including unpublished ones, with the
// same filter surface the management UI exposes.
func (p *PostController) AdminListPosts(ctx *gin.Context) {
	if _, err := p.svc.RefreshPosts(ctx.Request.Context(), false); err != nil {
		respondBlogError(ctx, err)
		return
	}

	filter := blog.FilterState{
		Category:      strings.TrimSpace(ctx.DefaultQuery("category", blog.CategoryAll)),
		SearchQuery:   strings.TrimSpace(ctx.Query("search")),
		PublishedOnly: ctx.Query("published") == "true",
	}
	utils.Success(ctx, gin.H{"items": p.svc.Cache().Filtered(filter)})
}

type postRequest struct {
	Title       string   `json:"title" binding:"required"`
	Slug        string   `json:"slug"`
	Content     string   `json:"content"`
	Excerpt     string   `json:"excerpt" binding:"required"`
	Author      string   `json:"author" binding:"required"`
	Image       string   `json:"image" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"is_published"`
	IsFeatured  bool     `json:"is_featured"`
}

// CreatePost creates a blog post from the admin editor payload.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req postRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	post, err := p.svc.CreatePost(ctx.Request.Context(), blog.Draft{
		Title:       req.Title,
		Slug:        strings.TrimSpace(req.Slug),
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		Author:      req.Author,
		Image:       req.Image,
		Category:    req.Category,
		Tags:        req.Tags,
		IsPublished: req.IsPublished,
		IsFeatured:  req.IsFeatured,
	})
	if err != nil {
		respondBlogError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// UpdatePost applies a partial update to a post; absent fields keep their
// stored values.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))
	if id == "" {
		utils.Error(ctx, http.StatusBadRequest, 40011, "missing post id")
		return
	}

	var patch blog.Patch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid request payload")
		return
	}

	post, err := p.svc.UpdatePost(ctx.Request.Context(), id, patch)
	if err != nil {
		respondBlogError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost removes a post. Deleting an id that is already gone still
// succeeds.
func (p *PostController) DeletePost(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))
	if id == "" {
		utils.Error(ctx, http.StatusBadRequest, 40012, "missing post id")
		return
	}

	if err := p.svc.DeletePost(ctx.Request.Context(), id); err != nil {
		respondBlogError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// respondBlogError maps the blog error taxonomy onto HTTP status and app
// codes.
func respondBlogError(ctx *gin.Context, err error) {
	var (
		vErr *blog.ValidationError
		fErr *blog.FetchError
		mErr *blog.MutationError
	)
	switch {
	case errors.Is(err, blog.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
	case errors.Is(err, blog.ErrUnpublished):
		utils.Error(ctx, http.StatusNotFound, 40402, "post not published")
	case errors.As(err, &vErr):
		utils.Error(ctx, http.StatusBadRequest, 40022, vErr.Error())
	case errors.As(err, &fErr):
		utils.Sugar.Errorw("post fetch failed", "err", err)
		utils.Error(ctx, http.StatusBadGateway, 50220, "failed to load posts")
	case errors.As(err, &mErr):
		utils.Sugar.Errorw("post mutation failed", "err", err)
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to save post")
	default:
		utils.Sugar.Errorw("unexpected blog error", "err", err)
		utils.Error(ctx, http.StatusInternalServerError, 50000, "internal error")
	}
}
