package controllers

import (
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/sarrafiye/goldweb/blog"
	"github.com/sarrafiye/goldweb/utils"
)

// StatsController aggregates content numbers for the admin dashboard.
type StatsController struct {
	repo *blog.Repository
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(repo *blog.Repository) *StatsController {
	return &StatsController{repo: repo}
}

// GetStats returns post totals, aggregate views and the most-read posts.
func (s *StatsController) GetStats(ctx *gin.Context) {
	posts, err := s.repo.ListAll(ctx.Request.Context(), false)
	if err != nil {
		respondBlogError(ctx, err)
		return
	}

	var published int
	var totalViews int64
	for _, p := range posts {
		if p.IsPublished {
			published++
		}
		totalViews += p.Views
	}

	top := append([]blog.Post(nil), posts...)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Views > top[j].Views })
	if len(top) > 5 {
		top = top[:5]
	}
	topItems := make([]gin.H, 0, len(top))
	for _, p := range top {
		topItems = append(topItems, gin.H{
			"id":    p.ID,
			"title": p.Title,
			"slug":  p.Slug,
			"views": p.Views,
		})
	}

	utils.Success(ctx, gin.H{
		"total_posts":     len(posts),
		"published_posts": published,
		"total_views":     totalViews,
		"top_posts":       topItems,
	})
}
