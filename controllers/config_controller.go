package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/sarrafiye/goldweb/config"
	"github.com/sarrafiye/goldweb/utils"
)

// ConfigController serves the site chrome the marketing front end renders:
// footer block and notice bar.
type ConfigController struct{}

// NewConfigController creates a new ConfigController instance.
func NewConfigController() *ConfigController { return &ConfigController{} }

// GetFooter returns the configured footer block.
func (c *ConfigController) GetFooter(ctx *gin.Context) {
	cfg := config.Get()
	utils.Success(ctx, gin.H{
		"title": cfg.FooterTitle,
		"html":  cfg.FooterHTML,
	})
}

// GetNotice returns the configured notice bar.
func (c *ConfigController) GetNotice(ctx *gin.Context) {
	cfg := config.Get()
	utils.Success(ctx, gin.H{
		"title": cfg.NoticeTitle,
		"html":  cfg.NoticeHTML,
	})
}
