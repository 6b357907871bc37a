package controllers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sarrafiye/goldweb/config"
	"github.com/sarrafiye/goldweb/utils"
)

const quoteCacheKey = "cache:quote:gold:today"

// QuoteController proxies the upstream precious-metal price feed. The
// payload passes through untouched; a short Redis TTL keeps the upstream
// from being hammered.
type QuoteController struct {
	client *http.Client
}

// NewQuoteController creates a new QuoteController instance.
func NewQuoteController() *QuoteController {
	return &QuoteController{client: &http.Client{Timeout: 10 * time.Second}}
}

// Today returns the current gold quote JSON.
func (q *QuoteController) Today(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(quoteCacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	cfg := config.Get()
	req, err := http.NewRequestWithContext(ctx.Request.Context(), http.MethodGet, cfg.GoldQuoteURL, nil)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to build quote request")
		return
	}
	req.Header.Set("Accept", "application/json")

	resp, err := q.client.Do(req)
	if err != nil {
		utils.Sugar.Warnw("quote upstream unreachable", "err", err)
		utils.Error(ctx, http.StatusBadGateway, 50210, "upstream fetch failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		utils.Sugar.Warnw("quote upstream error", "status", resp.StatusCode)
		utils.Error(ctx, http.StatusBadGateway, 50211, "upstream fetch failed")
		return
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		utils.Error(ctx, http.StatusBadGateway, 50212, "upstream read failed")
		return
	}

	utils.CacheSetBytes(quoteCacheKey, body, time.Duration(cfg.GoldQuoteCacheSec)*time.Second)
	ctx.Data(http.StatusOK, "application/json", body)
}
