package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sarrafiye/goldweb/blog"
	"github.com/sarrafiye/goldweb/catalog"
	"github.com/sarrafiye/goldweb/config"
	"github.com/sarrafiye/goldweb/controllers"
	"github.com/sarrafiye/goldweb/middleware"
	"github.com/sarrafiye/goldweb/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, svc *blog.Service, repo *blog.Repository, catalogSvc *catalog.Service) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// File-based zap access log instead of gin's console logger.
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Static("/static", "./static")

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(svc)
	catalogController := controllers.NewCatalogController(catalogSvc)
	quoteController := controllers.NewQuoteController()
	statsController := controllers.NewStatsController(repo)
	configController := controllers.NewConfigController()

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimit())
	authGroup.GET("/has-users", authController.HasUsers)
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	postsGroup := api.Group("/posts")
	postsGroup.GET("", postController.ListPosts)
	postsGroup.GET("/:slug", postController.GetPost)

	productsGroup := api.Group("/products")
	productsGroup.GET("", catalogController.ListProducts)
	productsGroup.GET("/:id", catalogController.GetProduct)

	api.GET("/gold/today", quoteController.Today)
	api.GET("/config/footer", configController.GetFooter)
	api.GET("/config/notice", configController.GetNotice)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.RateLimit())
	admin.GET("/posts", postController.AdminListPosts)
	admin.POST("/posts", postController.CreatePost)
	admin.PUT("/posts/:id", postController.UpdatePost)
	admin.DELETE("/posts/:id", postController.DeletePost)
	admin.GET("/stats", statsController.GetStats)

	r.NoRoute(func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		if strings.HasPrefix(path, "/static/") {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "static asset not found"})
			return
		}
		// Anything else (e.g. /blog/altin-fiyatlari) falls back to the SPA
		// entry point.
		ctx.Status(http.StatusOK)
		ctx.File("./static/index.html")
	})

	return r
}
