package main

import (
	"github.com/sarrafiye/goldweb/blog"
	"github.com/sarrafiye/goldweb/catalog"
	"github.com/sarrafiye/goldweb/config"
	"github.com/sarrafiye/goldweb/models"
	"github.com/sarrafiye/goldweb/routes"
	"github.com/sarrafiye/goldweb/store"
	"github.com/sarrafiye/goldweb/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.AdminUser{})

	var docs store.DocumentStore
	switch cfg.StoreDriver {
	case "memory":
		utils.Sugar.Warn("using in-memory document store; content will not survive restarts")
		docs = store.NewMemoryStore()
	default:
		mysqlStore, err := store.NewMySQLStore(db)
		if err != nil {
			utils.Sugar.Fatalf("document store init failed: %v", err)
		}
		docs = mysqlStore
	}

	repo := blog.NewRepository(docs)
	svc := blog.NewService(repo, utils.Sugar)
	catalogSvc := catalog.NewService(catalog.NewRepository(docs), utils.Sugar)

	r := routes.SetupRouter(db, svc, repo, catalogSvc)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
