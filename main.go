package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inethub/rrtool/configs"
	"github.com/inethub/rrtool/database"
	auth_module "github.com/inethub/rrtool/modules/auth-module"
	ebo_module "github.com/inethub/rrtool/modules/ebo-module"
	history_module "github.com/inethub/rrtool/modules/history-module"
	recon_module "github.com/inethub/rrtool/modules/recon-module"
	results_module "github.com/inethub/rrtool/modules/results-module"
)

func main() {
	configs.LoadEnv()
	database.Connect()

	timeout := time.Duration(configs.ReconTimeoutMs) * time.Millisecond

	historyService := history_module.New(history_module.NewGormStore(database.DB))
	historyHandler := history_module.NewHandler(historyService)

	reconService := recon_module.New(
		recon_module.NewClient(configs.ReconServiceUrl, timeout),
		historyService,
	)
	reconHandler := recon_module.NewHandler(reconService, configs.UploadDir)

	resultsHandler := results_module.NewHandler()
	eboHandler := ebo_module.NewHandler(ebo_module.NewClient(configs.ReconServiceUrl, timeout))

	authHandler := auth_module.NewHandler(
		auth_module.NewGormUserStore(database.DB),
		configs.SessionSecret,
		time.Duration(configs.SessionTTL)*time.Second,
	)

	r := gin.Default()
	authHandler.RegisterRoutes(r)

	authed := r.Group("/", authHandler.RequireAuth())
	historyHandler.RegisterRoutes(authed)
	reconHandler.RegisterRoutes(authed)
	resultsHandler.RegisterRoutes(authed)
	eboHandler.RegisterRoutes(authed)

	admin := r.Group("/", authHandler.RequireAuth(), authHandler.RequireAdmin())
	authHandler.RegisterAdminRoutes(admin)

	if err := r.Run(":" + configs.AppPort); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
