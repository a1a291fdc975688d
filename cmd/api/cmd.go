package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/finora-app/finora-backend/internal/bootstrap"
	"github.com/finora-app/finora-backend/internal/config"
	"github.com/finora-app/finora-backend/internal/handlers"
	"github.com/finora-app/finora-backend/internal/response"
	"github.com/finora-app/finora-backend/internal/router"
	"github.com/finora-app/finora-backend/internal/services"
	"github.com/finora-app/finora-backend/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	ustore := store.NewUserStore(bs.Firestore)
	tstore := store.NewTransactionStore(bs.Firestore)

	// services
	userv := services.NewUserService(ustore)
	tserv := services.NewTransactionService(tstore, bs.Catalog)
	anserv := services.NewAnalyticsService(tstore, bs.Catalog)
	inserv := services.NewInsightsService(bs.VertexAdapter, anserv)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.Catalog = bs.Catalog
	deps.UserSvc = userv
	deps.TransactionSvc = tserv
	deps.AnalyticsSvc = anserv
	deps.InsightsSvc = inserv

	// router
	r := router.NewRouter(deps)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
