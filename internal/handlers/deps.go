package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/finora-app/finora-backend/internal/catalog"
	"github.com/finora-app/finora-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Firebase        *auth.Client
	Catalog         *catalog.Catalog
	UserSvc         UserService
	TransactionSvc  TransactionService
	AnalyticsSvc    AnalyticsService
	InsightsSvc     InsightsService
}
