package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/finora-app/finora-backend/internal/handlers"
	"github.com/finora-app/finora-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)

	ush := handlers.NewUserHandlers(deps)
	tsh := handlers.NewTransactionHandlers(deps)
	ash := handlers.NewAnalyticsHandlers(deps)
	csh := handlers.NewCategoryHandlers(deps)
	ish := handlers.NewInsightsHandlers(deps)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Category catalog is static and safe to expose unauthenticated.
	r.Mount("/categories", csh.CategoryRoutes())

	auth := middleware.NewMiddleware(deps.Firebase)
	r.Group(func(r chi.Router) {
		r.Use(auth.FirebaseAuth)
		r.Mount("/users", ush.UserRoutes())
		r.Mount("/transactions", tsh.TransactionRoutes())
		r.Mount("/analytics", ash.AnalyticsRoutes())
		r.Mount("/insights", ish.InsightsRoutes())
	})
	return r
}
