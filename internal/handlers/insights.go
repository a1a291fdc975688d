package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finora-app/finora-backend/internal/dto"
	"github.com/finora-app/finora-backend/internal/middleware"
	"github.com/finora-app/finora-backend/internal/response"
)

type InsightsService interface {
	GetSpendingInsight(ctx context.Context, uid string, args dto.SpendingInsightArgs) (dto.SpendingInsightResponse, error)
}

type insightsHandlers struct {
	ResponseHandler response.ResponseHandler
	InsightsSvc     InsightsService
}

func NewInsightsHandlers(deps *Deps) *insightsHandlers {
	return &insightsHandlers{
		ResponseHandler: deps.ResponseHandler,
		InsightsSvc:     deps.InsightsSvc,
	}
}

func (h *insightsHandlers) InsightsRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/spending", h.GetSpendingInsight)
	return r
}

func (h *insightsHandlers) GetSpendingInsight(w http.ResponseWriter, r *http.Request) {
	var args dto.SpendingInsightArgs
	var err error

	if args.StartDate, err = dateParam(r, "start_date"); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if args.EndDate, err = dateParam(r, "end_date"); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	args.RangePreset = r.URL.Query().Get("range")

	uid := middleware.UID(r.Context())
	insight, err := h.InsightsSvc.GetSpendingInsight(r.Context(), uid, args)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, insight, "Spending insight generated successfully")
}
