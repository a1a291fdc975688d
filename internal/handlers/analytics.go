package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finora-app/finora-backend/internal/dto"
	"github.com/finora-app/finora-backend/internal/middleware"
	"github.com/finora-app/finora-backend/internal/response"
)

type AnalyticsService interface {
	GetFinancialSummary(ctx context.Context, uid string, q dto.AnalyticsQuery) (dto.FinancialSummary, error)
	GetCategoryBreakdown(ctx context.Context, uid string, q dto.AnalyticsQuery) ([]dto.CategoryBreakdown, error)
	GetSpendingTrends(ctx context.Context, uid string, q dto.AnalyticsQuery) ([]dto.SpendingTrend, error)
	GetTagAnalytics(ctx context.Context, uid string, q dto.AnalyticsQuery) ([]dto.TagAnalytics, error)
	GetOverview(ctx context.Context, uid string, q dto.AnalyticsQuery) (dto.AnalyticsOverview, error)
}

type analyticsHandlers struct {
	ResponseHandler response.ResponseHandler
	AnalyticsSvc    AnalyticsService
}

func NewAnalyticsHandlers(deps *Deps) *analyticsHandlers {
	return &analyticsHandlers{
		ResponseHandler: deps.ResponseHandler,
		AnalyticsSvc:    deps.AnalyticsSvc,
	}
}

func (h *analyticsHandlers) AnalyticsRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/overview", h.GetOverview)
	r.Get("/summary", h.GetFinancialSummary)
	r.Get("/category-breakdown", h.GetCategoryBreakdown)
	r.Get("/spending-trends", h.GetSpendingTrends)
	r.Get("/tags", h.GetTagAnalytics)
	return r
}

func (h *analyticsHandlers) GetOverview(w http.ResponseWriter, r *http.Request) {
	q, err := parseAnalyticsQuery(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	overview, err := h.AnalyticsSvc.GetOverview(r.Context(), uid, q)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, overview, "Analytics overview fetched successfully")
}

func (h *analyticsHandlers) GetFinancialSummary(w http.ResponseWriter, r *http.Request) {
	q, err := parseAnalyticsQuery(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	summary, err := h.AnalyticsSvc.GetFinancialSummary(r.Context(), uid, q)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, summary, "Financial summary fetched successfully")
}

func (h *analyticsHandlers) GetCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	q, err := parseAnalyticsQuery(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	breakdown, err := h.AnalyticsSvc.GetCategoryBreakdown(r.Context(), uid, q)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, breakdown, "Category breakdown fetched successfully")
}

func (h *analyticsHandlers) GetSpendingTrends(w http.ResponseWriter, r *http.Request) {
	q, err := parseAnalyticsQuery(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	trends, err := h.AnalyticsSvc.GetSpendingTrends(r.Context(), uid, q)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, trends, "Spending trends fetched successfully")
}

func (h *analyticsHandlers) GetTagAnalytics(w http.ResponseWriter, r *http.Request) {
	q, err := parseAnalyticsQuery(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	tags, err := h.AnalyticsSvc.GetTagAnalytics(r.Context(), uid, q)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, tags, "Tag analytics fetched successfully")
}

func parseAnalyticsQuery(r *http.Request) (dto.AnalyticsQuery, error) {
	var q dto.AnalyticsQuery
	var err error

	if q.StartDate, err = dateParam(r, "start_date"); err != nil {
		return q, err
	}
	if q.EndDate, err = dateParam(r, "end_date"); err != nil {
		return q, err
	}
	if q.Type, err = typeParam(r); err != nil {
		return q, err
	}
	q.RangePreset = r.URL.Query().Get("range")
	q.Period = r.URL.Query().Get("period")
	q.CategoryID = stringParam(r, "category_id")
	return q, nil
}
