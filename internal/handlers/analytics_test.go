package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finora-app/finora-backend/internal/dto"
	"github.com/finora-app/finora-backend/internal/models"
)

type stubAnalyticsService struct {
	summary   dto.FinancialSummary
	breakdown []dto.CategoryBreakdown
	trends    []dto.SpendingTrend
	tags      []dto.TagAnalytics
	overview  dto.AnalyticsOverview
	err       error

	lastUID   string
	lastQuery dto.AnalyticsQuery
}

func (s *stubAnalyticsService) GetFinancialSummary(_ context.Context, uid string, q dto.AnalyticsQuery) (dto.FinancialSummary, error) {
	s.lastUID = uid
	s.lastQuery = q
	return s.summary, s.err
}

func (s *stubAnalyticsService) GetCategoryBreakdown(_ context.Context, uid string, q dto.AnalyticsQuery) ([]dto.CategoryBreakdown, error) {
	s.lastUID = uid
	s.lastQuery = q
	return s.breakdown, s.err
}

func (s *stubAnalyticsService) GetSpendingTrends(_ context.Context, uid string, q dto.AnalyticsQuery) ([]dto.SpendingTrend, error) {
	s.lastUID = uid
	s.lastQuery = q
	return s.trends, s.err
}

func (s *stubAnalyticsService) GetTagAnalytics(_ context.Context, uid string, q dto.AnalyticsQuery) ([]dto.TagAnalytics, error) {
	s.lastUID = uid
	s.lastQuery = q
	return s.tags, s.err
}

func (s *stubAnalyticsService) GetOverview(_ context.Context, uid string, q dto.AnalyticsQuery) (dto.AnalyticsOverview, error) {
	s.lastUID = uid
	s.lastQuery = q
	return s.overview, s.err
}

func TestGetFinancialSummaryQueryParams(t *testing.T) {
	anSvc := &stubAnalyticsService{}
	resp := &stubResponseHandler{}

	h := NewAnalyticsHandlers(&Deps{
		ResponseHandler: resp,
		AnalyticsSvc:    anSvc,
	})

	target := "/analytics/summary?start_date=2025-01-01&end_date=2025-01-31&transaction_type=income&category_id=food&period=weekly"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = withUID(req, "uid-123")
	rr := httptest.NewRecorder()
	h.GetFinancialSummary(rr, req)

	if anSvc.lastUID != "uid-123" {
		t.Fatalf("uid mismatch: %q", anSvc.lastUID)
	}
	q := anSvc.lastQuery
	if q.StartDate == nil || q.StartDate.Format("2006-01-02") != "2025-01-01" {
		t.Fatalf("start date mismatch: %+v", q.StartDate)
	}
	if q.EndDate == nil || q.EndDate.Format("2006-01-02") != "2025-01-31" {
		t.Fatalf("end date mismatch: %+v", q.EndDate)
	}
	if q.Type == nil || *q.Type != models.TypeIncome {
		t.Fatalf("type mismatch: %+v", q.Type)
	}
	if q.CategoryID == nil || *q.CategoryID != "food" {
		t.Fatalf("category mismatch: %+v", q.CategoryID)
	}
	if q.Period != "weekly" {
		t.Fatalf("period mismatch: %q", q.Period)
	}
	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("WriteSuccess not called with status 200")
	}
}

func TestGetFinancialSummaryRangePreset(t *testing.T) {
	anSvc := &stubAnalyticsService{}
	resp := &stubResponseHandler{}

	h := NewAnalyticsHandlers(&Deps{
		ResponseHandler: resp,
		AnalyticsSvc:    anSvc,
	})

	req := httptest.NewRequest(http.MethodGet, "/analytics/summary?range=last_month", nil)
	req = withUID(req, "uid-123")
	rr := httptest.NewRecorder()
	h.GetFinancialSummary(rr, req)

	if anSvc.lastQuery.RangePreset != "last_month" {
		t.Fatalf("range preset mismatch: %q", anSvc.lastQuery.RangePreset)
	}
}

func TestGetFinancialSummaryBadDate(t *testing.T) {
	anSvc := &stubAnalyticsService{}
	resp := &stubResponseHandler{}

	h := NewAnalyticsHandlers(&Deps{
		ResponseHandler: resp,
		AnalyticsSvc:    anSvc,
	})

	req := httptest.NewRequest(http.MethodGet, "/analytics/summary?start_date=January", nil)
	req = withUID(req, "uid-123")
	rr := httptest.NewRecorder()
	h.GetFinancialSummary(rr, req)

	if !resp.handleErrorCalled {
		t.Fatalf("HandleError should be called on a bad date")
	}
	if anSvc.lastUID != "" {
		t.Fatalf("service should not be called on bad params")
	}
}

func TestAnalyticsEndpointsDelegate(t *testing.T) {
	anSvc := &stubAnalyticsService{
		breakdown: []dto.CategoryBreakdown{{CategoryID: "food"}},
		trends:    []dto.SpendingTrend{{Period: "2025-01"}},
		tags:      []dto.TagAnalytics{{Tag: "travel"}},
	}

	endpoints := []struct {
		name string
		call func(h *analyticsHandlers, w http.ResponseWriter, r *http.Request)
	}{
		{"breakdown", (*analyticsHandlers).GetCategoryBreakdown},
		{"trends", (*analyticsHandlers).GetSpendingTrends},
		{"tags", (*analyticsHandlers).GetTagAnalytics},
		{"overview", (*analyticsHandlers).GetOverview},
	}

	for _, e := range endpoints {
		resp := &stubResponseHandler{}
		h := NewAnalyticsHandlers(&Deps{
			ResponseHandler: resp,
			AnalyticsSvc:    anSvc,
		})

		req := httptest.NewRequest(http.MethodGet, "/analytics", nil)
		req = withUID(req, "uid-123")
		rr := httptest.NewRecorder()
		e.call(h, rr, req)

		if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
			t.Fatalf("%s: WriteSuccess not called with status 200", e.name)
		}
	}
}

func TestAnalyticsServiceErrorDelegates(t *testing.T) {
	anSvc := &stubAnalyticsService{err: errors.New("aggregation failed")}
	resp := &stubResponseHandler{}

	h := NewAnalyticsHandlers(&Deps{
		ResponseHandler: resp,
		AnalyticsSvc:    anSvc,
	})

	req := httptest.NewRequest(http.MethodGet, "/analytics/overview", nil)
	req = withUID(req, "uid-123")
	rr := httptest.NewRecorder()
	h.GetOverview(rr, req)

	if !resp.handleErrorCalled {
		t.Fatalf("HandleError should receive the service error")
	}
	if !errors.Is(resp.handleError, anSvc.err) {
		t.Fatalf("unexpected error: %v", resp.handleError)
	}
}
