package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finora-app/finora-backend/internal/dto"
)

type stubInsightsService struct {
	resp     dto.SpendingInsightResponse
	err      error
	lastUID  string
	lastArgs dto.SpendingInsightArgs
}

func (s *stubInsightsService) GetSpendingInsight(_ context.Context, uid string, args dto.SpendingInsightArgs) (dto.SpendingInsightResponse, error) {
	s.lastUID = uid
	s.lastArgs = args
	return s.resp, s.err
}

func TestGetSpendingInsight(t *testing.T) {
	inSvc := &stubInsightsService{
		resp: dto.SpendingInsightResponse{Insight: "Most spending went to food."},
	}
	resp := &stubResponseHandler{}

	h := NewInsightsHandlers(&Deps{
		ResponseHandler: resp,
		InsightsSvc:     inSvc,
	})

	req := httptest.NewRequest(http.MethodGet, "/insights/spending?range=this_month", nil)
	req = withUID(req, "uid-123")
	rr := httptest.NewRecorder()
	h.GetSpendingInsight(rr, req)

	if inSvc.lastUID != "uid-123" {
		t.Fatalf("uid mismatch: %q", inSvc.lastUID)
	}
	if inSvc.lastArgs.RangePreset != "this_month" {
		t.Fatalf("range preset mismatch: %q", inSvc.lastArgs.RangePreset)
	}
	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("WriteSuccess not called with status 200")
	}
}

func TestGetSpendingInsightDates(t *testing.T) {
	inSvc := &stubInsightsService{}
	resp := &stubResponseHandler{}

	h := NewInsightsHandlers(&Deps{
		ResponseHandler: resp,
		InsightsSvc:     inSvc,
	})

	req := httptest.NewRequest(http.MethodGet, "/insights/spending?start_date=2025-03-01&end_date=2025-03-31", nil)
	req = withUID(req, "uid-123")
	rr := httptest.NewRecorder()
	h.GetSpendingInsight(rr, req)

	if inSvc.lastArgs.StartDate == nil || inSvc.lastArgs.StartDate.Format("2006-01-02") != "2025-03-01" {
		t.Fatalf("start date mismatch: %+v", inSvc.lastArgs.StartDate)
	}
	if inSvc.lastArgs.EndDate == nil || inSvc.lastArgs.EndDate.Format("2006-01-02") != "2025-03-31" {
		t.Fatalf("end date mismatch: %+v", inSvc.lastArgs.EndDate)
	}
}

func TestGetSpendingInsightServiceError(t *testing.T) {
	inSvc := &stubInsightsService{err: errors.New("model unavailable")}
	resp := &stubResponseHandler{}

	h := NewInsightsHandlers(&Deps{
		ResponseHandler: resp,
		InsightsSvc:     inSvc,
	})

	req := httptest.NewRequest(http.MethodGet, "/insights/spending", nil)
	req = withUID(req, "uid-123")
	rr := httptest.NewRecorder()
	h.GetSpendingInsight(rr, req)

	if !resp.handleErrorCalled {
		t.Fatalf("HandleError should receive the service error")
	}
	if !errors.Is(resp.handleError, inSvc.err) {
		t.Fatalf("unexpected error: %v", resp.handleError)
	}
}
