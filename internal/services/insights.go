package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/finora-app/finora-backend/internal/dto"
	"github.com/finora-app/finora-backend/internal/errs"
	"github.com/finora-app/finora-backend/pkg/helpers"
	"github.com/finora-app/finora-backend/pkg/logger"
)

const insightCategoryLimit = 5

type vertexClient interface {
	GenerateContent(ctx context.Context, req dto.VertexGenerateRequest) (dto.VertexGenerateResponse, error)
}

type insightsAnalytics interface {
	GetFinancialSummary(ctx context.Context, uid string, q dto.AnalyticsQuery) (dto.FinancialSummary, error)
	GetCategoryBreakdown(ctx context.Context, uid string, q dto.AnalyticsQuery) ([]dto.CategoryBreakdown, error)
}

type insightsService struct {
	vertex    vertexClient
	analytics insightsAnalytics
	clockNow  func() time.Time
}

func NewInsightsService(vertex vertexClient, analytics insightsAnalytics) *insightsService {
	return &insightsService{
		vertex:    vertex,
		analytics: analytics,
		clockNow:  time.Now,
	}
}

// GetSpendingInsight summarizes the user's aggregated numbers in natural
// language. The model only ever sees aggregates, never raw transactions.
func (s *insightsService) GetSpendingInsight(ctx context.Context, uid string, args dto.SpendingInsightArgs) (dto.SpendingInsightResponse, error) {
	log := logger.FromContext(ctx)

	q := dto.AnalyticsQuery{
		StartDate:   args.StartDate,
		EndDate:     args.EndDate,
		RangePreset: args.RangePreset,
	}
	if q.StartDate == nil && q.EndDate == nil && q.RangePreset == "" {
		q.RangePreset = dto.RangeThisMonth
	}

	summary, err := s.analytics.GetFinancialSummary(ctx, uid, q)
	if err != nil {
		return dto.SpendingInsightResponse{}, err
	}
	breakdown, err := s.analytics.GetCategoryBreakdown(ctx, uid, q)
	if err != nil {
		return dto.SpendingInsightResponse{}, err
	}

	resp, err := s.vertex.GenerateContent(ctx, dto.VertexGenerateRequest{
		System:          insightSystemPrompt,
		UserMessage:     buildInsightPrompt(summary, breakdown),
		Temperature:     helpers.Ptr[float32](0.4),
		MaxOutputTokens: helpers.Ptr[int32](512),
	})
	if err != nil {
		return dto.SpendingInsightResponse{}, errs.NewExternalServiceError("vertex", "insight generation failed", true, err)
	}
	if resp.Text == "" {
		return dto.SpendingInsightResponse{}, errs.NewExternalServiceError("vertex", "insight generation returned no content", false, nil)
	}

	log.Info("spending insight generated", "from", summary.From, "to", summary.To)
	return dto.SpendingInsightResponse{
		Insight:     strings.TrimSpace(resp.Text),
		Summary:     summary,
		GeneratedAt: s.clockNow(),
	}, nil
}

const insightSystemPrompt = "You are a personal finance assistant. " +
	"You receive aggregated income and expense figures for one user and reply with a short, " +
	"plain-language observation about their spending. Two or three sentences, no markdown, " +
	"no financial advice disclaimers."

func buildInsightPrompt(summary dto.FinancialSummary, breakdown []dto.CategoryBreakdown) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Period: %s to %s\n", summary.From, summary.To)
	fmt.Fprintf(&b, "Total income: %s\n", summary.TotalIncome.StringFixed(2))
	fmt.Fprintf(&b, "Total expense: %s\n", summary.TotalExpense.StringFixed(2))
	fmt.Fprintf(&b, "Net: %s\n", summary.NetIncome.StringFixed(2))
	fmt.Fprintf(&b, "Transactions: %d\n", summary.TransactionCount)

	if len(breakdown) > 0 {
		b.WriteString("Top categories by amount:\n")
		for i, row := range breakdown {
			if i == insightCategoryLimit {
				break
			}
			fmt.Fprintf(&b, "- %s: %s (%.2f%%, %d transactions)\n",
				row.CategoryName, row.TotalAmount.StringFixed(2), row.Percentage, row.TransactionCount)
		}
	}
	return b.String()
}
