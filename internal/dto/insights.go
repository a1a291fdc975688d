package dto

import "time"

type SpendingInsightArgs struct {
	StartDate   *time.Time
	EndDate     *time.Time
	RangePreset string
}

type SpendingInsightResponse struct {
	Insight     string           `json:"insight"`
	Summary     FinancialSummary `json:"summary"`
	GeneratedAt time.Time        `json:"generatedAt"`
}
