package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finora-app/finora-backend/internal/models"
)

const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// Named date-range presets resolved against the current time.
const (
	RangeThisMonth   = "this_month"
	RangeLastMonth   = "last_month"
	RangeThisQuarter = "this_quarter"
	RangeLastQuarter = "last_quarter"
	RangeThisYear    = "this_year"
	RangeLastYear    = "last_year"
)

type AnalyticsQuery struct {
	StartDate   *time.Time
	EndDate     *time.Time
	RangePreset string
	Period      string
	Type        *models.TransactionType
	CategoryID  *string
}

type FinancialSummary struct {
	TotalIncome        decimal.Decimal `json:"totalIncome"`
	TotalExpense       decimal.Decimal `json:"totalExpense"`
	NetIncome          decimal.Decimal `json:"netIncome"`
	TransactionCount   int             `json:"transactionCount"`
	AverageTransaction decimal.Decimal `json:"averageTransaction"`
	From               string          `json:"from,omitempty"`
	To                 string          `json:"to,omitempty"`
}

type SubcategoryBreakdown struct {
	SubcategoryID    string          `json:"subcategoryId"`
	SubcategoryName  string          `json:"subcategoryName"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	TransactionCount int             `json:"transactionCount"`
	Percentage       float64         `json:"percentage"`
}

type CategoryBreakdown struct {
	CategoryID       string                 `json:"categoryId"`
	CategoryName     string                 `json:"categoryName"`
	TotalAmount      decimal.Decimal        `json:"totalAmount"`
	TransactionCount int                    `json:"transactionCount"`
	Percentage       float64                `json:"percentage"`
	Subcategories    []SubcategoryBreakdown `json:"subcategories"`
}

type SpendingTrend struct {
	Period           string          `json:"period"`
	Income           decimal.Decimal `json:"income"`
	Expense          decimal.Decimal `json:"expense"`
	Net              decimal.Decimal `json:"net"`
	TransactionCount int             `json:"transactionCount"`
}

type TagAnalytics struct {
	Tag              string          `json:"tag"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	TransactionCount int             `json:"transactionCount"`
	AvgAmount        decimal.Decimal `json:"avgAmount"`
}

type AnalyticsOverview struct {
	Summary           FinancialSummary    `json:"summary"`
	CategoryBreakdown []CategoryBreakdown `json:"categoryBreakdown"`
	SpendingTrends    []SpendingTrend     `json:"spendingTrends"`
	TopTags           []TagAnalytics      `json:"topTags"`
}
