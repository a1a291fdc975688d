package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finora-app/finora-backend/internal/dto"
	"github.com/finora-app/finora-backend/internal/errs"
	"github.com/finora-app/finora-backend/internal/models"
)

const (
	analyticsDateLayout = "2006-01-02"
	maxTopTags          = 20

	// unknownCategoryID is the defensive bucket for transactions whose
	// category no longer resolves against the catalog. Historical data must
	// aggregate, not fail.
	unknownCategoryID   = "unknown"
	unknownCategoryName = "Unknown"
)

type analyticsTxStore interface {
	Query(ctx context.Context, uid string, q dto.TransactionQuery, handle func(*models.Transaction) error) error
}

// analyticsService is the aggregation engine. Each call reads one snapshot of
// the caller's filtered transactions and computes a pure function of it; no
// state is shared between requests.
type analyticsService struct {
	txs      analyticsTxStore
	catalog  catalogReader
	clockNow func() time.Time
}

func NewAnalyticsService(txs analyticsTxStore, catalog catalogReader) *analyticsService {
	return &analyticsService{txs: txs, catalog: catalog, clockNow: time.Now}
}

func (s *analyticsService) GetFinancialSummary(ctx context.Context, uid string, q dto.AnalyticsQuery) (dto.FinancialSummary, error) {
	q, txs, err := s.fetch(ctx, uid, q)
	if err != nil {
		return dto.FinancialSummary{}, err
	}
	return computeSummary(txs, q.StartDate, q.EndDate), nil
}

func (s *analyticsService) GetCategoryBreakdown(ctx context.Context, uid string, q dto.AnalyticsQuery) ([]dto.CategoryBreakdown, error) {
	_, txs, err := s.fetch(ctx, uid, q)
	if err != nil {
		return nil, err
	}
	return computeCategoryBreakdown(txs, s.catalog), nil
}

func (s *analyticsService) GetSpendingTrends(ctx context.Context, uid string, q dto.AnalyticsQuery) ([]dto.SpendingTrend, error) {
	q, txs, err := s.fetch(ctx, uid, q)
	if err != nil {
		return nil, err
	}
	return computeSpendingTrends(txs, q.Period, q.StartDate, q.EndDate), nil
}

func (s *analyticsService) GetTagAnalytics(ctx context.Context, uid string, q dto.AnalyticsQuery) ([]dto.TagAnalytics, error) {
	_, txs, err := s.fetch(ctx, uid, q)
	if err != nil {
		return nil, err
	}
	return computeTagAnalytics(txs), nil
}

// GetOverview composes all four aggregations from a single store read.
func (s *analyticsService) GetOverview(ctx context.Context, uid string, q dto.AnalyticsQuery) (dto.AnalyticsOverview, error) {
	q, txs, err := s.fetch(ctx, uid, q)
	if err != nil {
		return dto.AnalyticsOverview{}, err
	}
	return dto.AnalyticsOverview{
		Summary:           computeSummary(txs, q.StartDate, q.EndDate),
		CategoryBreakdown: computeCategoryBreakdown(txs, s.catalog),
		SpendingTrends:    computeSpendingTrends(txs, q.Period, q.StartDate, q.EndDate),
		TopTags:           computeTagAnalytics(txs),
	}, nil
}

// fetch validates the query, resolves presets, and reads the matching
// snapshot. Validation happens before any store access; a store failure
// aborts the whole call with no partial result.
func (s *analyticsService) fetch(ctx context.Context, uid string, q dto.AnalyticsQuery) (dto.AnalyticsQuery, []models.Transaction, error) {
	q, err := normalizeAnalyticsQuery(q, s.clockNow())
	if err != nil {
		return q, nil, err
	}

	var txs []models.Transaction
	err = s.txs.Query(ctx, uid, dto.TransactionQuery{
		Type:       q.Type,
		CategoryID: q.CategoryID,
		DateFrom:   q.StartDate,
		DateTo:     q.EndDate,
	}, func(t *models.Transaction) error {
		txs = append(txs, *t)
		return nil
	})
	if err != nil {
		return q, nil, err
	}
	return q, txs, nil
}

func normalizeAnalyticsQuery(q dto.AnalyticsQuery, now time.Time) (dto.AnalyticsQuery, error) {
	if q.RangePreset != "" {
		from, to, err := resolveRangePreset(q.RangePreset, now)
		if err != nil {
			return q, err
		}
		q.StartDate = &from
		q.EndDate = &to
	}

	switch q.Period {
	case "":
		q.Period = dto.PeriodMonthly
	case dto.PeriodDaily, dto.PeriodWeekly, dto.PeriodMonthly, dto.PeriodYearly:
	default:
		return q, errs.NewValidationError("period must be one of: daily, weekly, monthly, yearly")
	}

	if q.Type != nil && !q.Type.Valid() {
		return q, errs.NewValidationError(fmt.Sprintf("transactionType must be %q or %q", models.TypeIncome, models.TypeExpense))
	}

	if q.EndDate != nil {
		end := endOfDay(*q.EndDate)
		q.EndDate = &end
	}
	if q.StartDate != nil && q.EndDate != nil && q.EndDate.Before(*q.StartDate) {
		return q, errs.NewValidationError("end date must not be before start date")
	}
	return q, nil
}

// --- Financial summary ---

func computeSummary(txs []models.Transaction, from, to *time.Time) dto.FinancialSummary {
	summary := dto.FinancialSummary{
		TotalIncome:        decimal.Zero,
		TotalExpense:       decimal.Zero,
		NetIncome:          decimal.Zero,
		AverageTransaction: decimal.Zero,
	}

	var minDate, maxDate time.Time
	for _, t := range txs {
		if t.Type == models.TypeIncome {
			summary.TotalIncome = summary.TotalIncome.Add(t.Amount)
		} else {
			summary.TotalExpense = summary.TotalExpense.Add(t.Amount)
		}
		if minDate.IsZero() || t.TransactionDate.Before(minDate) {
			minDate = t.TransactionDate
		}
		if maxDate.IsZero() || t.TransactionDate.After(maxDate) {
			maxDate = t.TransactionDate
		}
	}

	summary.NetIncome = summary.TotalIncome.Sub(summary.TotalExpense)
	summary.TransactionCount = len(txs)
	if len(txs) > 0 {
		gross := summary.TotalIncome.Add(summary.TotalExpense)
		summary.AverageTransaction = gross.Div(decimal.NewFromInt(int64(len(txs)))).Round(2)
	}

	// Bounds echo the requested range when given, else the observed one.
	switch {
	case from != nil:
		summary.From = from.UTC().Format(analyticsDateLayout)
	case !minDate.IsZero():
		summary.From = minDate.UTC().Format(analyticsDateLayout)
	}
	switch {
	case to != nil:
		summary.To = to.UTC().Format(analyticsDateLayout)
	case !maxDate.IsZero():
		summary.To = maxDate.UTC().Format(analyticsDateLayout)
	}
	return summary
}

// --- Category breakdown ---

type categoryAgg struct {
	total decimal.Decimal
	count int
	subs  map[string]*subcategoryAgg
}

type subcategoryAgg struct {
	total decimal.Decimal
	count int
}

func computeCategoryBreakdown(txs []models.Transaction, catalog catalogReader) []dto.CategoryBreakdown {
	groups := map[string]*categoryAgg{}
	grandTotal := decimal.Zero

	for _, t := range txs {
		grandTotal = grandTotal.Add(t.Amount)

		key := t.CategoryID
		if _, ok := catalog.Get(key); !ok {
			key = unknownCategoryID
		}
		agg, ok := groups[key]
		if !ok {
			agg = &categoryAgg{total: decimal.Zero, subs: map[string]*subcategoryAgg{}}
			groups[key] = agg
		}
		agg.total = agg.total.Add(t.Amount)
		agg.count++

		// Transactions without a subcategory count toward the category row
		// only; rows exist just for subcategories that appear.
		if t.SubcategoryID == "" {
			continue
		}
		sub, ok := agg.subs[t.SubcategoryID]
		if !ok {
			sub = &subcategoryAgg{total: decimal.Zero}
			agg.subs[t.SubcategoryID] = sub
		}
		sub.total = sub.total.Add(t.Amount)
		sub.count++
	}

	result := make([]dto.CategoryBreakdown, 0, len(groups))
	for id, agg := range groups {
		row := dto.CategoryBreakdown{
			CategoryID:       id,
			CategoryName:     categoryDisplayName(catalog, id),
			TotalAmount:      agg.total,
			TransactionCount: agg.count,
			Percentage:       percentageOf(agg.total, grandTotal),
			Subcategories:    make([]dto.SubcategoryBreakdown, 0, len(agg.subs)),
		}
		for subID, sub := range agg.subs {
			row.Subcategories = append(row.Subcategories, dto.SubcategoryBreakdown{
				SubcategoryID:    subID,
				SubcategoryName:  subcategoryDisplayName(catalog, id, subID),
				TotalAmount:      sub.total,
				TransactionCount: sub.count,
				// Share of the category's own total, not the grand total.
				Percentage: percentageOf(sub.total, agg.total),
			})
		}
		sort.Slice(row.Subcategories, func(i, j int) bool {
			a, b := row.Subcategories[i], row.Subcategories[j]
			if !a.TotalAmount.Equal(b.TotalAmount) {
				return a.TotalAmount.GreaterThan(b.TotalAmount)
			}
			return a.SubcategoryID < b.SubcategoryID
		})
		result = append(result, row)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.TotalAmount.Equal(b.TotalAmount) {
			return a.TotalAmount.GreaterThan(b.TotalAmount)
		}
		return a.CategoryID < b.CategoryID
	})
	return result
}

// percentageOf returns part/whole as a percentage rounded to two decimals,
// defined as 0 when the whole is zero.
func percentageOf(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	pct, _ := part.Mul(decimal.NewFromInt(100)).Div(whole).Round(2).Float64()
	return pct
}

func categoryDisplayName(catalog catalogReader, id string) string {
	if cat, ok := catalog.Get(id); ok {
		return cat.Name
	}
	return unknownCategoryName
}

func subcategoryDisplayName(catalog catalogReader, categoryID, subID string) string {
	if sub, ok := catalog.GetSubcategory(categoryID, subID); ok {
		return sub.Name
	}
	return unknownCategoryName
}

// --- Spending trends ---

type trendAgg struct {
	income  decimal.Decimal
	expense decimal.Decimal
	count   int
}

// computeSpendingTrends partitions txs into calendar-aligned UTC buckets and
// emits a gapless, chronologically ordered series. Buckets with no data are
// zero-filled between the range bounds (the requested range when given, the
// observed transaction span otherwise).
func computeSpendingTrends(txs []models.Transaction, period string, from, to *time.Time) []dto.SpendingTrend {
	buckets := map[string]*trendAgg{}
	var minDate, maxDate time.Time

	for _, t := range txs {
		key := periodKey(t.TransactionDate, period)
		agg, ok := buckets[key]
		if !ok {
			agg = &trendAgg{income: decimal.Zero, expense: decimal.Zero}
			buckets[key] = agg
		}
		if t.Type == models.TypeIncome {
			agg.income = agg.income.Add(t.Amount)
		} else {
			agg.expense = agg.expense.Add(t.Amount)
		}
		agg.count++

		if minDate.IsZero() || t.TransactionDate.Before(minDate) {
			minDate = t.TransactionDate
		}
		if maxDate.IsZero() || t.TransactionDate.After(maxDate) {
			maxDate = t.TransactionDate
		}
	}

	rangeFrom, rangeTo := minDate, maxDate
	if from != nil {
		rangeFrom = *from
	}
	if to != nil {
		rangeTo = *to
	}
	if rangeFrom.IsZero() || rangeTo.IsZero() {
		return []dto.SpendingTrend{}
	}

	result := []dto.SpendingTrend{}
	for _, key := range periodKeys(rangeFrom, rangeTo, period) {
		trend := dto.SpendingTrend{
			Period:  key,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
			Net:     decimal.Zero,
		}
		if agg, ok := buckets[key]; ok {
			trend.Income = agg.income
			trend.Expense = agg.expense
			trend.Net = agg.income.Sub(agg.expense)
			trend.TransactionCount = agg.count
		}
		result = append(result, trend)
	}
	return result
}

// periodKey labels are stable and sort chronologically as strings.
func periodKey(date time.Time, period string) string {
	date = date.UTC()
	switch period {
	case dto.PeriodDaily:
		return date.Format(analyticsDateLayout)
	case dto.PeriodWeekly:
		year, week := date.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case dto.PeriodYearly:
		return date.Format("2006")
	default: // monthly
		return date.Format("2006-01")
	}
}

// periodKeys walks the range day by day and collects the distinct bucket
// labels in order. Day-stepping sidesteps per-period boundary arithmetic and
// is cheap at personal-finance data scale.
func periodKeys(from, to time.Time, period string) []string {
	from = from.UTC().Truncate(24 * time.Hour)
	to = to.UTC()

	var keys []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := periodKey(d, period)
		if len(keys) == 0 || keys[len(keys)-1] != key {
			keys = append(keys, key)
		}
	}
	return keys
}

// --- Tag analytics ---

type tagAgg struct {
	total decimal.Decimal
	count int
}

// computeTagAnalytics explodes each transaction's tag list: a transaction
// with N tags contributes its full amount to all N buckets, so per-tag totals
// may sum to more than the overall total.
func computeTagAnalytics(txs []models.Transaction) []dto.TagAnalytics {
	tags := map[string]*tagAgg{}
	for _, t := range txs {
		for _, tag := range t.Tags {
			agg, ok := tags[tag]
			if !ok {
				agg = &tagAgg{total: decimal.Zero}
				tags[tag] = agg
			}
			agg.total = agg.total.Add(t.Amount)
			agg.count++
		}
	}

	result := make([]dto.TagAnalytics, 0, len(tags))
	for tag, agg := range tags {
		result = append(result, dto.TagAnalytics{
			Tag:              tag,
			TotalAmount:      agg.total,
			TransactionCount: agg.count,
			AvgAmount:        agg.total.Div(decimal.NewFromInt(int64(agg.count))).Round(2),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.TotalAmount.Equal(b.TotalAmount) {
			return a.TotalAmount.GreaterThan(b.TotalAmount)
		}
		return a.Tag < b.Tag
	})

	if len(result) > maxTopTags {
		result = result[:maxTopTags]
	}
	return result
}

func endOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}
