package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/finora-app/finora-backend/internal/dto"
	"github.com/finora-app/finora-backend/internal/errs"
	"github.com/finora-app/finora-backend/internal/models"
	"github.com/finora-app/finora-backend/pkg/logger"
)

const (
	maxDescriptionLength = 200
	maxNotesLength       = 500
	maxPageSize          = 100
	defaultPageSize      = 20
	defaultCurrency      = "USD"
)

// catalogReader is the read-only taxonomy view the services need.
type catalogReader interface {
	Get(id string) (models.Category, bool)
	GetSubcategory(categoryID, subID string) (models.Subcategory, bool)
}

type transactionTxStore interface {
	Create(ctx context.Context, uid string, t *models.Transaction) error
	Get(ctx context.Context, uid, transactionID string) (*models.Transaction, error)
	Update(ctx context.Context, uid string, t *models.Transaction) error
	SoftDelete(ctx context.Context, uid, transactionID string) error
	Query(ctx context.Context, uid string, q dto.TransactionQuery, handle func(*models.Transaction) error) error
}

type transactionService struct {
	store   transactionTxStore
	catalog catalogReader
}

func NewTransactionService(store transactionTxStore, catalog catalogReader) *transactionService {
	return &transactionService{store: store, catalog: catalog}
}

func (s *transactionService) CreateTransaction(ctx context.Context, uid string, req dto.CreateTransactionRequest) (*models.Transaction, error) {
	log := logger.FromContext(ctx)

	if !req.Type.Valid() {
		return nil, errs.NewValidationError(fmt.Sprintf("type must be %q or %q", models.TypeIncome, models.TypeExpense))
	}
	if !req.Amount.IsPositive() {
		return nil, errs.NewValidationError("amount must be greater than 0")
	}
	if req.TransactionDate.IsZero() {
		return nil, errs.NewValidationError("transactionDate is required")
	}
	if err := s.validateCategoryRef(req.CategoryID, req.SubcategoryID); err != nil {
		return nil, err
	}
	if err := validateTexts(req.Description, req.Notes); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	t := &models.Transaction{
		TransactionID:   uuid.New().String(),
		Type:            req.Type,
		Currency:        currency,
		Amount:          req.Amount,
		TransactionDate: req.TransactionDate,
		CategoryID:      req.CategoryID,
		SubcategoryID:   req.SubcategoryID,
		Description:     req.Description,
		Notes:           req.Notes,
		Tags:            req.Tags,
	}
	if err := s.store.Create(ctx, uid, t); err != nil {
		return nil, err
	}

	log.Info("transaction created", "transaction_id", t.TransactionID, "category_id", t.CategoryID)
	return t, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, uid, transactionID string) (*models.Transaction, error) {
	return s.store.Get(ctx, uid, transactionID)
}

func (s *transactionService) UpdateTransaction(ctx context.Context, uid, transactionID string, req dto.UpdateTransactionRequest) (*models.Transaction, error) {
	t, err := s.store.Get(ctx, uid, transactionID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		if !req.Type.Valid() {
			return nil, errs.NewValidationError(fmt.Sprintf("type must be %q or %q", models.TypeIncome, models.TypeExpense))
		}
		t.Type = *req.Type
	}
	if req.Currency != nil {
		t.Currency = *req.Currency
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, errs.NewValidationError("amount must be greater than 0")
		}
		t.Amount = *req.Amount
	}
	if req.TransactionDate != nil {
		t.TransactionDate = *req.TransactionDate
	}
	if req.CategoryID != nil {
		t.CategoryID = *req.CategoryID
	}
	if req.SubcategoryID != nil {
		t.SubcategoryID = *req.SubcategoryID
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Notes != nil {
		t.Notes = *req.Notes
	}
	if req.Tags != nil {
		t.Tags = req.Tags
	}

	// The category/subcategory pair must stay consistent after a partial
	// update that changes either side.
	if req.CategoryID != nil || req.SubcategoryID != nil {
		if err := s.validateCategoryRef(t.CategoryID, t.SubcategoryID); err != nil {
			return nil, err
		}
	}
	if err := validateTexts(t.Description, t.Notes); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, uid, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, uid, transactionID string) error {
	return s.store.SoftDelete(ctx, uid, transactionID)
}

func (s *transactionService) GetTransactionList(ctx context.Context, uid string, q dto.TransactionListQuery) (dto.TransactionListResult, error) {
	result := dto.TransactionListResult{Transactions: []models.Transaction{}}

	q, err := normalizeListQuery(q)
	if err != nil {
		return result, err
	}

	var txs []models.Transaction
	err = s.store.Query(ctx, uid, q.TransactionQuery, func(t *models.Transaction) error {
		txs = append(txs, *t)
		return nil
	})
	if err != nil {
		return result, err
	}

	sortTransactions(txs, q.SortBy, q.SortOrder)

	total := len(txs)
	totalPages := (total + q.Limit - 1) / q.Limit

	start := (q.Page - 1) * q.Limit
	if start < total {
		end := start + q.Limit
		if end > total {
			end = total
		}
		result.Transactions = txs[start:end]
	}

	result.Pagination = dto.Pagination{
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: totalPages,
		HasNext:    q.Page < totalPages,
		HasPrev:    q.Page > 1 && total > 0,
	}
	return result, nil
}

func (s *transactionService) validateCategoryRef(categoryID, subcategoryID string) error {
	if _, ok := s.catalog.Get(categoryID); !ok {
		return errs.NewNotFoundError(fmt.Sprintf("category %s not found", categoryID))
	}
	if subcategoryID != "" {
		if _, ok := s.catalog.GetSubcategory(categoryID, subcategoryID); !ok {
			return errs.NewNotFoundError(fmt.Sprintf("subcategory %s not found under category %s", subcategoryID, categoryID))
		}
	}
	return nil
}

func validateTexts(description, notes string) error {
	if len(description) > maxDescriptionLength {
		return errs.NewValidationError(fmt.Sprintf("description must be %d characters or less", maxDescriptionLength))
	}
	if len(notes) > maxNotesLength {
		return errs.NewValidationError(fmt.Sprintf("notes must be %d characters or less", maxNotesLength))
	}
	return nil
}

var listSortFields = map[string]bool{
	"transaction_date": true,
	"amount":           true,
	"created_at":       true,
	"updated_at":       true,
}

func normalizeListQuery(q dto.TransactionListQuery) (dto.TransactionListQuery, error) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Page < 1 {
		return q, errs.NewValidationError("page must be 1 or greater")
	}
	if q.Limit == 0 {
		q.Limit = defaultPageSize
	}
	if q.Limit < 1 || q.Limit > maxPageSize {
		return q, errs.NewValidationError(fmt.Sprintf("limit must be between 1 and %d", maxPageSize))
	}
	if q.SortBy == "" {
		q.SortBy = "transaction_date"
	}
	if _, ok := listSortFields[q.SortBy]; !ok {
		return q, errs.NewValidationError("sortBy must be one of: transaction_date, amount, created_at, updated_at")
	}
	switch q.SortOrder {
	case "":
		q.SortOrder = "desc"
	case "asc", "desc":
	default:
		return q, errs.NewValidationError("sortOrder must be asc or desc")
	}
	// An end date filters through the end of that day, same as the
	// analytics queries.
	if q.DateTo != nil {
		end := endOfDay(*q.DateTo)
		q.DateTo = &end
	}
	if q.DateFrom != nil && q.DateTo != nil && q.DateTo.Before(*q.DateFrom) {
		return q, errs.NewValidationError("end date must not be before start date")
	}
	return q, nil
}

// sortTransactions orders by the requested field with the transaction ID as a
// stable tiebreak, so pagination never duplicates or skips a record when the
// primary key has equal values.
func sortTransactions(txs []models.Transaction, sortBy, sortOrder string) {
	desc := sortOrder == "desc"
	sort.Slice(txs, func(i, j int) bool {
		cmp := compareField(&txs[i], &txs[j], sortBy)
		if cmp == 0 {
			return txs[i].TransactionID < txs[j].TransactionID
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareField(a, b *models.Transaction, field string) int {
	switch field {
	case "amount":
		return a.Amount.Cmp(b.Amount)
	case "created_at":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "updated_at":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default: // transaction_date
		return a.TransactionDate.Compare(b.TransactionDate)
	}
}
