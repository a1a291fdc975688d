package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finora-app/finora-backend/internal/models"
)

type CreateTransactionRequest struct {
	Type            models.TransactionType `json:"type"`
	Currency        string                 `json:"currency"`
	Amount          decimal.Decimal        `json:"amount"`
	TransactionDate time.Time              `json:"transactionDate"`
	CategoryID      string                 `json:"categoryId"`
	SubcategoryID   string                 `json:"subcategoryId,omitempty"`
	Description     string                 `json:"description,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
	Tags            []string               `json:"tags,omitempty"`
}

// UpdateTransactionRequest is a partial update; nil fields are left unchanged.
type UpdateTransactionRequest struct {
	Type            *models.TransactionType `json:"type,omitempty"`
	Currency        *string                 `json:"currency,omitempty"`
	Amount          *decimal.Decimal        `json:"amount,omitempty"`
	TransactionDate *time.Time              `json:"transactionDate,omitempty"`
	CategoryID      *string                 `json:"categoryId,omitempty"`
	SubcategoryID   *string                 `json:"subcategoryId,omitempty"`
	Description     *string                 `json:"description,omitempty"`
	Notes           *string                 `json:"notes,omitempty"`
	Tags            []string                `json:"tags,omitempty"`
}

// TransactionQuery holds the store-level filters. Soft-deleted documents are
// always excluded; the store adds that condition itself.
type TransactionQuery struct {
	Type          *models.TransactionType
	CategoryID    *string
	SubcategoryID *string
	DateFrom      *time.Time
	DateTo        *time.Time
}

type TransactionListQuery struct {
	TransactionQuery
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

type Pagination struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

type TransactionListResult struct {
	Transactions []models.Transaction `json:"transactions"`
	Pagination   Pagination           `json:"pagination"`
}
