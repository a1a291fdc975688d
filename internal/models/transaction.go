package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is one user-owned financial event, stored under
// users/{uid}/transactions (ownership is the document path, not a field).
// Amount is exact decimal; Firestore has no decimal value type, so the
// document carries the canonical string form in RawAmount and the store
// converts at its boundary.
type Transaction struct {
	TransactionID   string          `firestore:"transactionId" json:"transactionId"`
	Type            TransactionType `firestore:"type" json:"type"`
	Currency        string          `firestore:"currency" json:"currency"`
	Amount          decimal.Decimal `firestore:"-" json:"amount"`
	RawAmount       string          `firestore:"amount" json:"-"`
	TransactionDate time.Time       `firestore:"transactionDate" json:"transactionDate"`
	CategoryID      string          `firestore:"categoryId" json:"categoryId"`
	SubcategoryID   string          `firestore:"subcategoryId" json:"subcategoryId,omitempty"`
	Description     string          `firestore:"description" json:"description,omitempty"`
	Notes           string          `firestore:"notes" json:"notes,omitempty"`
	Tags            []string        `firestore:"tags" json:"tags,omitempty"`
	CreatedAt       time.Time       `firestore:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time       `firestore:"updatedAt" json:"updatedAt"`
	IsDeleted       bool            `firestore:"isDeleted" json:"-"`
}

// EncodeAmount refreshes RawAmount from Amount before a write.
func (t *Transaction) EncodeAmount() {
	t.RawAmount = t.Amount.String()
}

// DecodeAmount restores Amount from RawAmount after a read.
func (t *Transaction) DecodeAmount() error {
	d, err := decimal.NewFromString(t.RawAmount)
	if err != nil {
		return err
	}
	t.Amount = d
	return nil
}
