package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"

	"github.com/finora-app/finora-backend/internal/dto"
	"github.com/finora-app/finora-backend/internal/errs"
	"github.com/finora-app/finora-backend/internal/models"
)

func emulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), "test-project")
	if err != nil {
		t.Fatalf("firestore client error: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestTransactionLifecycleWithEmulator(t *testing.T) {
	client := emulatorClient(t)
	ctx := context.Background()
	store := NewTransactionStore(client)
	uid := "lifecycle-user"

	tx := &models.Transaction{
		TransactionID:   "t1",
		Type:            models.TypeExpense,
		Currency:        "USD",
		Amount:          decimal.RequireFromString("12.34"),
		TransactionDate: time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		CategoryID:      "food_dining",
	}

	if err := store.Create(ctx, uid, tx); err != nil {
		t.Fatalf("create error: %v", err)
	}

	dup := *tx
	err := store.Create(ctx, uid, &dup)
	var existsErr *errs.AlreadyExistsError
	if !errors.As(err, &existsErr) {
		t.Fatalf("expected AlreadyExistsError on duplicate create, got %v", err)
	}

	got, err := store.Get(ctx, uid, "t1")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if !got.Amount.Equal(decimal.RequireFromString("12.34")) {
		t.Fatalf("amount not restored exactly: %s", got.Amount)
	}

	got.Amount = decimal.RequireFromString("99.99")
	if err := store.Update(ctx, uid, got); err != nil {
		t.Fatalf("update error: %v", err)
	}
	updated, err := store.Get(ctx, uid, "t1")
	if err != nil {
		t.Fatalf("get after update error: %v", err)
	}
	if !updated.Amount.Equal(decimal.RequireFromString("99.99")) {
		t.Fatalf("updated amount mismatch: %s", updated.Amount)
	}

	if err := store.SoftDelete(ctx, uid, "t1"); err != nil {
		t.Fatalf("soft delete error: %v", err)
	}
	_, err = store.Get(ctx, uid, "t1")
	var nfErr *errs.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("soft-deleted transaction should read as not found, got %v", err)
	}
}

func TestTransactionQueryWithEmulator(t *testing.T) {
	client := emulatorClient(t)
	ctx := context.Background()
	store := NewTransactionStore(client)
	uid := "query-user"

	seed := []*models.Transaction{
		{
			TransactionID:   "q1",
			Type:            models.TypeExpense,
			Amount:          decimal.RequireFromString("10"),
			TransactionDate: time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
			CategoryID:      "food_dining",
		},
		{
			TransactionID:   "q2",
			Type:            models.TypeIncome,
			Amount:          decimal.RequireFromString("2500"),
			TransactionDate: time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
			CategoryID:      "income",
		},
		{
			TransactionID:   "q3",
			Type:            models.TypeExpense,
			Amount:          decimal.RequireFromString("40"),
			TransactionDate: time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
			CategoryID:      "food_dining",
		},
	}
	for _, tx := range seed {
		if err := store.Create(ctx, uid, tx); err != nil {
			t.Fatalf("seed error: %v", err)
		}
	}
	if err := store.SoftDelete(ctx, uid, "q3"); err != nil {
		t.Fatalf("seed soft delete error: %v", err)
	}

	txType := models.TypeExpense
	category := "food_dining"
	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.January, 31, 23, 59, 59, 0, time.UTC)

	var results []models.Transaction
	err := store.Query(ctx, uid, dto.TransactionQuery{
		Type:       &txType,
		CategoryID: &category,
		DateFrom:   &from,
		DateTo:     &to,
	}, func(tx *models.Transaction) error {
		results = append(results, *tx)
		return nil
	})
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].TransactionID != "q1" {
		t.Fatalf("unexpected transaction: %s", results[0].TransactionID)
	}
	if !results[0].Amount.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("amount not decoded: %s", results[0].Amount)
	}

	// No filters returns everything except soft-deleted records.
	results = nil
	err = store.Query(ctx, uid, dto.TransactionQuery{}, func(tx *models.Transaction) error {
		results = append(results, *tx)
		return nil
	})
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}
