package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/finora-app/finora-backend/internal/dto"
	"github.com/finora-app/finora-backend/internal/errs"
	"github.com/finora-app/finora-backend/internal/models"
)

type transactionStore struct {
	client *firestore.Client
}

func NewTransactionStore(client *firestore.Client) *transactionStore {
	return &transactionStore{client: client}
}

func (s *transactionStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("transactions")
}

func (s *transactionStore) Create(ctx context.Context, uid string, t *models.Transaction) error {
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	t.EncodeAmount()

	_, err := s.collection(uid).Doc(t.TransactionID).Create(ctx, t)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errs.NewAlreadyExistsError("transaction already exists")
		}
		return errs.NewDatabaseError("create", "failed to create transaction", err)
	}
	return nil
}

// Get returns a transaction by id. Soft-deleted documents behave as absent.
func (s *transactionStore) Get(ctx context.Context, uid, transactionID string) (*models.Transaction, error) {
	doc, err := s.collection(uid).Doc(transactionID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("transaction not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get transaction", err)
	}

	var t models.Transaction
	if err := doc.DataTo(&t); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
	}
	if t.IsDeleted {
		return nil, errs.NewNotFoundError("transaction not found")
	}
	if err := t.DecodeAmount(); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse transaction amount", err)
	}
	return &t, nil
}

func (s *transactionStore) Update(ctx context.Context, uid string, t *models.Transaction) error {
	t.UpdatedAt = time.Now()
	t.EncodeAmount()

	_, err := s.collection(uid).Doc(t.TransactionID).Set(ctx, t)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update transaction", err)
	}
	return nil
}

// SoftDelete flips the deletion flag; the document is never removed.
func (s *transactionStore) SoftDelete(ctx context.Context, uid, transactionID string) error {
	_, err := s.collection(uid).Doc(transactionID).Update(ctx, []firestore.Update{
		{Path: "isDeleted", Value: true},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errs.NewNotFoundError("transaction not found")
		}
		return errs.NewDatabaseError("delete", "failed to delete transaction", err)
	}
	return nil
}

// Query streams every non-deleted transaction matching q through handle.
// Filters are translated to Firestore conditions; ordering and pagination are
// the service layer's job so they stay deterministic and index-independent.
func (s *transactionStore) Query(ctx context.Context, uid string, q dto.TransactionQuery, handle func(*models.Transaction) error) error {
	fsq := s.collection(uid).Query.Where("isDeleted", "==", false)
	if q.Type != nil {
		fsq = fsq.Where("type", "==", string(*q.Type))
	}
	if q.CategoryID != nil {
		fsq = fsq.Where("categoryId", "==", *q.CategoryID)
	}
	if q.SubcategoryID != nil {
		fsq = fsq.Where("subcategoryId", "==", *q.SubcategoryID)
	}
	if q.DateFrom != nil {
		fsq = fsq.Where("transactionDate", ">=", *q.DateFrom)
	}
	if q.DateTo != nil {
		fsq = fsq.Where("transactionDate", "<=", *q.DateTo)
	}

	docs, err := fsq.Documents(ctx).GetAll()
	if err != nil {
		return errs.NewDatabaseError("read", "failed to query transactions", err)
	}

	for _, doc := range docs {
		var t models.Transaction
		if err := doc.DataTo(&t); err != nil {
			return errs.NewDatabaseError("read", "failed to parse transaction data", err)
		}
		if err := t.DecodeAmount(); err != nil {
			return errs.NewDatabaseError("read", "failed to parse transaction amount", err)
		}
		if err := handle(&t); err != nil {
			return err
		}
	}
	return nil
}
