package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finora-app/finora-backend/internal/models"
	"github.com/finora-app/finora-backend/pkg/helpers"
)

type stubUserStore struct {
	user            *models.User
	createUserCalls int
	err             error
}

func (s *stubUserStore) CreateUser(_ context.Context, user *models.User) error {
	s.user = user
	s.createUserCalls++
	return s.err
}

func (s *stubUserStore) UpdateUser(_ context.Context, _ *models.User) error { return nil }
func (s *stubUserStore) GetUser(_ context.Context, uid string) (*models.User, error) {
	if s.user != nil && s.user.UID == uid {
		return s.user, nil
	}
	return nil, s.err
}

func TestUserServiceRegister(t *testing.T) {
	store := &stubUserStore{}
	svc := NewUserService(store)

	ctx := helpers.TestCtx()
	now := time.Now()

	err := svc.Register(ctx, "uid-123", "user@example.com", "Jane", "Doe")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if store.createUserCalls != 1 {
		t.Fatalf("CreateUser called %d times, want 1", store.createUserCalls)
	}
	if store.user == nil {
		t.Fatalf("store received nil user")
	}
	if store.user.UID != "uid-123" || store.user.Email != "user@example.com" {
		t.Fatalf("unexpected user identifiers: %+v", store.user)
	}
	if store.user.FirstName != "Jane" || store.user.LastName != "Doe" {
		t.Fatalf("unexpected user name: %+v", store.user)
	}
	if store.user.CreatedAt.IsZero() || store.user.UpdatedAt.IsZero() {
		t.Fatalf("timestamps were not set: %+v", store.user)
	}
	if store.user.CreatedAt.Before(now) {
		t.Fatalf("CreatedAt set earlier than call time: %v before %v", store.user.CreatedAt, now)
	}
}

func TestUserServiceRegisterStoreError(t *testing.T) {
	store := &stubUserStore{err: errors.New("store failure")}
	svc := NewUserService(store)

	err := svc.Register(helpers.TestCtx(), "uid-456", "user2@example.com", "John", "Smith")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if store.createUserCalls != 1 {
		t.Fatalf("CreateUser called %d times, want 1", store.createUserCalls)
	}
}

func TestUserServiceGetProfile(t *testing.T) {
	store := &stubUserStore{user: &models.User{UID: "uid-1", Email: "a@b.c"}}
	svc := NewUserService(store)

	got, err := svc.GetProfile(context.Background(), "uid-1")
	if err != nil {
		t.Fatalf("GetProfile error: %v", err)
	}
	if got.Email != "a@b.c" {
		t.Fatalf("unexpected profile: %+v", got)
	}
}
