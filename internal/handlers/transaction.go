package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finora-app/finora-backend/internal/dto"
	"github.com/finora-app/finora-backend/internal/middleware"
	"github.com/finora-app/finora-backend/internal/models"
	"github.com/finora-app/finora-backend/internal/response"
)

type TransactionService interface {
	CreateTransaction(ctx context.Context, uid string, req dto.CreateTransactionRequest) (*models.Transaction, error)
	GetTransaction(ctx context.Context, uid, transactionID string) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, uid, transactionID string, req dto.UpdateTransactionRequest) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, uid, transactionID string) error
	GetTransactionList(ctx context.Context, uid string, q dto.TransactionListQuery) (dto.TransactionListResult, error)
}

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	TransactionSvc  TransactionService
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		TransactionSvc:  deps.TransactionSvc,
	}
}

func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateTransaction)
	r.Get("/", h.GetTransactionList)
	r.Get("/{transactionId}", h.GetTransaction)
	r.Put("/{transactionId}", h.UpdateTransaction)
	r.Delete("/{transactionId}", h.DeleteTransaction)
	return r
}

func (h *transactionHandlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	tx, err := h.TransactionSvc.CreateTransaction(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, http.StatusCreated, tx, "Transaction created successfully")
}

func (h *transactionHandlers) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionId")
	uid := middleware.UID(r.Context())
	tx, err := h.TransactionSvc.GetTransaction(r.Context(), uid, transactionID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, tx, "Transaction fetched successfully")
}

func (h *transactionHandlers) GetTransactionList(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	result, err := h.TransactionSvc.GetTransactionList(r.Context(), uid, q)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, result, "Transactions fetched successfully")
}

func (h *transactionHandlers) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionId")
	var req dto.UpdateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	tx, err := h.TransactionSvc.UpdateTransaction(r.Context(), uid, transactionID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, tx, "Transaction updated successfully")
}

func (h *transactionHandlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionId")
	uid := middleware.UID(r.Context())
	if err := h.TransactionSvc.DeleteTransaction(r.Context(), uid, transactionID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, nil, "Transaction deleted successfully")
}

func parseListQuery(r *http.Request) (dto.TransactionListQuery, error) {
	var q dto.TransactionListQuery
	var err error

	if q.Page, err = intParam(r, "page", 0); err != nil {
		return q, err
	}
	if q.Limit, err = intParam(r, "limit", 0); err != nil {
		return q, err
	}
	if q.DateFrom, err = dateParam(r, "start_date"); err != nil {
		return q, err
	}
	if q.DateTo, err = dateParam(r, "end_date"); err != nil {
		return q, err
	}
	if q.Type, err = typeParam(r); err != nil {
		return q, err
	}
	q.CategoryID = stringParam(r, "category_id")
	q.SubcategoryID = stringParam(r, "subcategory_id")
	q.SortBy = r.URL.Query().Get("sort_by")
	q.SortOrder = r.URL.Query().Get("sort_order")
	return q, nil
}
