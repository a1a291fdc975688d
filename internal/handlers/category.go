package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finora-app/finora-backend/internal/catalog"
	"github.com/finora-app/finora-backend/internal/errs"
	"github.com/finora-app/finora-backend/internal/response"
)

type categoryHandlers struct {
	ResponseHandler response.ResponseHandler
	Catalog         *catalog.Catalog
}

func NewCategoryHandlers(deps *Deps) *categoryHandlers {
	return &categoryHandlers{
		ResponseHandler: deps.ResponseHandler,
		Catalog:         deps.Catalog,
	}
}

func (h *categoryHandlers) CategoryRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetCategories)
	r.Get("/{categoryId}/subcategories", h.GetSubcategories)
	return r
}

func (h *categoryHandlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, h.Catalog.Categories(), "Categories fetched successfully")
}

func (h *categoryHandlers) GetSubcategories(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	if _, ok := h.Catalog.Get(categoryID); !ok {
		h.ResponseHandler.HandleError(w, r, errs.NewNotFoundError("category not found"))
		return
	}
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, h.Catalog.Subcategories(categoryID), "Subcategories fetched successfully")
}
