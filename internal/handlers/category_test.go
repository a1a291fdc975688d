package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finora-app/finora-backend/internal/catalog"
	"github.com/finora-app/finora-backend/internal/models"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog load error: %v", err)
	}
	return c
}

func TestGetCategories(t *testing.T) {
	resp := &stubResponseHandler{}
	h := NewCategoryHandlers(&Deps{
		ResponseHandler: resp,
		Catalog:         testCatalog(t),
	})

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	rr := httptest.NewRecorder()
	h.GetCategories(rr, req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("WriteSuccess not called with status 200")
	}
	cats, ok := resp.writeSuccessData.([]models.Category)
	if !ok || len(cats) == 0 {
		t.Fatalf("unexpected payload: %+v", resp.writeSuccessData)
	}
}

func TestGetSubcategories(t *testing.T) {
	resp := &stubResponseHandler{}
	h := NewCategoryHandlers(&Deps{
		ResponseHandler: resp,
		Catalog:         testCatalog(t),
	})

	req := httptest.NewRequest(http.MethodGet, "/categories/food_dining/subcategories", nil)
	req = withChiParam(req, "categoryId", "food_dining")
	rr := httptest.NewRecorder()
	h.GetSubcategories(rr, req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("WriteSuccess not called with status 200")
	}
	subs, ok := resp.writeSuccessData.([]models.Subcategory)
	if !ok || len(subs) == 0 {
		t.Fatalf("unexpected payload: %+v", resp.writeSuccessData)
	}
	for _, sub := range subs {
		if sub.CategoryID != "food_dining" {
			t.Fatalf("subcategory outside requested category: %+v", sub)
		}
	}
}

func TestGetSubcategoriesUnknownCategory(t *testing.T) {
	resp := &stubResponseHandler{}
	h := NewCategoryHandlers(&Deps{
		ResponseHandler: resp,
		Catalog:         testCatalog(t),
	})

	req := httptest.NewRequest(http.MethodGet, "/categories/ghost/subcategories", nil)
	req = withChiParam(req, "categoryId", "ghost")
	rr := httptest.NewRecorder()
	h.GetSubcategories(rr, req)

	if !resp.handleErrorCalled {
		t.Fatalf("HandleError should be called for an unknown category")
	}
	if resp.writeSuccessCalled {
		t.Fatalf("WriteSuccess should not be called for an unknown category")
	}
}
