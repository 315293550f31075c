package coupon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/soletrade/admin/internal/domain"
	"github.com/soletrade/admin/internal/pkg"
)

// The handler tests run against the real service over the mock repository so
// code normalization and merge semantics are covered end to end.

func setupAPIRouter(svc domain.CouponService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCouponHandler(svc)
	r.GET("/api/v1/coupons", h.List)
	r.POST("/api/v1/coupons", h.Create)
	r.GET("/api/v1/coupons/:id", h.Get)
	r.PATCH("/api/v1/coupons/:id", h.Update)
	r.DELETE("/api/v1/coupons/:id", h.Delete)
	r.POST("/api/v1/coupons/:id/redeem", h.Redeem)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

const createBody = `{
	"code": "summer20",
	"description": "Summer sale",
	"discount_type": "percentage",
	"discount_value": 20,
	"start_date": "2025-06-01T00:00:00Z",
	"end_date": "2025-08-31T23:59:59Z",
	"usage_limit": 100
}`

// --- tests ---

func TestHandler_Create(t *testing.T) {
	repo := newMockRepo()
	r := setupAPIRouter(NewCouponService(repo))

	w := doJSON(r, http.MethodPost, "/api/v1/coupons", createBody)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp pkg.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %T", resp.Data)
	}
	if data["code"] != "SUMMER20" {
		t.Errorf("expected normalized code SUMMER20, got %v", data["code"])
	}
	// Activity defaults to true when the field is absent.
	if data["is_active"] != true {
		t.Errorf("expected is_active true, got %v", data["is_active"])
	}
}

func TestHandler_Create_BindingErrors(t *testing.T) {
	repo := newMockRepo()
	r := setupAPIRouter(NewCouponService(repo))

	w := doJSON(r, http.MethodPost, "/api/v1/coupons", `{"code": "AB", "discount_type": "amount"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp pkg.ValidationErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	for _, field := range []string{"code", "discount_type", "discount_value"} {
		if _, ok := resp.Errors[field]; !ok {
			t.Errorf("expected field error for %s, got %+v", field, resp.Errors)
		}
	}
}

func TestHandler_Create_PercentageOver100(t *testing.T) {
	repo := newMockRepo()
	r := setupAPIRouter(NewCouponService(repo))

	body := strings.Replace(createBody, `"discount_value": 20`, `"discount_value": 120`, 1)
	w := doJSON(r, http.MethodPost, "/api/v1/coupons", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "percentage discount cannot exceed 100") {
		t.Errorf("expected percentage message, got %s", w.Body.String())
	}
}

func TestHandler_Create_DuplicateCode(t *testing.T) {
	repo := newMockRepo()
	r := setupAPIRouter(NewCouponService(repo))

	if w := doJSON(r, http.MethodPost, "/api/v1/coupons", createBody); w.Code != http.StatusOK {
		t.Fatalf("first create: expected 200, got %d", w.Code)
	}
	w := doJSON(r, http.MethodPost, "/api/v1/coupons", createBody)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestHandler_Update_PartialMerge(t *testing.T) {
	repo := newMockRepo()
	r := setupAPIRouter(NewCouponService(repo))

	if w := doJSON(r, http.MethodPost, "/api/v1/coupons", createBody); w.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d", w.Code)
	}

	w := doJSON(r, http.MethodPatch, "/api/v1/coupons/1", `{"description": "Extended sale"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	stored := repo.coupons[1]
	if stored.Description != "Extended sale" {
		t.Errorf("expected updated description, got %q", stored.Description)
	}
	if stored.Code != "SUMMER20" {
		t.Errorf("expected code kept, got %q", stored.Code)
	}
}

func TestHandler_Redeem(t *testing.T) {
	repo := newMockRepo()
	r := setupAPIRouter(NewCouponService(repo))

	if w := doJSON(r, http.MethodPost, "/api/v1/coupons", createBody); w.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d", w.Code)
	}

	w := doJSON(r, http.MethodPost, "/api/v1/coupons/1/redeem", `{"user": "alice@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if repo.coupons[1].UsedCount != 1 {
		t.Errorf("UsedCount = %d; want 1", repo.coupons[1].UsedCount)
	}
}

func TestHandler_Redeem_MissingUser(t *testing.T) {
	repo := newMockRepo()
	r := setupAPIRouter(NewCouponService(repo))

	if w := doJSON(r, http.MethodPost, "/api/v1/coupons", createBody); w.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d", w.Code)
	}

	w := doJSON(r, http.MethodPost, "/api/v1/coupons/1/redeem", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandler_Delete(t *testing.T) {
	repo := newMockRepo()
	r := setupAPIRouter(NewCouponService(repo))

	if w := doJSON(r, http.MethodPost, "/api/v1/coupons", createBody); w.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d", w.Code)
	}

	w := doJSON(r, http.MethodDelete, "/api/v1/coupons/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(repo.coupons) != 0 {
		t.Errorf("expected coupon removed, %d remain", len(repo.coupons))
	}

	w = doJSON(r, http.MethodDelete, "/api/v1/coupons/1", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", w.Code)
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	repo := newMockRepo()
	r := setupAPIRouter(NewCouponService(repo))

	w := doJSON(r, http.MethodGet, "/api/v1/coupons/99", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
