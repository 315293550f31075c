package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/soletrade/admin/internal/domain"
	"github.com/soletrade/admin/internal/pkg"
)

// --- mock service ---

type mockOrderService struct {
	orders map[uint]*domain.Order
	// hooks for error injection
	listErr   error
	updateErr error
}

func newMockService() *mockOrderService {
	return &mockOrderService{orders: make(map[uint]*domain.Order)}
}

func (m *mockOrderService) GetOrder(_ context.Context, id uint) (*domain.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (m *mockOrderService) ListOrders(_ context.Context, req domain.PageRequest) (*domain.PageResult[domain.Order], error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	items := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		items = append(items, *o)
	}
	return pkg.PageOf(items, int64(len(items)), req.Page, req.PageSize), nil
}

func (m *mockOrderService) UpdateOrderStatus(_ context.Context, id uint, status string) (*domain.Order, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	o, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if domain.TerminalOrderStatus(o.Status) {
		return nil, domain.NewAppError(domain.CodeValidation, "order is "+o.Status+" and can no longer change status", nil)
	}
	o.Status = status
	return o, nil
}

func seedServiceOrder(m *mockOrderService, id uint, status string) *domain.Order {
	o := &domain.Order{
		BaseModel: domain.BaseModel{ID: id},
		UserID:    1,
		Status:    status,
		Total:     99.90,
	}
	m.orders[id] = o
	return o
}

func setupAPIRouter(h *OrderHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/v1/orders", h.List)
	r.GET("/api/v1/orders/:id", h.Get)
	r.PATCH("/api/v1/orders/:id/status", h.UpdateStatus)
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

// --- tests ---

func TestHandler_Get(t *testing.T) {
	svc := newMockService()
	seedServiceOrder(svc, 1, domain.OrderStatusPending)
	r := setupAPIRouter(NewOrderHandler(svc))

	w := doJSON(r, http.MethodGet, "/api/v1/orders/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp pkg.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %T", resp.Data)
	}
	if data["status"] != domain.OrderStatusPending {
		t.Errorf("expected pending, got %v", data["status"])
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	svc := newMockService()
	r := setupAPIRouter(NewOrderHandler(svc))

	w := doJSON(r, http.MethodGet, "/api/v1/orders/99", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHandler_List(t *testing.T) {
	svc := newMockService()
	seedServiceOrder(svc, 1, domain.OrderStatusPending)
	r := setupAPIRouter(NewOrderHandler(svc))

	w := doJSON(r, http.MethodGet, "/api/v1/orders", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestHandler_UpdateStatus(t *testing.T) {
	svc := newMockService()
	seedServiceOrder(svc, 1, domain.OrderStatusPending)
	r := setupAPIRouter(NewOrderHandler(svc))

	w := doJSON(r, http.MethodPatch, "/api/v1/orders/1/status", `{"status":"shipped"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.orders[1].Status != domain.OrderStatusShipped {
		t.Errorf("expected shipped, got %q", svc.orders[1].Status)
	}
}

func TestHandler_UpdateStatus_UnknownStatus(t *testing.T) {
	svc := newMockService()
	seedServiceOrder(svc, 1, domain.OrderStatusPending)
	r := setupAPIRouter(NewOrderHandler(svc))

	// Rejected at binding: status must be one of the known lifecycle values.
	w := doJSON(r, http.MethodPatch, "/api/v1/orders/1/status", `{"status":"refunded"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp pkg.ValidationErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if _, ok := resp.Errors["status"]; !ok {
		t.Errorf("expected field error for status, got %+v", resp.Errors)
	}
}

func TestHandler_UpdateStatus_TerminalOrder(t *testing.T) {
	svc := newMockService()
	seedServiceOrder(svc, 1, domain.OrderStatusDelivered)
	r := setupAPIRouter(NewOrderHandler(svc))

	w := doJSON(r, http.MethodPatch, "/api/v1/orders/1/status", `{"status":"pending"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if svc.orders[1].Status != domain.OrderStatusDelivered {
		t.Errorf("terminal order must keep its status, got %q", svc.orders[1].Status)
	}
}

func TestHandler_UpdateStatus_MissingBody(t *testing.T) {
	svc := newMockService()
	seedServiceOrder(svc, 1, domain.OrderStatusPending)
	r := setupAPIRouter(NewOrderHandler(svc))

	w := doJSON(r, http.MethodPatch, "/api/v1/orders/1/status", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
