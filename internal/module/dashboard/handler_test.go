package dashboard

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/soletrade/admin/internal/domain"
)

func setupDashboardRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("").Parse(`
		{{define "dashboard/index.html"}}{{if .Error}}error:{{.Error}}{{else}}stats:{{.Stats.UserCount}}/{{.Stats.OrderCount}}/{{.Stats.TotalRevenue}}{{end}}{{end}}
	`)))

	h := NewDashboardHandler(svc)
	r.GET("/dashboard", h.Page)
	r.GET("/api/v1/dashboard/stats", h.Stats)
	return r
}

func TestStatsAPI(t *testing.T) {
	svc := newStatsService(
		&fakeUserRepo{count: 3},
		&fakeOrderRepo{count: 9, revenue: 250.00, recent: []domain.Order{{Status: domain.OrderStatusPending}}},
		&fakeProductRepo{count: 4},
		&fakeCouponRepo{count: 2},
	)
	r := setupDashboardRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Code int `json:"code"`
		Data struct {
			UserCount    int64          `json:"user_count"`
			OrderCount   int64          `json:"order_count"`
			TotalRevenue float64        `json:"total_revenue"`
			RecentOrders []domain.Order `json:"recent_orders"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Data.UserCount != 3 || resp.Data.OrderCount != 9 {
		t.Errorf("counts = %d/%d; want 3/9", resp.Data.UserCount, resp.Data.OrderCount)
	}
	if resp.Data.TotalRevenue != 250.00 {
		t.Errorf("total_revenue = %v; want 250", resp.Data.TotalRevenue)
	}
	if len(resp.Data.RecentOrders) != 1 {
		t.Errorf("len(recent_orders) = %d; want 1", len(resp.Data.RecentOrders))
	}
}

func TestStatsAPI_RepoError(t *testing.T) {
	svc := newStatsService(&fakeUserRepo{countErr: errors.New("db down")}, nil, nil, nil)
	r := setupDashboardRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d; want 500; body: %s", w.Code, w.Body.String())
	}
}

func TestDashboardPage(t *testing.T) {
	svc := newStatsService(
		&fakeUserRepo{count: 8},
		&fakeOrderRepo{count: 21, revenue: 99.50},
		&fakeProductRepo{count: 5},
		&fakeCouponRepo{count: 1},
	)
	r := setupDashboardRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "stats:8/21/99.5") {
		t.Errorf("body = %q; want rendered stats", w.Body.String())
	}
}

func TestDashboardPage_ServiceError(t *testing.T) {
	svc := newStatsService(nil, &fakeOrderRepo{revenueErr: errors.New("db down")}, nil, nil)
	r := setupDashboardRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "error:Could not load dashboard statistics") {
		t.Errorf("body = %q; want error banner", w.Body.String())
	}
}
