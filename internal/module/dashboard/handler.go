package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soletrade/admin/internal/middleware"
	"github.com/soletrade/admin/internal/pkg"
)

// DashboardHandler serves the dashboard page and its stats API.
type DashboardHandler struct {
	svc *Service
}

// NewDashboardHandler creates a new DashboardHandler with the given service.
func NewDashboardHandler(svc *Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats handles GET /api/v1/dashboard/stats.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, stats)
}

// Page renders the dashboard.
// GET /dashboard
func (h *DashboardHandler) Page(c *gin.Context) {
	data := gin.H{
		"Active":    "dashboard",
		"CSRFToken": middleware.GetCSRFToken(c),
		"Session":   middleware.SessionFromContext(c),
	}

	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		data["Error"] = "Could not load dashboard statistics"
		c.HTML(http.StatusOK, "dashboard/index.html", data)
		return
	}

	data["Stats"] = stats
	c.HTML(http.StatusOK, "dashboard/index.html", data)
}
