package dashboard

import "github.com/gin-gonic/gin"

// DashboardModule mounts the landing screen with its stats endpoint.
type DashboardModule struct {
	handler *DashboardHandler
}

// NewModule wires the handler in. A nil handler is a wiring bug, so it
// panics rather than limping along.
func NewModule(h *DashboardHandler) *DashboardModule {
	if h == nil {
		panic("dashboard.NewModule: nil handler")
	}
	return &DashboardModule{handler: h}
}

// RegisterRoutes implements app.Module.
func (m *DashboardModule) RegisterRoutes(api *gin.RouterGroup, pages *gin.RouterGroup) {
	api.GET("/dashboard/stats", m.handler.Stats)

	pages.GET("/dashboard", m.handler.Page)
}
