package order

import "github.com/gin-gonic/gin"

// OrderModule mounts the order screen: JSON endpoints on the API group,
// HTML pages and htmx fragments on the page group.
type OrderModule struct {
	handler     *OrderHandler
	pageHandler *OrderPageHandler
}

// NewModule wires the two handlers together. Nil handlers are a wiring
// bug, so it panics rather than limping along.
func NewModule(h *OrderHandler, ph *OrderPageHandler) *OrderModule {
	if h == nil || ph == nil {
		panic("order.NewModule: nil handler")
	}
	return &OrderModule{handler: h, pageHandler: ph}
}

// RegisterRoutes implements app.Module. Orders are placed by the shop,
// never from the console, so the only mutation is the status change.
func (m *OrderModule) RegisterRoutes(api *gin.RouterGroup, pages *gin.RouterGroup) {
	api.GET("/orders", m.handler.List)
	api.GET("/orders/:id", m.handler.Get)
	api.PATCH("/orders/:id/status", m.handler.UpdateStatus)

	pages.GET("/orders", m.pageHandler.ListPage)
	pages.POST("/orders/:id/status", m.pageHandler.StatusHTMX)
}
