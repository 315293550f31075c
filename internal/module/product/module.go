package product

import "github.com/gin-gonic/gin"

// ProductModule mounts the inventory screen: JSON endpoints on the API
// group, HTML pages and htmx fragments on the page group.
type ProductModule struct {
	handler     *ProductHandler
	pageHandler *ProductPageHandler
}

// NewModule wires the two handlers together. Nil handlers are a wiring
// bug, so it panics rather than limping along.
func NewModule(h *ProductHandler, ph *ProductPageHandler) *ProductModule {
	if h == nil || ph == nil {
		panic("product.NewModule: nil handler")
	}
	return &ProductModule{handler: h, pageHandler: ph}
}

// RegisterRoutes implements app.Module. Pages live under /inventory,
// which is what the console calls this screen; the API keeps the
// resource name.
func (m *ProductModule) RegisterRoutes(api *gin.RouterGroup, pages *gin.RouterGroup) {
	api.GET("/products", m.handler.List)
	api.GET("/products/:id", m.handler.Get)
	api.POST("/products", m.handler.Create)
	api.PATCH("/products/:id", m.handler.Update)
	api.DELETE("/products/:id", m.handler.Delete)
	api.PATCH("/products/:id/inventory", m.handler.AdjustInventory)

	pages.GET("/inventory", m.pageHandler.ListPage)
	pages.GET("/inventory/new", m.pageHandler.NewPage)
	pages.GET("/inventory/:id/edit", m.pageHandler.EditPage)
	pages.POST("/inventory", m.pageHandler.CreateForm)
	pages.POST("/inventory/:id", m.pageHandler.UpdateForm)
	pages.POST("/inventory/:id/stock", m.pageHandler.StockHTMX)
	pages.DELETE("/inventory/:id", m.pageHandler.DeleteHTMX)
}
