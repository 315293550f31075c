package coupon

import "github.com/gin-gonic/gin"

// CouponModule mounts the coupon screen: JSON endpoints on the API
// group, HTML pages and htmx fragments on the page group.
type CouponModule struct {
	handler     *CouponHandler
	pageHandler *CouponPageHandler
}

// NewModule wires the two handlers together. Nil handlers are a wiring
// bug, so it panics rather than limping along.
func NewModule(h *CouponHandler, ph *CouponPageHandler) *CouponModule {
	if h == nil || ph == nil {
		panic("coupon.NewModule: nil handler")
	}
	return &CouponModule{handler: h, pageHandler: ph}
}

// RegisterRoutes implements app.Module.
func (m *CouponModule) RegisterRoutes(api *gin.RouterGroup, pages *gin.RouterGroup) {
	api.GET("/coupons", m.handler.List)
	api.GET("/coupons/:id", m.handler.Get)
	api.POST("/coupons", m.handler.Create)
	api.PATCH("/coupons/:id", m.handler.Update)
	api.DELETE("/coupons/:id", m.handler.Delete)
	api.POST("/coupons/:id/redeem", m.handler.Redeem)

	pages.GET("/coupons", m.pageHandler.ListPage)
	pages.GET("/coupons/new", m.pageHandler.NewPage)
	pages.GET("/coupons/:id/edit", m.pageHandler.EditPage)
	pages.POST("/coupons", m.pageHandler.CreateForm)
	pages.POST("/coupons/:id", m.pageHandler.UpdateForm)
	pages.POST("/coupons/:id/toggle", m.pageHandler.ToggleHTMX)
	pages.DELETE("/coupons/:id", m.pageHandler.DeleteHTMX)
}
