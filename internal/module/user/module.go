package user

import "github.com/gin-gonic/gin"

// UserModule mounts the user screen: JSON endpoints on the API group,
// HTML pages and htmx fragments on the page group.
type UserModule struct {
	handler     *UserHandler
	pageHandler *UserPageHandler
}

// NewModule wires the two handlers together. Nil handlers are a wiring
// bug, so it panics rather than limping along.
func NewModule(h *UserHandler, ph *UserPageHandler) *UserModule {
	if h == nil || ph == nil {
		panic("user.NewModule: nil handler")
	}
	return &UserModule{handler: h, pageHandler: ph}
}

// RegisterRoutes implements app.Module. Accounts are created through
// registration, not this screen, so the API has no create or update.
func (m *UserModule) RegisterRoutes(api *gin.RouterGroup, pages *gin.RouterGroup) {
	api.GET("/users", m.handler.List)
	api.GET("/users/:id", m.handler.Get)
	api.PATCH("/users/:id/block", m.handler.Block)
	api.PATCH("/users/:id/unblock", m.handler.Unblock)
	api.DELETE("/users/:id", m.handler.Delete)

	pages.GET("/users", m.pageHandler.ListPage)
	pages.POST("/users/:id/toggle", m.pageHandler.ToggleHTMX)
	pages.DELETE("/users/:id", m.pageHandler.DeleteHTMX)
}
