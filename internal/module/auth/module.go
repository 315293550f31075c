package auth

import "github.com/gin-gonic/gin"

// AuthModule mounts the login endpoints and pages.
type AuthModule struct {
	handler     *AuthHandler
	pageHandler *AuthPageHandler
}

// NewModule wires the two handlers together. Nil handlers are a wiring
// bug, so it panics rather than limping along.
func NewModule(h *AuthHandler, ph *AuthPageHandler) *AuthModule {
	if h == nil || ph == nil {
		panic("auth.NewModule: nil handler")
	}
	return &AuthModule{handler: h, pageHandler: ph}
}

// RegisterRoutes registers the auth routes. They stay outside the
// session guard: the login screen must be reachable when the guard is
// enabled.
func (m *AuthModule) RegisterRoutes(api *gin.RouterGroup, pages *gin.RouterGroup) {
	grp := api.Group("/auth")
	grp.POST("/login", m.handler.Login)
	grp.POST("/logout", m.handler.Logout)
	grp.POST("/register", m.handler.Register)

	pages.GET("/login", m.pageHandler.LoginPage)
	pages.POST("/login", m.pageHandler.LoginForm)
	pages.POST("/logout", m.pageHandler.LogoutForm)
}
