package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/soletrade/admin/internal/middleware"
)

// AuthPageHandler renders the login screen and processes form logins.
type AuthPageHandler struct {
	svc         Service
	tokenExpiry time.Duration
}

// NewPageHandler creates a new AuthPageHandler.
func NewPageHandler(svc Service, tokenExpiry time.Duration) *AuthPageHandler {
	return &AuthPageHandler{svc: svc, tokenExpiry: tokenExpiry}
}

// LoginPage renders the login form. An already signed-in operator is sent
// straight to the dashboard.
// GET /login
func (h *AuthPageHandler) LoginPage(c *gin.Context) {
	if middleware.SessionFromContext(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	c.HTML(http.StatusOK, "auth/login.html", gin.H{
		"Next":      safeNext(c.Query("next")),
		"CSRFToken": middleware.GetCSRFToken(c),
	})
}

// LoginForm processes the login form, sets the session cookie, and redirects
// to the preserved return path (or the dashboard).
// POST /login
func (h *AuthPageHandler) LoginForm(c *gin.Context) {
	next := safeNext(c.PostForm("next"))

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusOK, "auth/login.html", gin.H{
			"Error":     "Enter a valid email and a password of at least 8 characters",
			"Email":     c.PostForm("email"),
			"Next":      next,
			"CSRFToken": middleware.GetCSRFToken(c),
		})
		return
	}

	tokenResp, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.HTML(http.StatusOK, "auth/login.html", gin.H{
			"Error":     "Invalid email or password",
			"Email":     req.Email,
			"Next":      next,
			"CSRFToken": middleware.GetCSRFToken(c),
		})
		return
	}

	middleware.SetSessionCookie(c, tokenResp.Token, h.tokenExpiry)
	c.Redirect(http.StatusFound, next)
}

// LogoutForm clears the session cookie and returns to the login screen.
// POST /logout
func (h *AuthPageHandler) LogoutForm(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login")
}

// safeNext restricts the post-login redirect to same-site relative paths.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/dashboard"
	}
	return next
}
