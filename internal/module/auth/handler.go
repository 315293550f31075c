package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soletrade/admin/internal/middleware"
	"github.com/soletrade/admin/internal/pkg"
)

// AuthHandler exposes the JSON auth endpoints under /api/v1/auth.
type AuthHandler struct {
	svc Service
}

func NewHandler(svc Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	tok, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, tok)
}

// Logout handles POST /api/v1/auth/logout. Dropping the session cookie
// is all there is to it; bearer tokens just run out their expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	pkg.Success(c, nil)
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, pkg.Response{
		Code:    http.StatusCreated,
		Message: "operator registered successfully",
		Data: RegisterResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	})
}
