package user

import (
	"github.com/gin-gonic/gin"

	"github.com/soletrade/admin/internal/domain"
	"github.com/soletrade/admin/internal/pkg"
)

// UserHandler handles REST API requests for the user resource. The console
// creates no users; accounts arrive from the storefront (or via operator
// registration in the auth module).
type UserHandler struct {
	svc domain.UserService
}

// NewUserHandler creates a new UserHandler with the given service.
func NewUserHandler(svc domain.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListUsers(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Get handles GET /api/v1/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	user, err := h.svc.GetUser(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, user)
}

// Block handles PATCH /api/v1/users/:id/block.
func (h *UserHandler) Block(c *gin.Context) {
	h.setStatus(c, domain.UserStatusBlocked)
}

// Unblock handles PATCH /api/v1/users/:id/unblock.
func (h *UserHandler) Unblock(c *gin.Context) {
	h.setStatus(c, domain.UserStatusActive)
}

func (h *UserHandler) setStatus(c *gin.Context, status string) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var user *domain.User
	if status == domain.UserStatusBlocked {
		user, err = h.svc.BlockUser(c.Request.Context(), id)
	} else {
		user, err = h.svc.UnblockUser(c.Request.Context(), id)
	}
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, user)
}

// Delete handles DELETE /api/v1/users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	if err := h.svc.DeleteUser(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}
