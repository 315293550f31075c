package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soletrade/admin/internal/domain"
	"github.com/soletrade/admin/internal/middleware"
	"github.com/soletrade/admin/internal/pkg"
)

// UserPageHandler handles page rendering and htmx endpoints for the users screen.
type UserPageHandler struct {
	svc domain.UserService
}

// NewUserPageHandler creates a new UserPageHandler with the given service.
func NewUserPageHandler(svc domain.UserService) *UserPageHandler {
	return &UserPageHandler{svc: svc}
}

// ListPage renders the user list with search and pagination.
// GET /users
func (h *UserPageHandler) ListPage(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	data := gin.H{
		"Active":    "users",
		"Search":    req.Search,
		"CSRFToken": middleware.GetCSRFToken(c),
		"Session":   middleware.SessionFromContext(c),
	}

	result, err := h.svc.ListUsers(c.Request.Context(), req)
	if err != nil {
		data["Error"] = "Could not load users"
		data["Users"] = []domain.User{}
		c.HTML(http.StatusOK, "user/list.html", data)
		return
	}

	data["Users"] = result.Items
	data["Pagination"] = result
	data["BaseURL"] = "/users"
	c.HTML(http.StatusOK, "user/list.html", data)
}

// ToggleHTMX flips the user between active and blocked and re-renders the
// affected row. The row's toggle button uses hx-sync="this:drop" so clicks
// made while a toggle is in flight are ignored rather than queued.
// POST /users/:id/toggle
func (h *UserPageHandler) ToggleHTMX(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.HXToastError(c, "Invalid user id")
		return
	}

	ctx := c.Request.Context()
	current, err := h.svc.GetUser(ctx, id)
	if err != nil {
		pkg.HXToastError(c, pkg.SafeErrorMessage(err, "Failed to update user status"))
		return
	}

	var updated *domain.User
	if current.Blocked() {
		updated, err = h.svc.UnblockUser(ctx, id)
	} else {
		updated, err = h.svc.BlockUser(ctx, id)
	}
	if err != nil {
		pkg.HXToastError(c, pkg.SafeErrorMessage(err, "Failed to update user status"))
		return
	}

	c.HTML(http.StatusOK, "user/row.html", gin.H{"User": updated})
}

// DeleteHTMX deletes a user. On success the response body is empty and htmx
// removes exactly the targeted row (swap delete); on failure the row stays
// and only a toast fires.
// DELETE /users/:id
func (h *UserPageHandler) DeleteHTMX(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.HXToastError(c, "Invalid user id")
		return
	}

	if err := h.svc.DeleteUser(c.Request.Context(), id); err != nil {
		if domain.IsNotFound(err) {
			pkg.HXToastError(c, "User not found or already deleted")
			return
		}
		pkg.HXToastError(c, "Failed to delete user")
		return
	}

	pkg.ShowToast(c, "User deleted", "success")
	c.Status(http.StatusOK)
}
