package order

import (
	"github.com/gin-gonic/gin"

	"github.com/soletrade/admin/internal/domain"
	"github.com/soletrade/admin/internal/pkg"
)

// OrderHandler handles REST API requests for the order resource.
type OrderHandler struct {
	svc domain.OrderService
}

// NewOrderHandler creates a new OrderHandler with the given service.
func NewOrderHandler(svc domain.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// List handles GET /api/v1/orders.
func (h *OrderHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListOrders(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Get handles GET /api/v1/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	order, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, order)
}

// UpdateStatus handles PATCH /api/v1/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req UpdateStatusRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	order, err := h.svc.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, order)
}
