package order

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soletrade/admin/internal/domain"
	"github.com/soletrade/admin/internal/middleware"
	"github.com/soletrade/admin/internal/pkg"
)

// OrderPageHandler handles page rendering and htmx endpoints for the orders screen.
type OrderPageHandler struct {
	svc domain.OrderService
}

// NewOrderPageHandler creates a new OrderPageHandler with the given service.
func NewOrderPageHandler(svc domain.OrderService) *OrderPageHandler {
	return &OrderPageHandler{svc: svc}
}

// ListPage renders the order list with search and pagination.
// GET /orders
func (h *OrderPageHandler) ListPage(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	data := gin.H{
		"Active":    "orders",
		"Search":    req.Search,
		"Statuses":  domain.OrderStatuses,
		"CSRFToken": middleware.GetCSRFToken(c),
		"Session":   middleware.SessionFromContext(c),
	}

	result, err := h.svc.ListOrders(c.Request.Context(), req)
	if err != nil {
		data["Error"] = "Could not load orders"
		data["Orders"] = []domain.Order{}
		c.HTML(http.StatusOK, "order/list.html", data)
		return
	}

	data["Orders"] = result.Items
	data["Pagination"] = result
	data["BaseURL"] = "/orders"
	c.HTML(http.StatusOK, "order/list.html", data)
}

// StatusHTMX commits a status change and re-renders the affected row with
// the server-confirmed status. On rejection (terminal order, bad status) the
// row is left untouched and a toast explains why.
// POST /orders/:id/status
func (h *OrderPageHandler) StatusHTMX(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.HXToastError(c, "Invalid order id")
		return
	}

	status := c.PostForm("status")
	order, err := h.svc.UpdateOrderStatus(c.Request.Context(), id, status)
	if err != nil {
		pkg.HXToastError(c, pkg.SafeErrorMessage(err, "Failed to update order status"))
		return
	}

	c.HTML(http.StatusOK, "order/row.html", gin.H{
		"Order":    order,
		"Statuses": domain.OrderStatuses,
	})
}
