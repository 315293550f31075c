package order

// UpdateStatusRequest represents the input for an order status update.
type UpdateStatusRequest struct {
	Status string `json:"status" form:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
}
