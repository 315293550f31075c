package product

import (
	"github.com/gin-gonic/gin"

	"github.com/soletrade/admin/internal/domain"
	"github.com/soletrade/admin/internal/pkg"
)

// ProductHandler handles REST API requests for the product resource.
type ProductHandler struct {
	svc domain.ProductService
}

// NewProductHandler creates a new ProductHandler with the given service.
func NewProductHandler(svc domain.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// List handles GET /api/v1/products.
func (h *ProductHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListProducts(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Get handles GET /api/v1/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	product, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, product)
}

// Create handles POST /api/v1/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	product, err := h.svc.CreateProduct(c.Request.Context(), draftFromCreate(&req))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, product)
}

// Update handles PATCH /api/v1/products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req UpdateProductRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	current, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	product, err := h.svc.UpdateProduct(c.Request.Context(), id, mergeDraft(current, &req))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, product)
}

// Delete handles DELETE /api/v1/products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	if err := h.svc.DeleteProduct(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// AdjustInventory handles PATCH /api/v1/products/:id/inventory.
func (h *ProductHandler) AdjustInventory(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req InventoryRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	product, err := h.svc.AdjustInventory(c.Request.Context(), id, req.Size, req.Quantity, req.Operation)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, product)
}

func draftFromCreate(req *CreateProductRequest) domain.ProductDraft {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	return domain.ProductDraft{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		FakePrice:   req.FakePrice,
		Category:    req.Category,
		IsAvailable: available,
		Images:      req.Images,
		Sizes:       sizeDrafts(req.Sizes),
	}
}

// mergeDraft overlays the present fields of a partial update onto the stored
// product and returns the resulting full draft.
func mergeDraft(current *domain.Product, req *UpdateProductRequest) domain.ProductDraft {
	draft := domain.ProductDraft{
		Name:        current.Name,
		Description: current.Description,
		Price:       current.Price,
		FakePrice:   current.FakePrice,
		Category:    current.Category,
		IsAvailable: current.IsAvailable,
	}
	for _, img := range current.Images {
		draft.Images = append(draft.Images, img.URL)
	}
	for _, sz := range current.Sizes {
		draft.Sizes = append(draft.Sizes, domain.SizeDraft{Size: sz.Size, Quantity: sz.Quantity})
	}

	if req.Name != nil {
		draft.Name = *req.Name
	}
	if req.Description != nil {
		draft.Description = *req.Description
	}
	if req.Price != nil {
		draft.Price = *req.Price
	}
	if req.FakePrice != nil {
		draft.FakePrice = req.FakePrice
	}
	if req.Category != nil {
		draft.Category = *req.Category
	}
	if req.IsAvailable != nil {
		draft.IsAvailable = *req.IsAvailable
	}
	if req.Images != nil {
		draft.Images = *req.Images
	}
	if req.Sizes != nil {
		draft.Sizes = sizeDrafts(*req.Sizes)
	}

	return draft
}

func sizeDrafts(rows []SizeRequest) []domain.SizeDraft {
	drafts := make([]domain.SizeDraft, 0, len(rows))
	for _, r := range rows {
		drafts = append(drafts, domain.SizeDraft{Size: r.Size, Quantity: r.Quantity})
	}
	return drafts
}
