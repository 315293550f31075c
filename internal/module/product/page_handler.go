package product

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/soletrade/admin/internal/domain"
	"github.com/soletrade/admin/internal/middleware"
	"github.com/soletrade/admin/internal/pkg"
)

// ProductPageHandler handles page rendering and htmx endpoints for the
// inventory screen.
type ProductPageHandler struct {
	svc domain.ProductService
}

// NewProductPageHandler creates a new ProductPageHandler with the given service.
func NewProductPageHandler(svc domain.ProductService) *ProductPageHandler {
	return &ProductPageHandler{svc: svc}
}

// ListPage renders the product list with search and pagination.
// GET /inventory
func (h *ProductPageHandler) ListPage(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	data := gin.H{
		"Active":    "inventory",
		"Search":    req.Search,
		"CSRFToken": middleware.GetCSRFToken(c),
		"Session":   middleware.SessionFromContext(c),
	}

	result, err := h.svc.ListProducts(c.Request.Context(), req)
	if err != nil {
		data["Error"] = "Could not load products"
		data["Products"] = []domain.Product{}
		c.HTML(http.StatusOK, "product/list.html", data)
		return
	}

	data["Products"] = result.Items
	data["Pagination"] = result
	data["BaseURL"] = "/inventory"
	c.HTML(http.StatusOK, "product/list.html", data)
}

// NewPage renders an empty product form.
// GET /inventory/new
func (h *ProductPageHandler) NewPage(c *gin.Context) {
	c.HTML(http.StatusOK, "product/form.html", gin.H{
		"Active":     "inventory",
		"Title":      "New product",
		"Action":     "/inventory",
		"Draft":      domain.ProductDraft{IsAvailable: true},
		"Categories": domain.ProductCategories,
		"CSRFToken":  middleware.GetCSRFToken(c),
		"Session":    middleware.SessionFromContext(c),
	})
}

// EditPage renders the product form pre-filled from the stored product.
// GET /inventory/:id/edit
func (h *ProductPageHandler) EditPage(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/inventory")
		return
	}

	product, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		c.Redirect(http.StatusFound, "/inventory")
		return
	}

	c.HTML(http.StatusOK, "product/form.html", gin.H{
		"Active":     "inventory",
		"Title":      "Edit product",
		"Action":     "/inventory/" + strconv.FormatUint(uint64(id), 10),
		"Draft":      draftFromProduct(product),
		"Categories": domain.ProductCategories,
		"CSRFToken":  middleware.GetCSRFToken(c),
		"Session":    middleware.SessionFromContext(c),
	})
}

// CreateForm processes the product form. On success the browser is sent to the
// list; on failure the form is re-rendered with the operator's draft intact.
// POST /inventory
func (h *ProductPageHandler) CreateForm(c *gin.Context) {
	draft, parseErr := parseProductForm(c)

	if parseErr == "" {
		_, err := h.svc.CreateProduct(c.Request.Context(), draft)
		if err == nil {
			c.Redirect(http.StatusFound, "/inventory")
			return
		}
		parseErr = pkg.SafeErrorMessage(err, "Failed to create product")
	}

	c.HTML(http.StatusOK, "product/form.html", gin.H{
		"Active":     "inventory",
		"Title":      "New product",
		"Action":     "/inventory",
		"Draft":      draft,
		"Error":      parseErr,
		"Categories": domain.ProductCategories,
		"CSRFToken":  middleware.GetCSRFToken(c),
		"Session":    middleware.SessionFromContext(c),
	})
}

// UpdateForm processes the edit form the same way CreateForm does.
// POST /inventory/:id
func (h *ProductPageHandler) UpdateForm(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.HXToastError(c, "Invalid product id")
		return
	}

	draft, parseErr := parseProductForm(c)

	if parseErr == "" {
		_, err := h.svc.UpdateProduct(c.Request.Context(), id, draft)
		if err == nil {
			c.Redirect(http.StatusFound, "/inventory")
			return
		}
		parseErr = pkg.SafeErrorMessage(err, "Failed to update product")
	}

	c.HTML(http.StatusOK, "product/form.html", gin.H{
		"Active":     "inventory",
		"Title":      "Edit product",
		"Action":     "/inventory/" + strconv.FormatUint(uint64(id), 10),
		"Draft":      draft,
		"Error":      parseErr,
		"Categories": domain.ProductCategories,
		"CSRFToken":  middleware.GetCSRFToken(c),
		"Session":    middleware.SessionFromContext(c),
	})
}

// DeleteHTMX deletes a product. On success the response body is empty and
// htmx removes the targeted row; on failure the row stays and a toast fires.
// DELETE /inventory/:id
func (h *ProductPageHandler) DeleteHTMX(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.HXToastError(c, "Invalid product id")
		return
	}

	if err := h.svc.DeleteProduct(c.Request.Context(), id); err != nil {
		if domain.IsNotFound(err) {
			pkg.HXToastError(c, "Product not found or already deleted")
			return
		}
		pkg.HXToastError(c, "Failed to delete product")
		return
	}

	pkg.ShowToast(c, "Product deleted", "success")
	c.Status(http.StatusOK)
}

// StockHTMX applies a per-size stock adjustment and re-renders the affected
// row. The row form uses hx-sync="this:drop" so a second submit while one is
// in flight is ignored rather than queued.
// POST /inventory/:id/stock
func (h *ProductPageHandler) StockHTMX(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.HXToastError(c, "Invalid product id")
		return
	}

	size, err := strconv.Atoi(c.PostForm("size"))
	if err != nil {
		pkg.HXToastError(c, "Invalid size")
		return
	}
	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil {
		pkg.HXToastError(c, "Invalid quantity")
		return
	}

	product, err := h.svc.AdjustInventory(c.Request.Context(), id, size, quantity, c.PostForm("operation"))
	if err != nil {
		pkg.HXToastError(c, pkg.SafeErrorMessage(err, "Failed to adjust stock"))
		return
	}

	c.HTML(http.StatusOK, "product/row.html", gin.H{
		"Product":   product,
		"CSRFToken": middleware.GetCSRFToken(c),
	})
}

// parseProductForm reads the product form, including its dynamic image and
// size rows, into a draft. A non-empty second return value is a user-facing
// parse error; draft is always populated as far as parsing got so the form
// can be re-rendered without losing input.
func parseProductForm(c *gin.Context) (domain.ProductDraft, string) {
	draft := domain.ProductDraft{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Category:    c.PostForm("category"),
		IsAvailable: c.PostForm("is_available") != "",
	}

	for _, u := range c.PostFormArray("images[]") {
		if strings.TrimSpace(u) != "" {
			draft.Images = append(draft.Images, strings.TrimSpace(u))
		}
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		return draft, "Enter a valid price"
	}
	draft.Price = price

	if raw := strings.TrimSpace(c.PostForm("fake_price")); raw != "" {
		fake, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return draft, "Enter a valid compare-at price"
		}
		draft.FakePrice = &fake
	}

	sizes := c.PostFormArray("sizes[]")
	quantities := c.PostFormArray("quantities[]")
	if len(sizes) != len(quantities) {
		return draft, "Size rows are incomplete"
	}
	for i := range sizes {
		if strings.TrimSpace(sizes[i]) == "" && strings.TrimSpace(quantities[i]) == "" {
			continue
		}
		size, err := strconv.Atoi(sizes[i])
		if err != nil {
			return draft, "Enter valid sizes"
		}
		quantity, err := strconv.Atoi(quantities[i])
		if err != nil {
			return draft, "Enter valid quantities"
		}
		draft.Sizes = append(draft.Sizes, domain.SizeDraft{Size: size, Quantity: quantity})
	}

	return draft, ""
}

func draftFromProduct(p *domain.Product) domain.ProductDraft {
	draft := domain.ProductDraft{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		FakePrice:   p.FakePrice,
		Category:    p.Category,
		IsAvailable: p.IsAvailable,
	}
	for _, img := range p.Images {
		draft.Images = append(draft.Images, img.URL)
	}
	for _, sz := range p.Sizes {
		draft.Sizes = append(draft.Sizes, domain.SizeDraft{Size: sz.Size, Quantity: sz.Quantity})
	}
	return draft
}
