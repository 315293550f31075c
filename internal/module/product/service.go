package product

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/soletrade/admin/internal/domain"
)

// productService implements domain.ProductService.
type productService struct {
	repo domain.ProductRepository
}

// NewProductService creates a new ProductService with the given repository.
func NewProductService(repo domain.ProductRepository) domain.ProductService {
	return &productService{repo: repo}
}

// GetProduct retrieves a product by ID.
func (s *productService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ListProducts returns a paginated list of products.
func (s *productService) ListProducts(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Product], error) {
	return s.repo.List(ctx, req)
}

// CreateProduct validates the draft and persists a new product.
func (s *productService) CreateProduct(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	if err := validateDraft(&draft); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        draft.Name,
		Description: draft.Description,
		Price:       draft.Price,
		FakePrice:   draft.FakePrice,
		Category:    draft.Category,
		IsAvailable: draft.IsAvailable,
		Images:      imagesFromDraft(draft.Images),
		Sizes:       sizesFromDraft(draft.Sizes),
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// UpdateProduct validates the draft and replaces the stored product,
// children included.
func (s *productService) UpdateProduct(ctx context.Context, id uint, draft domain.ProductDraft) (*domain.Product, error) {
	if err := validateDraft(&draft); err != nil {
		return nil, err
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = draft.Name
	product.Description = draft.Description
	product.Price = draft.Price
	product.FakePrice = draft.FakePrice
	product.Category = draft.Category
	product.IsAvailable = draft.IsAvailable
	product.Images = imagesFromDraft(draft.Images)
	product.Sizes = sizesFromDraft(draft.Sizes)

	if err := s.repo.Update(ctx, product, true); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// DeleteProduct removes a product by ID.
func (s *productService) DeleteProduct(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// AdjustInventory applies a stock operation to one size of a product.
func (s *productService) AdjustInventory(ctx context.Context, id uint, size, quantity int, op string) (*domain.Product, error) {
	if !domain.ValidInventoryOp(op) {
		return nil, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("invalid inventory operation %q", op), nil)
	}
	if size < 1 {
		return nil, domain.NewAppError(domain.CodeValidation, "size must be positive", nil)
	}
	if quantity < 0 {
		return nil, domain.NewAppError(domain.CodeValidation, "quantity must not be negative", nil)
	}
	return s.repo.AdjustSizeQuantity(ctx, id, size, quantity, op)
}

// validateDraft checks draft invariants that go beyond per-field binding
// rules, trimming free-text fields in place.
func validateDraft(draft *domain.ProductDraft) error {
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Description = strings.TrimSpace(draft.Description)

	if draft.Name == "" {
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if utf8.RuneCountInString(draft.Name) < 2 {
		return domain.NewAppError(domain.CodeValidation, "name must be at least 2 characters", nil)
	}
	if draft.Price <= 0 {
		return domain.NewAppError(domain.CodeValidation, "price must be positive", nil)
	}
	if draft.FakePrice != nil && *draft.FakePrice <= draft.Price {
		return domain.NewAppError(domain.CodeValidation, "fake price must exceed the real price", nil)
	}
	if !domain.ValidCategory(draft.Category) {
		return domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("invalid category %q", draft.Category), nil)
	}

	seen := make(map[int]bool, len(draft.Sizes))
	for _, sz := range draft.Sizes {
		if sz.Size < 1 {
			return domain.NewAppError(domain.CodeValidation, "sizes must be positive", nil)
		}
		if sz.Quantity < 0 {
			return domain.NewAppError(domain.CodeValidation, "size quantities must not be negative", nil)
		}
		if seen[sz.Size] {
			return domain.NewAppError(domain.CodeValidation,
				fmt.Sprintf("size %d listed twice", sz.Size), nil)
		}
		seen[sz.Size] = true
	}

	for _, img := range draft.Images {
		if strings.TrimSpace(img) == "" {
			return domain.NewAppError(domain.CodeValidation, "image URLs must not be empty", nil)
		}
	}

	return nil
}

func imagesFromDraft(urls []string) []domain.ProductImage {
	images := make([]domain.ProductImage, 0, len(urls))
	for i, u := range urls {
		images = append(images, domain.ProductImage{Position: i, URL: strings.TrimSpace(u)})
	}
	return images
}

func sizesFromDraft(sizes []domain.SizeDraft) []domain.ProductSize {
	rows := make([]domain.ProductSize, 0, len(sizes))
	for i, sz := range sizes {
		rows = append(rows, domain.ProductSize{Position: i, Size: sz.Size, Quantity: sz.Quantity})
	}
	return rows
}
