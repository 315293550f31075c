package product

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/soletrade/admin/internal/domain"
	"github.com/soletrade/admin/internal/pkg"
)

var (
	allowedSortFields = []string{"id", "name", "price", "category", "created_at", "updated_at"}
	searchFields      = []string{"name", "category"}
)

// productRepository implements domain.ProductRepository using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new ProductRepository backed by the given GORM database.
func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a product with its images and sizes.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a product with its children in stored order.
func (r *productRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).
		Preload("Images", orderByPosition).
		Preload("Sizes", orderByPosition).
		First(&product, id).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &product, nil
}

// List returns one page of products matching the search term.
func (r *productRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Product], error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&domain.Product{}).
		Scopes(pkg.Search(req, searchFields))

	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	page := pkg.ClampPage(req.Page, total, req.PageSize)

	var products []domain.Product
	err := base.
		Preload("Images", orderByPosition).
		Preload("Sizes", orderByPosition).
		Scopes(
			pkg.Paginate(page, req.PageSize),
			pkg.Sort(req, allowedSortFields),
		).
		Find(&products).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.PageOf(products, total, page, req.PageSize), nil
}

// Update saves the product's scalar fields and, when replaceChildren is set,
// replaces its images and sizes wholesale. Everything runs in one transaction
// so a half-replaced child set is never observable.
func (r *productRepository) Update(ctx context.Context, product *domain.Product, replaceChildren bool) error {
	err := pkg.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		updates := map[string]any{
			"name":         product.Name,
			"description":  product.Description,
			"price":        product.Price,
			"fake_price":   product.FakePrice,
			"category":     product.Category,
			"is_available": product.IsAvailable,
		}
		result := tx.Model(&domain.Product{}).Where("id = ?", product.ID).Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		if !replaceChildren {
			return nil
		}

		if err := tx.Where("product_id = ?", product.ID).Delete(&domain.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&domain.ProductSize{}).Error; err != nil {
			return err
		}
		for i := range product.Images {
			product.Images[i].ID = 0
			product.Images[i].ProductID = product.ID
			product.Images[i].Position = i
		}
		for i := range product.Sizes {
			product.Sizes[i].ID = 0
			product.Sizes[i].ProductID = product.ID
			product.Sizes[i].Position = i
		}
		if len(product.Images) > 0 {
			if err := tx.Create(&product.Images).Error; err != nil {
				return err
			}
		}
		if len(product.Sizes) > 0 {
			if err := tx.Create(&product.Sizes).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// Delete removes a product and, via the cascade constraint, its children.
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	err := pkg.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&domain.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&domain.ProductSize{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Product{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// AdjustSizeQuantity applies an add/subtract/set operation to one size's
// stock inside a transaction. Subtracting below zero is a validation error;
// add and set create the size row if it does not exist yet, subtract does not.
func (r *productRepository) AdjustSizeQuantity(ctx context.Context, productID uint, size, quantity int, op string) (*domain.Product, error) {
	err := pkg.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var product domain.Product
		if err := tx.Preload("Sizes", orderByPosition).First(&product, productID).Error; err != nil {
			return err
		}

		var row *domain.ProductSize
		for i := range product.Sizes {
			if product.Sizes[i].Size == size {
				row = &product.Sizes[i]
				break
			}
		}

		if row == nil {
			if op == domain.InventoryOpSubtract {
				return domain.NewAppError(domain.CodeValidation,
					fmt.Sprintf("size %d not stocked", size), nil)
			}
			return tx.Create(&domain.ProductSize{
				ProductID: productID,
				Position:  len(product.Sizes),
				Size:      size,
				Quantity:  quantity,
			}).Error
		}

		next := row.Quantity
		switch op {
		case domain.InventoryOpAdd:
			next += quantity
		case domain.InventoryOpSubtract:
			next -= quantity
		case domain.InventoryOpSet:
			next = quantity
		}
		if next < 0 {
			return domain.NewAppError(domain.CodeValidation,
				fmt.Sprintf("stock for size %d cannot go below zero", size), nil)
		}

		return tx.Model(&domain.ProductSize{}).
			Where("id = ?", row.ID).
			Update("quantity", next).Error
	})
	if err != nil {
		return nil, pkg.MapDBError(err)
	}

	return r.GetByID(ctx, productID)
}

// Count returns the total number of products.
func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&total).Error; err != nil {
		return 0, pkg.MapDBError(err)
	}
	return total, nil
}

// orderByPosition keeps child rows in the order the operator arranged them.
func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}
