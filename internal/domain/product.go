package domain

import (
	"context"
	"slices"
)

// Product categories.
const (
	CategoryShoes    = "shoes"
	CategorySlippers = "slippers"
	CategorySandals  = "sandals"
	CategoryOther    = "other"
)

// ProductCategories lists every valid product category.
var ProductCategories = []string{
	CategoryShoes,
	CategorySlippers,
	CategorySandals,
	CategoryOther,
}

// ValidCategory reports whether s is a known product category.
func ValidCategory(s string) bool {
	return slices.Contains(ProductCategories, s)
}

// Inventory adjustment operations.
const (
	InventoryOpAdd      = "add"
	InventoryOpSubtract = "subtract"
	InventoryOpSet      = "set"
)

// ValidInventoryOp reports whether s is a known inventory operation.
func ValidInventoryOp(s string) bool {
	return s == InventoryOpAdd || s == InventoryOpSubtract || s == InventoryOpSet
}

// Product represents a catalog item. Sizes and images are owned children;
// their Position column preserves the insertion order the operator chose in
// the form.
type Product struct {
	BaseModel
	Name        string         `gorm:"size:200;not null" json:"name"`
	Description string         `gorm:"size:2000" json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	FakePrice   *float64       `json:"fake_price,omitempty"`
	Category    string         `gorm:"size:20;not null" json:"category"`
	IsAvailable bool           `gorm:"not null;default:true" json:"is_available"`
	Images      []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	Sizes       []ProductSize  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"sizes"`
}

// TotalStock returns the quantity summed across all sizes.
func (p *Product) TotalStock() int {
	total := 0
	for _, s := range p.Sizes {
		total += s.Quantity
	}
	return total
}

// ProductImage is one image URL of a product.
type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	ProductID uint   `gorm:"index;not null" json:"-"`
	Position  int    `gorm:"not null" json:"-"`
	URL       string `gorm:"size:500;not null" json:"url"`
}

// ProductSize holds the stock quantity for one shoe size.
type ProductSize struct {
	ID        uint `gorm:"primaryKey" json:"-"`
	ProductID uint `gorm:"index;not null" json:"-"`
	Position  int  `gorm:"not null" json:"-"`
	Size      int  `gorm:"not null" json:"size"`
	Quantity  int  `gorm:"not null" json:"quantity"`
}

// ProductRepository defines the data access interface for products.
// Update replaces the product's scalar fields and, when replaceChildren is
// set, its sizes and images wholesale within one transaction.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Product], error)
	Update(ctx context.Context, product *Product, replaceChildren bool) error
	Delete(ctx context.Context, id uint) error
	AdjustSizeQuantity(ctx context.Context, productID uint, size, quantity int, op string) (*Product, error)
	Count(ctx context.Context) (int64, error)
}

// ProductService defines the console operations for the inventory screen.
type ProductService interface {
	GetProduct(ctx context.Context, id uint) (*Product, error)
	ListProducts(ctx context.Context, req PageRequest) (*PageResult[Product], error)
	CreateProduct(ctx context.Context, draft ProductDraft) (*Product, error)
	UpdateProduct(ctx context.Context, id uint, draft ProductDraft) (*Product, error)
	DeleteProduct(ctx context.Context, id uint) error
	AdjustInventory(ctx context.Context, id uint, size, quantity int, op string) (*Product, error)
}

// ProductDraft is the form's working copy of a product. Slices keep the
// order the operator arranged them in.
type ProductDraft struct {
	Name        string
	Description string
	Price       float64
	FakePrice   *float64
	Category    string
	IsAvailable bool
	Images      []string
	Sizes       []SizeDraft
}

// SizeDraft is one size row of a product draft.
type SizeDraft struct {
	Size     int
	Quantity int
}
