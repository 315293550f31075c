package product

// SizeRequest is one size/quantity row of a product payload.
type SizeRequest struct {
	Size     int `json:"size" form:"size" binding:"required,min=1"`
	Quantity int `json:"quantity" form:"quantity" binding:"min=0"`
}

// CreateProductRequest represents the input for creating a product.
type CreateProductRequest struct {
	Name        string        `json:"name" binding:"required,min=2,max=200"`
	Description string        `json:"description" binding:"max=2000"`
	Price       float64       `json:"price" binding:"required,gt=0"`
	FakePrice   *float64      `json:"fake_price" binding:"omitempty,gt=0"`
	Category    string        `json:"category" binding:"required,oneof=shoes slippers sandals other"`
	IsAvailable *bool         `json:"is_available"`
	Images      []string      `json:"images" binding:"omitempty,dive,required,max=500"`
	Sizes       []SizeRequest `json:"sizes" binding:"omitempty,dive"`
}

// UpdateProductRequest represents a partial product update. Absent fields are
// left unchanged; Images and Sizes, when present, replace the existing sets
// wholesale in the order given.
type UpdateProductRequest struct {
	Name        *string        `json:"name" binding:"omitempty,min=2,max=200"`
	Description *string        `json:"description" binding:"omitempty,max=2000"`
	Price       *float64       `json:"price" binding:"omitempty,gt=0"`
	FakePrice   *float64       `json:"fake_price" binding:"omitempty,gt=0"`
	Category    *string        `json:"category" binding:"omitempty,oneof=shoes slippers sandals other"`
	IsAvailable *bool          `json:"is_available"`
	Images      *[]string      `json:"images" binding:"omitempty,dive,required,max=500"`
	Sizes       *[]SizeRequest `json:"sizes" binding:"omitempty,dive"`
}

// InventoryRequest represents a per-size stock adjustment.
type InventoryRequest struct {
	Size      int    `json:"size" form:"size" binding:"required,min=1"`
	Quantity  int    `json:"quantity" form:"quantity" binding:"min=0"`
	Operation string `json:"operation" form:"operation" binding:"required,oneof=add subtract set"`
}
