package domain

import (
	"time"

	"github.com/simp-lee/pagination"
)

// BaseModel is the common base struct for all domain models.
// It replaces gorm.Model to avoid the implicit soft delete behavior of DeletedAt.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageRequest holds pagination, sorting, and search parameters for list queries.
// Search is a free-text term matched case-insensitively against
// resource-specific fields; which fields participate is up to each repository.
type PageRequest struct {
	Page     int
	PageSize int
	Sort     string
	Search   string
}

// PageResult is the envelope returned by every list operation. TotalPages is
// always at least 1, even for an empty result, so pagination controls have a
// well-defined upper bound.
type PageResult[T any] = pagination.Pagination[T]
