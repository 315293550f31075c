package pkg

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/soletrade/admin/internal/domain"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
	defaultSort     = "id:desc"
)

// validFieldName matches only alphanumeric characters and underscores.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ParsePageRequest extracts pagination, sorting, and search parameters from
// query params. Every list endpoint shares this contract:
// ?page&page_size&sort&search.
func ParsePageRequest(c *gin.Context) domain.PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if page < 1 {
		page = defaultPage
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return domain.PageRequest{
		Page:     page,
		PageSize: pageSize,
		Sort:     c.DefaultQuery("sort", defaultSort),
		Search:   strings.TrimSpace(c.Query("search")),
	}
}

// TotalPages derives the page count from a total, flooring at 1 so that an
// empty result still has a valid last page for pagination controls.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := int(math.Ceil(float64(total) / float64(pageSize)))
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage confines page to [1, TotalPages(total, pageSize)]. Repositories
// clamp before querying so an out-of-range page is never fetched.
func ClampPage(page int, total int64, pageSize int) int {
	if page < 1 {
		return 1
	}
	if max := TotalPages(total, pageSize); page > max {
		return max
	}
	return page
}

// Paginate returns a GORM scope that applies LIMIT and OFFSET for the given
// (already clamped) page.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}
}

// Sort returns a GORM scope that applies ORDER BY based on the page request.
// Only field names present in the allowed list are accepted; others are silently ignored.
// Field names are validated against a strict pattern to prevent SQL injection.
func Sort(req domain.PageRequest, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		parts := strings.SplitN(req.Sort, ":", 2)
		if len(parts) != 2 {
			return db
		}

		field := strings.TrimSpace(parts[0])
		direction := strings.TrimSpace(strings.ToLower(parts[1]))

		if direction != "asc" && direction != "desc" {
			return db
		}

		if !validFieldName.MatchString(field) {
			return db
		}

		if !isAllowed(field, allowed) {
			return db
		}

		return db.Order(field + " " + direction)
	}
}

// Search returns a GORM scope that applies a case-insensitive substring match
// of the request's search term across the given fields (ORed together).
// Fields failing the strict name pattern are skipped. An empty term is a no-op.
func Search(req domain.PageRequest, fields []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term := strings.TrimSpace(req.Search)
		if term == "" || len(fields) == 0 {
			return db
		}

		var conds []string
		var args []any
		pattern := "%" + strings.ToLower(term) + "%"
		for _, f := range fields {
			if !validFieldName.MatchString(f) {
				continue
			}
			conds = append(conds, "lower("+f+") LIKE ?")
			args = append(args, pattern)
		}
		if len(conds) == 0 {
			return db
		}
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

// PageOf assembles a PageResult for an already clamped page.
func PageOf[T any](items []T, total int64, page, pageSize int) *domain.PageResult[T] {
	if items == nil {
		items = []T{}
	}
	return &domain.PageResult[T]{
		Items:        items,
		TotalItems:   total,
		CurrentPage:  page,
		ItemsPerPage: pageSize,
		TotalPages:   TotalPages(total, pageSize),
	}
}

// isAllowed checks if a field name is in the allowed list.
func isAllowed(field string, allowed []string) bool {
	for _, a := range allowed {
		if a == field {
			return true
		}
	}
	return false
}
