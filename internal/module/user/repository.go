package user

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/soletrade/admin/internal/domain"
	"github.com/soletrade/admin/internal/pkg"
)

// Allowed fields for sorting and searching in List queries.
var (
	allowedSortFields = []string{"id", "name", "email", "status", "created_at", "updated_at"}
	searchFields      = []string{"name", "email"}
)

// userRepository implements domain.UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository backed by the given GORM database.
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.Status == "" {
		user.Status = domain.UserStatusActive
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a user by its primary key.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email (case-insensitive).
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("lower(email) = ?", strings.ToLower(email)).
		First(&user).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &user, nil
}

// List returns one page of users matching the search term. The requested page
// is clamped against the matching total before the page query runs, so an
// out-of-range page is never fetched.
func (r *userRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.User], error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&domain.User{}).
		Scopes(pkg.Search(req, searchFields))

	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	page := pkg.ClampPage(req.Page, total, req.PageSize)

	var users []domain.User
	if err := base.Scopes(
		pkg.Paginate(page, req.PageSize),
		pkg.Sort(req, allowedSortFields),
	).Find(&users).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.PageOf(users, total, page, req.PageSize), nil
}

// UpdateStatus sets the user's status.
func (r *userRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a user by ID.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.User{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns the total number of users.
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return 0, pkg.MapDBError(err)
	}
	return total, nil
}
