package domain

import "context"

// User account statuses.
const (
	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
)

// User represents a store customer account. Console operators are regular
// users that carry a password hash.
type User struct {
	BaseModel
	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Status       string `gorm:"size:20;not null;default:active" json:"status"`
	PasswordHash string `gorm:"size:255" json:"-"`
}

// Blocked reports whether the account is blocked.
func (u *User) Blocked() bool {
	return u.Status == UserStatusBlocked
}

// UserRepository defines the data access interface for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, req PageRequest) (*PageResult[User], error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// UserService defines the console operations for the user screen.
// Block and Unblock are explicit target-state operations: repeating one is a
// no-op rather than an error, so a double-submitted toggle cannot flip the
// account twice.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*User, error)
	ListUsers(ctx context.Context, req PageRequest) (*PageResult[User], error)
	BlockUser(ctx context.Context, id uint) (*User, error)
	UnblockUser(ctx context.Context, id uint) (*User, error)
	DeleteUser(ctx context.Context, id uint) error
}
