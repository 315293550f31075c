package user

import (
	"context"

	"github.com/soletrade/admin/internal/domain"
)

// userService implements domain.UserService.
type userService struct {
	repo domain.UserRepository
}

// NewUserService creates a new UserService with the given repository.
func NewUserService(repo domain.UserRepository) domain.UserService {
	return &userService{repo: repo}
}

// GetUser retrieves a user by ID.
func (s *userService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// ListUsers returns a paginated list of users.
func (s *userService) ListUsers(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.User], error) {
	return s.repo.List(ctx, req)
}

// BlockUser moves the user to the blocked status. Blocking an already
// blocked user is a no-op, so repeated toggle submissions settle on the
// same state instead of flipping it back.
func (s *userService) BlockUser(ctx context.Context, id uint) (*domain.User, error) {
	return s.setStatus(ctx, id, domain.UserStatusBlocked)
}

// UnblockUser moves the user back to the active status. Idempotent like BlockUser.
func (s *userService) UnblockUser(ctx context.Context, id uint) (*domain.User, error) {
	return s.setStatus(ctx, id, domain.UserStatusActive)
}

func (s *userService) setStatus(ctx context.Context, id uint, status string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Status == status {
		return user, nil
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	user.Status = status
	return user, nil
}

// DeleteUser removes a user by ID.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
