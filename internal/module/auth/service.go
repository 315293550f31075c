package auth

import (
	"context"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/simp-lee/jwt"

	"github.com/soletrade/admin/internal/domain"
)

const (
	maxNameRunes   = 100
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt truncates beyond 72 bytes
)

// Service signs operators in and creates their accounts.
type Service interface {
	Login(ctx context.Context, email, password string) (*TokenResponse, error)
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
}

type authService struct {
	jwtSvc      jwt.Service
	userRepo    domain.UserRepository
	tokenExpiry time.Duration
}

func NewService(jwtSvc jwt.Service, userRepo domain.UserRepository, tokenExpiry time.Duration) Service {
	return &authService{
		jwtSvc:      jwtSvc,
		userRepo:    userRepo,
		tokenExpiry: tokenExpiry,
	}
}

// Login checks the password against the stored hash and issues a signed
// session token. Unknown email, wrong password, and blocked account all
// come back as the same unauthorized error so the response never tells
// an attacker which one it was.
func (s *authService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if user.Blocked() {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrUnauthorized
	}

	subject := strconv.FormatUint(uint64(user.ID), 10)
	token, err := s.jwtSvc.GenerateToken(subject, nil, s.tokenExpiry)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "issue session token", err)
	}

	// Parse the freshly issued token back so the response carries the
	// exact expiry it was signed with.
	parsed, err := s.jwtSvc.ParseToken(token)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "read issued token", err)
	}

	return &TokenResponse{Token: token, ExpiresAt: parsed.ExpiresAt.Unix()}, nil
}

// Register creates an active operator account after validating the
// credentials and hashing the password.
func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if err := validateRegisterInput(name, email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "hash password", err)
	}

	user := domain.User{
		Name:         name,
		Email:        email,
		Status:       domain.UserStatusActive,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// validateRegisterInput trims its own inputs so it stands alone even
// though Register already trims. Passwords are measured in bytes like
// bcrypt does; names in runes.
func validateRegisterInput(name, email, password string) error {
	switch n := utf8.RuneCountInString(strings.TrimSpace(name)); {
	case n == 0:
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	case n > maxNameRunes:
		return domain.NewAppError(domain.CodeValidation,
			"name must not exceed "+strconv.Itoa(maxNameRunes)+" characters", nil)
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return domain.NewAppError(domain.CodeValidation, "email is required", nil)
	}
	// mail.ParseAddress accepts display-name and angle-bracket forms;
	// only a bare address is allowed here.
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return domain.NewAppError(domain.CodeValidation, "email must be a valid email address", nil)
	}

	switch {
	case len(password) < minPasswordLen:
		return domain.NewAppError(domain.CodeValidation,
			"password must be at least "+strconv.Itoa(minPasswordLen)+" characters", nil)
	case len(password) > maxPasswordLen:
		return domain.NewAppError(domain.CodeValidation,
			"password must not exceed "+strconv.Itoa(maxPasswordLen)+" characters", nil)
	}
	return nil
}
