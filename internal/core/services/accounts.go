package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"
	"github.com/ninja-hatori-dev/mood-harmony/internal/core/domain"
	"github.com/ninja-hatori-dev/mood-harmony/internal/core/ports"
)

// ErrInvalidCredentials is returned on login with an unknown email or a
// wrong password; the two cases are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("service: invalid credentials")

// Accounts handles registration and login against the repository.
type Accounts struct {
	repo ports.Repository
}

// NewAccounts constructs an Accounts service.
func NewAccounts(repo ports.Repository) *Accounts {
	return &Accounts{repo: repo}
}

// Register hashes the password and stores a new user. A duplicate email
// surfaces as domain.ErrDuplicateEmail from the repository.
func (a *Accounts) Register(ctx context.Context, email, password string) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service: hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := a.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return domain.User{}, domain.ErrDuplicateEmail
		}
		return domain.User{}, fmt.Errorf("service: create user: %w", err)
	}
	return user, nil
}

// Login verifies the password against the stored bcrypt hash.
func (a *Accounts) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := a.repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("service: load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}
