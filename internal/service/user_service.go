package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/splitfool/splitfool/internal/models"
	"github.com/splitfool/splitfool/internal/storage"
)

var (
	// ErrEmptyUserName means a user name was blank.
	ErrEmptyUserName = errors.New("user name cannot be empty")

	// ErrUserNameTooLong means a user name exceeds the length limit.
	ErrUserNameTooLong = errors.New("user name too long")

	// ErrUserHasBalances means a user cannot be deleted while they appear
	// in any outstanding balance.
	ErrUserHasBalances = errors.New("user has outstanding balances")
)

// UserService handles participant management. Deletion is guarded by the
// balance service: a user with any outstanding debt or credit cannot be
// removed.
type UserService struct {
	store    storage.Store
	balances *BalanceService
}

// NewUserService creates a UserService with the given storage backend and
// balance service.
func NewUserService(store storage.Store, balances *BalanceService) *UserService {
	return &UserService{store: store, balances: balances}
}

func validateUserName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyUserName
	}
	if len(name) > models.MaxUserNameLen {
		return fmt.Errorf("%w: exceeds %d characters", ErrUserNameTooLong, models.MaxUserNameLen)
	}
	return nil
}

// Create adds a new participant. Names must be non-empty, within the length
// limit, and unique.
func (s *UserService) Create(ctx context.Context, name string) (*models.User, error) {
	if err := validateUserName(name); err != nil {
		return nil, err
	}
	user := &models.User{Name: name}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	slog.Info("User created", "user_id", user.ID, "name", user.Name)
	return user, nil
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

// List returns all users ordered by name.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.store.ListUsers(ctx)
}

// Rename changes a user's display name, subject to the same rules as
// creation.
func (s *UserService) Rename(ctx context.Context, id, name string) (*models.User, error) {
	if err := validateUserName(name); err != nil {
		return nil, err
	}
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	renamed := *user
	renamed.Name = name
	if err := s.store.UpdateUser(ctx, &renamed); err != nil {
		return nil, err
	}
	return &renamed, nil
}

// Delete removes a user, refusing while they have any outstanding balance.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.GetUser(ctx, id); err != nil {
		return err
	}

	hasBalances, err := s.balances.UserHasBalances(ctx, id)
	if err != nil {
		return err
	}
	if hasBalances {
		return fmt.Errorf("user %s: %w", id, ErrUserHasBalances)
	}

	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	slog.Info("User deleted", "user_id", id)
	return nil
}
