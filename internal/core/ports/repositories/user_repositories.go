package repositories

import (
	"context"

	"github.com/SscSPs/social_media_app/internal/core/domain"
)

// UserReader defines read operations for user data.
// Lookups that find nothing return apperrors.ErrUserNotFound.
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByEmailAndPassword retrieves a user matching both the email and
	// the stored password hash in a single lookup.
	FindUserByEmailAndPassword(ctx context.Context, email, passwordHash string) (*domain.User, error)

	// FindUserByUsername retrieves a user by username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// InsertUser persists a new user. Returns apperrors.ErrEmailAlreadyExists or
	// apperrors.ErrUsernameExists when a unique constraint is hit.
	InsertUser(ctx context.Context, user domain.User) error

	// UpdateUser applies a patch to the user with the given ID.
	UpdateUser(ctx context.Context, userID string, patch domain.UserPatch) error
}

// UserRepository combines all user-related repository interfaces
type UserRepository interface {
	UserReader
	UserWriter
}
