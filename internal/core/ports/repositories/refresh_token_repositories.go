package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/social_media_app/internal/core/domain"
)

// RefreshTokenRepository stores issued refresh tokens. A refresh token is only
// usable while its record exists, so deleting a record revokes the token.
type RefreshTokenRepository interface {
	// InsertRefreshToken persists a newly issued refresh token.
	InsertRefreshToken(ctx context.Context, token domain.RefreshTokenRecord) error

	// FindRefreshToken looks up a record by the token string.
	// Returns apperrors.ErrNotFound when absent.
	FindRefreshToken(ctx context.Context, token string) (*domain.RefreshTokenRecord, error)

	// DeleteRefreshToken removes the record and reports whether one existed.
	DeleteRefreshToken(ctx context.Context, token string) (bool, error)

	// DeleteRefreshTokensByUserID removes every refresh token of a user.
	DeleteRefreshTokensByUserID(ctx context.Context, userID string) (int64, error)

	// DeleteExpiredRefreshTokens purges records that expired before the given time.
	DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) (int64, error)
}
