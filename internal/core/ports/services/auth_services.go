package services

import (
	"context"
	"time"

	"github.com/SscSPs/social_media_app/internal/core/domain"
)

// RegisterInput is the already-validated data needed to create an account.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	DateOfBirth time.Time
}

// SessionSvcFacade defines the authentication and session lifecycle operations.
type SessionSvcFacade interface {
	// Register creates an unverified account, dispatches the verification email
	// and issues the first token pair.
	Register(ctx context.Context, in RegisterInput) (*domain.TokenPair, error)

	// Login issues a token pair for matching credentials.
	Login(ctx context.Context, email, password string) (*domain.TokenPair, error)

	// OAuth logs in, or registers, the owner of an externally asserted identity.
	OAuth(ctx context.Context, code string) (*domain.OAuthResult, error)

	// Logout revokes a refresh token. Revoking an unknown token is not an error.
	Logout(ctx context.Context, refreshToken string) error

	// RefreshToken rotates a refresh token that the caller already verified.
	// The new refresh token keeps the absolute expiry oldExp.
	RefreshToken(ctx context.Context, userID string, verify domain.UserVerifyStatus, oldRefreshToken string, oldExp time.Time) (*domain.TokenPair, error)

	// VerifyEmail marks the user verified and issues a token pair carrying the new status.
	VerifyEmail(ctx context.Context, userID string) (*domain.TokenPair, error)

	// ResendVerifyEmail issues and dispatches a new email verification token.
	ResendVerifyEmail(ctx context.Context, userID string) error

	// ForgotPassword issues and dispatches a password reset token.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword sets a new password after a verified reset token.
	ResetPassword(ctx context.Context, userID, newPassword string) error

	// ChangePassword sets a new password after checking the current one.
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

// TokenCodec signs and verifies session tokens. Every token kind has its own
// signing secret and default lifetime.
type TokenCodec interface {
	// Sign creates a token of the given kind. When overrideExpiry is non-nil the
	// token expires at that instant instead of now plus the default lifetime.
	Sign(kind domain.TokenType, userID string, verify domain.UserVerifyStatus, overrideExpiry *time.Time) (string, error)

	// Verify checks signature, kind and expiry and returns the decoded payload.
	// Errors match apperrors.ErrTokenInvalid or apperrors.ErrTokenExpired.
	Verify(token string, kind domain.TokenType) (*domain.TokenPayload, error)
}
