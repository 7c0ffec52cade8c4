package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/social_media_app/internal/apperrors"
	"github.com/SscSPs/social_media_app/internal/core/domain"
	portsrepo "github.com/SscSPs/social_media_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/social_media_app/internal/core/ports/services"
)

// Authenticator validates the credentials presented with a request. Every
// method returns the decoded payload instead of storing it on the request, so
// handlers pass the authenticated identity on explicitly.
type Authenticator struct {
	codec         portssvc.TokenCodec
	users         portsrepo.UserReader
	refreshTokens portsrepo.RefreshTokenRepository
}

// NewAuthenticator creates an Authenticator backed by the token codec and the credential store.
func NewAuthenticator(codec portssvc.TokenCodec, users portsrepo.UserReader, refreshTokens portsrepo.RefreshTokenRepository) *Authenticator {
	return &Authenticator{
		codec:         codec,
		users:         users,
		refreshTokens: refreshTokens,
	}
}

// Access validates a "Bearer <token>" Authorization header carrying an access token.
func (a *Authenticator) Access(ctx context.Context, authorizationHeader string) (*domain.TokenPayload, error) {
	logger := GetLoggerFromCtx(ctx)
	if authorizationHeader == "" {
		logger.Warn("Authorization header missing")
		return nil, fmt.Errorf("%w: authorization header required", apperrors.ErrUnauthorized)
	}

	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		logger.Warn("Authorization header format invalid")
		return nil, fmt.Errorf("%w: authorization header format must be Bearer {token}", apperrors.ErrUnauthorized)
	}

	payload, err := a.codec.Verify(parts[1], domain.AccessToken)
	if err != nil {
		logger.Warn("Invalid access token", slog.String("error", err.Error()))
		return nil, err
	}
	return payload, nil
}

// Refresh validates a refresh token and requires its record to still be in the store.
func (a *Authenticator) Refresh(ctx context.Context, token string) (*domain.TokenPayload, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: refresh token is required", apperrors.ErrUnauthorized)
	}
	payload, err := a.codec.Verify(token, domain.RefreshToken)
	if err != nil {
		return nil, err
	}
	if _, err := a.refreshTokens.FindRefreshToken(ctx, token); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			GetLoggerFromCtx(ctx).Warn("Refresh token not found in store", slog.String("user_id", payload.UserID))
			return nil, apperrors.ErrRefreshTokenReused
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	return payload, nil
}

// EmailVerify validates an email verification token against the one stored on the user.
func (a *Authenticator) EmailVerify(ctx context.Context, token string) (*domain.TokenPayload, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: email verify token is required", apperrors.ErrUnauthorized)
	}
	payload, err := a.codec.Verify(token, domain.EmailVerifyToken)
	if err != nil {
		return nil, err
	}
	user, err := a.users.FindUserByID(ctx, payload.UserID)
	if err != nil {
		return nil, err
	}
	if user.Verify == domain.UserBanned {
		return nil, apperrors.ErrUserBanned
	}
	if user.EmailVerifyToken == "" {
		return nil, apperrors.ErrEmailAlreadyVerified
	}
	if user.EmailVerifyToken != token {
		return nil, apperrors.ErrTokenInvalid
	}
	return payload, nil
}

// ForgotPassword validates a password reset token against the one stored on the user.
func (a *Authenticator) ForgotPassword(ctx context.Context, token string) (*domain.TokenPayload, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: forgot password token is required", apperrors.ErrUnauthorized)
	}
	payload, err := a.codec.Verify(token, domain.ForgotPasswordToken)
	if err != nil {
		return nil, err
	}
	user, err := a.users.FindUserByID(ctx, payload.UserID)
	if err != nil {
		return nil, err
	}
	if user.ForgotPasswordToken == "" || user.ForgotPasswordToken != token {
		return nil, apperrors.ErrTokenInvalid
	}
	return payload, nil
}

// RequireVerified rejects payloads of users who have not verified their email.
func (a *Authenticator) RequireVerified(payload *domain.TokenPayload) error {
	if payload == nil || payload.Verify != domain.UserVerified {
		return apperrors.ErrUserNotVerified
	}
	return nil
}
