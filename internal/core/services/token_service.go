package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/social_media_app/internal/apperrors"
	"github.com/SscSPs/social_media_app/internal/core/domain"
	portssvc "github.com/SscSPs/social_media_app/internal/core/ports/services"
	"github.com/SscSPs/social_media_app/internal/platform/config"
	"github.com/SscSPs/social_media_app/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenCodec signs and verifies session tokens. It holds no mutable state.
type tokenCodec struct {
	keys   map[domain.TokenType]config.TokenConfig
	issuer string
	now    func() time.Time
}

// TokenCodecOption customizes a token codec.
type TokenCodecOption func(*tokenCodec)

// WithTokenClock replaces the wall clock used for iat, exp and expiry checks.
func WithTokenClock(now func() time.Time) TokenCodecOption {
	return func(c *tokenCodec) {
		c.now = now
	}
}

// NewTokenCodec creates a token codec using the per-kind secrets and lifetimes from cfg.
func NewTokenCodec(cfg *config.Config, opts ...TokenCodecOption) portssvc.TokenCodec {
	c := &tokenCodec{
		keys: map[domain.TokenType]config.TokenConfig{
			domain.AccessToken:         cfg.AccessToken,
			domain.RefreshToken:        cfg.RefreshToken,
			domain.EmailVerifyToken:    cfg.EmailVerifyToken,
			domain.ForgotPasswordToken: cfg.ForgotPasswordToken,
		},
		issuer: cfg.JWTIssuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ portssvc.TokenCodec = (*tokenCodec)(nil)

func (c *tokenCodec) Sign(kind domain.TokenType, userID string, verify domain.UserVerifyStatus, overrideExpiry *time.Time) (string, error) {
	key, ok := c.keys[kind]
	if !ok || key.Secret == "" {
		return "", fmt.Errorf("%w: no secret configured for %s", apperrors.ErrSigning, kind)
	}

	// JWT timestamps have second precision.
	now := c.now().Truncate(time.Second)
	exp := now.Add(key.ExpiresIn)
	if overrideExpiry != nil {
		exp = *overrideExpiry
	}

	claims := utils.SessionClaims{
		UserID:    userID,
		Verify:    int(verify),
		TokenType: int(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token, err := utils.GenerateJWT(claims, key.Secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrSigning, err)
	}
	return token, nil
}

func (c *tokenCodec) Verify(token string, kind domain.TokenType) (*domain.TokenPayload, error) {
	key, ok := c.keys[kind]
	if !ok || key.Secret == "" {
		return nil, fmt.Errorf("%w: unknown token kind %s", apperrors.ErrTokenInvalid, kind)
	}

	claims, err := utils.ParseAndValidateJWT(token, key.Secret, c.now)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}

	if domain.TokenType(claims.TokenType) != kind {
		return nil, fmt.Errorf("%w: expected %s, got %s", apperrors.ErrTokenInvalid, kind, domain.TokenType(claims.TokenType))
	}
	if claims.UserID == "" || claims.IssuedAt == nil {
		return nil, fmt.Errorf("%w: missing claims", apperrors.ErrTokenInvalid)
	}

	return &domain.TokenPayload{
		UserID:    claims.UserID,
		Verify:    domain.UserVerifyStatus(claims.Verify),
		TokenType: kind,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
