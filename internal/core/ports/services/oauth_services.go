package services

import (
	"context"

	"github.com/SscSPs/social_media_app/internal/core/domain"
)

// IdentityProvider exchanges an OAuth authorization code for a verified external identity.
type IdentityProvider interface {
	// LoginURL returns the provider consent page URL for the given state.
	LoginURL(state string) string

	// ExchangeCode trades an authorization code for provider tokens.
	ExchangeCode(ctx context.Context, code string) (*domain.OAuthTokens, error)

	// FetchIdentity resolves the identity behind the provider tokens.
	FetchIdentity(ctx context.Context, tokens *domain.OAuthTokens) (*domain.ExternalIdentity, error)
}
