package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/social_media_app/internal/apperrors"
	"github.com/SscSPs/social_media_app/internal/core/domain"
	portssvc "github.com/SscSPs/social_media_app/internal/core/ports/services"
	"github.com/SscSPs/social_media_app/internal/platform/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// googleUserInfo is the body of the Google userinfo v2 endpoint.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// googleIdentityProvider implements the IdentityProvider port for Google accounts.
type googleIdentityProvider struct {
	clientID     string
	oauth2Config *oauth2.Config
	userInfoURL  string
	timeout      time.Duration
	// validateIDToken is nil when id tokens are not cross-checked.
	validateIDToken func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

// NewGoogleIdentityProvider creates a Google identity provider from the OAuth settings in cfg.
func NewGoogleIdentityProvider(cfg *config.Config) portssvc.IdentityProvider {
	return &googleIdentityProvider{
		clientID: cfg.GoogleClientID,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL:     googleUserInfoURL,
		timeout:         cfg.OAuthTimeout,
		validateIDToken: idtoken.Validate,
	}
}

// LoginURL returns the URL to redirect the user to for Google login.
func (p *googleIdentityProvider) LoginURL(state string) string {
	return p.oauth2Config.AuthCodeURL(state)
}

// ExchangeCode exchanges an OAuth authorization code for Google tokens.
func (p *googleIdentityProvider) ExchangeCode(ctx context.Context, code string) (*domain.OAuthTokens, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: authorization code is required", apperrors.ErrUnauthorized)
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	token, err := p.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to exchange oauth code for token: %v", apperrors.ErrUnauthorized, err)
	}

	idToken, _ := token.Extra("id_token").(string)
	return &domain.OAuthTokens{AccessToken: token.AccessToken, IDToken: idToken}, nil
}

// FetchIdentity uses the access token to get the user's identity from Google.
// When an id token is present its subject must match the userinfo subject.
func (p *googleIdentityProvider) FetchIdentity(ctx context.Context, tokens *domain.OAuthTokens) (*domain.ExternalIdentity, error) {
	if tokens == nil || tokens.AccessToken == "" {
		return nil, fmt.Errorf("%w: missing oauth access token", apperrors.ErrUnauthorized)
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	client := p.oauth2Config.Client(ctx, &oauth2.Token{AccessToken: tokens.AccessToken, TokenType: "Bearer"})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info from google: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: google api returned non-200 status for userinfo: %s", apperrors.ErrUnauthorized, resp.Status)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info from google: %w", err)
	}

	if tokens.IDToken != "" && p.validateIDToken != nil && p.clientID != "" {
		payload, err := p.validateIDToken(ctx, tokens.IDToken, p.clientID)
		if err != nil {
			return nil, fmt.Errorf("%w: google ID token validation failed: %v", apperrors.ErrUnauthorized, err)
		}
		if payload.Subject != info.ID {
			return nil, fmt.Errorf("%w: google ID token subject does not match userinfo", apperrors.ErrUnauthorized)
		}
	}

	return &domain.ExternalIdentity{
		Subject:       info.ID,
		Email:         info.Email,
		EmailVerified: info.VerifiedEmail,
		Name:          info.Name,
		Picture:       info.Picture,
	}, nil
}

func (p *googleIdentityProvider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}
