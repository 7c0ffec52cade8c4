package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/social_media_app/internal/apperrors"
	"github.com/SscSPs/social_media_app/internal/core/domain"
	portsrepo "github.com/SscSPs/social_media_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/social_media_app/internal/core/ports/services"
	"github.com/SscSPs/social_media_app/internal/utils"
	"github.com/google/uuid"
)

// Auth events reported to the EventTracker.
const (
	EventUserRegistered          = "user_registered"
	EventUserLoggedIn            = "user_logged_in"
	EventUserOAuthLoggedIn       = "user_oauth_logged_in"
	EventUserLoggedOut           = "user_logged_out"
	EventTokenRefreshed          = "token_refreshed"
	EventRefreshTokenReused      = "refresh_token_reused"
	EventEmailVerified           = "email_verified"
	EventVerifyEmailResent       = "verify_email_resent"
	EventForgotPasswordRequested = "forgot_password_requested"
	EventPasswordReset           = "password_reset"
	EventPasswordChanged         = "password_changed"
)

// oauthPasswordBytes is the entropy of the password given to accounts created through OAuth.
const oauthPasswordBytes = 32

// sessionService implements the SessionSvcFacade: registration, login and the
// lifecycle of access and refresh tokens.
type sessionService struct {
	BaseService
	users                  portsrepo.UserRepository
	refreshTokens          portsrepo.RefreshTokenRepository
	codec                  portssvc.TokenCodec
	notifier               portssvc.NotificationSink
	identity               portssvc.IdentityProvider
	hasher                 *utils.PasswordHasher
	revokeOnPasswordChange bool
	now                    func() time.Time
}

// SessionOption is a functional option for configuring the session service
type SessionOption func(*sessionService)

// WithPasswordHasher sets the keyed password hasher.
func WithPasswordHasher(h *utils.PasswordHasher) SessionOption {
	return func(s *sessionService) {
		s.hasher = h
	}
}

// WithIdentityProvider enables OAuth logins through the given provider.
func WithIdentityProvider(p portssvc.IdentityProvider) SessionOption {
	return func(s *sessionService) {
		s.identity = p
	}
}

// WithEventTracker adds an auth event tracker.
func WithEventTracker(t portssvc.EventTracker) SessionOption {
	return func(s *sessionService) {
		s.Tracker = t
	}
}

// WithSessionRevocationOnPasswordChange makes password reset and change
// delete every refresh token of the user.
func WithSessionRevocationOnPasswordChange(enabled bool) SessionOption {
	return func(s *sessionService) {
		s.revokeOnPasswordChange = enabled
	}
}

// WithClock replaces the wall clock used for record timestamps.
func WithClock(now func() time.Time) SessionOption {
	return func(s *sessionService) {
		s.now = now
	}
}

// NewSessionService creates a new session service with the provided options
func NewSessionService(
	users portsrepo.UserRepository,
	refreshTokens portsrepo.RefreshTokenRepository,
	codec portssvc.TokenCodec,
	notifier portssvc.NotificationSink,
	options ...SessionOption,
) portssvc.SessionSvcFacade {
	svc := &sessionService{
		users:         users,
		refreshTokens: refreshTokens,
		codec:         codec,
		notifier:      notifier,
		hasher:        utils.NewPasswordHasher(""),
		now:           time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

func (s *sessionService) Register(ctx context.Context, in portssvc.RegisterInput) (*domain.TokenPair, error) {
	if _, err := s.users.FindUserByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check email availability")
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}

	userID := uuid.NewString()
	verifyToken, err := s.codec.Sign(domain.EmailVerifyToken, userID, domain.UserUnverified, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign email verify token", slog.String("user_id", userID))
		return nil, err
	}

	// Nothing is persisted until the verification link has been handed off.
	if err := s.notifier.Send(ctx, in.Email, verifyToken, false); err != nil {
		s.LogError(ctx, err, "Failed to send verification email", slog.String("user_id", userID))
		return nil, err
	}

	now := s.now()
	user := domain.User{
		UserID:           userID,
		Name:             in.Name,
		Email:            in.Email,
		DateOfBirth:      in.DateOfBirth,
		PasswordHash:     s.hasher.HashPassword(in.Password),
		EmailVerifyToken: verifyToken,
		Verify:           domain.UserUnverified,
		Username:         utils.DefaultUsername(userID),
		Timestamps:       domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.users.InsertUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to insert user", slog.String("user_id", userID))
		return nil, err
	}

	pair, err := s.issueTokenPair(ctx, userID, domain.UserUnverified)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", userID))
	s.Track(ctx, userID, EventUserRegistered, nil)
	return pair, nil
}

func (s *sessionService) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	user, err := s.users.FindUserByEmailAndPassword(ctx, email, s.hasher.HashPassword(password))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Login rejected")
			return nil, apperrors.ErrInvalidCredentials
		}
		s.LogError(ctx, err, "Failed to look up credentials")
		return nil, fmt.Errorf("failed to look up credentials: %w", err)
	}

	pair, err := s.issueTokenPair(ctx, user.UserID, user.Verify)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	s.Track(ctx, user.UserID, EventUserLoggedIn, nil)
	return pair, nil
}

func (s *sessionService) OAuth(ctx context.Context, code string) (*domain.OAuthResult, error) {
	if s.identity == nil {
		return nil, apperrors.ErrIdentityProviderDisabled
	}

	tokens, err := s.identity.ExchangeCode(ctx, code)
	if err != nil {
		s.LogError(ctx, err, "Failed to exchange oauth code")
		return nil, err
	}
	identity, err := s.identity.FetchIdentity(ctx, tokens)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch external identity")
		return nil, err
	}
	if !identity.EmailVerified {
		return nil, apperrors.ErrExternalIdentityUnverified
	}

	// Accounts are linked by email equality with the provider assertion.
	user, err := s.users.FindUserByEmail(ctx, identity.Email)
	if err == nil {
		pair, err := s.issueTokenPair(ctx, user.UserID, user.Verify)
		if err != nil {
			return nil, err
		}
		s.Track(ctx, user.UserID, EventUserOAuthLoggedIn, map[string]any{"new_user": false})
		return &domain.OAuthResult{TokenPair: *pair, NewUser: false, Verify: user.Verify}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up oauth user")
		return nil, fmt.Errorf("failed to look up oauth user: %w", err)
	}

	password, err := utils.RandomToken(oauthPasswordBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password for oauth user: %w", err)
	}

	now := s.now()
	userID := uuid.NewString()
	newUser := domain.User{
		UserID:       userID,
		Name:         identity.Name,
		Email:        identity.Email,
		PasswordHash: s.hasher.HashPassword(password),
		Verify:       domain.UserVerified,
		Username:     utils.DefaultUsername(userID),
		Avatar:       identity.Picture,
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.users.InsertUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "Failed to insert oauth user", slog.String("user_id", userID))
		return nil, err
	}

	pair, err := s.issueTokenPair(ctx, userID, domain.UserVerified)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "User registered through oauth", slog.String("user_id", userID))
	s.Track(ctx, userID, EventUserOAuthLoggedIn, map[string]any{"new_user": true})
	return &domain.OAuthResult{TokenPair: *pair, NewUser: true, Verify: domain.UserVerified}, nil
}

func (s *sessionService) Logout(ctx context.Context, refreshToken string) error {
	deleted, err := s.refreshTokens.DeleteRefreshToken(ctx, refreshToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete refresh token")
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	if !deleted {
		s.LogDebug(ctx, "Logout with unknown refresh token")
	}
	s.Track(ctx, "", EventUserLoggedOut, nil)
	return nil
}

func (s *sessionService) RefreshToken(ctx context.Context, userID string, verify domain.UserVerifyStatus, oldRefreshToken string, oldExp time.Time) (*domain.TokenPair, error) {
	accessToken, err := s.codec.Sign(domain.AccessToken, userID, verify, nil)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.codec.Sign(domain.RefreshToken, userID, verify, &oldExp)
	if err != nil {
		return nil, err
	}

	deleted, err := s.refreshTokens.DeleteRefreshToken(ctx, oldRefreshToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete rotated refresh token", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to delete refresh token: %w", err)
	}
	if !deleted {
		// A concurrent rotation or a replay already consumed this token.
		s.GetLogger(ctx).Warn("Refresh token reuse detected", slog.String("user_id", userID))
		s.Track(ctx, userID, EventRefreshTokenReused, nil)
		return nil, apperrors.ErrRefreshTokenReused
	}

	if err := s.persistRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	s.Track(ctx, userID, EventTokenRefreshed, nil)
	return &domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *sessionService) VerifyEmail(ctx context.Context, userID string) (*domain.TokenPair, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := requireUnverified(user); err != nil {
		return nil, err
	}
	if user.EmailVerifyToken == "" {
		return nil, apperrors.ErrEmailAlreadyVerified
	}

	empty := ""
	verified := domain.UserVerified
	patch := domain.UserPatch{
		EmailVerifyToken: &empty,
		Verify:           &verified,
		UpdatedAt:        s.now(),
	}
	if err := s.users.UpdateUser(ctx, userID, patch); err != nil {
		s.LogError(ctx, err, "Failed to mark user verified", slog.String("user_id", userID))
		return nil, err
	}

	pair, err := s.issueTokenPair(ctx, userID, domain.UserVerified)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Email verified", slog.String("user_id", userID))
	s.Track(ctx, userID, EventEmailVerified, nil)
	return pair, nil
}

func (s *sessionService) ResendVerifyEmail(ctx context.Context, userID string) error {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := requireUnverified(user); err != nil {
		return err
	}

	token, err := s.codec.Sign(domain.EmailVerifyToken, userID, user.Verify, nil)
	if err != nil {
		return err
	}
	if err := s.notifier.Send(ctx, user.Email, token, false); err != nil {
		s.LogError(ctx, err, "Failed to resend verification email", slog.String("user_id", userID))
		return err
	}

	patch := domain.UserPatch{EmailVerifyToken: &token, UpdatedAt: s.now()}
	if err := s.users.UpdateUser(ctx, userID, patch); err != nil {
		s.LogError(ctx, err, "Failed to store email verify token", slog.String("user_id", userID))
		return err
	}

	s.Track(ctx, userID, EventVerifyEmailResent, nil)
	return nil
}

func (s *sessionService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := s.codec.Sign(domain.ForgotPasswordToken, user.UserID, user.Verify, nil)
	if err != nil {
		return err
	}
	if err := s.notifier.Send(ctx, user.Email, token, true); err != nil {
		s.LogError(ctx, err, "Failed to send password reset email", slog.String("user_id", user.UserID))
		return err
	}

	patch := domain.UserPatch{ForgotPasswordToken: &token, UpdatedAt: s.now()}
	if err := s.users.UpdateUser(ctx, user.UserID, patch); err != nil {
		s.LogError(ctx, err, "Failed to store forgot password token", slog.String("user_id", user.UserID))
		return err
	}

	s.Track(ctx, user.UserID, EventForgotPasswordRequested, nil)
	return nil
}

func (s *sessionService) ResetPassword(ctx context.Context, userID, newPassword string) error {
	hash := s.hasher.HashPassword(newPassword)
	empty := ""
	patch := domain.UserPatch{
		PasswordHash:        &hash,
		ForgotPasswordToken: &empty,
		UpdatedAt:           s.now(),
	}
	if err := s.users.UpdateUser(ctx, userID, patch); err != nil {
		s.LogError(ctx, err, "Failed to reset password", slog.String("user_id", userID))
		return err
	}
	if err := s.revokeSessions(ctx, userID); err != nil {
		return err
	}

	s.LogInfo(ctx, "Password reset", slog.String("user_id", userID))
	s.Track(ctx, userID, EventPasswordReset, nil)
	return nil
}

func (s *sessionService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return apperrors.ErrIncorrectOldPassword
	}

	hash := s.hasher.HashPassword(newPassword)
	patch := domain.UserPatch{PasswordHash: &hash, UpdatedAt: s.now()}
	if err := s.users.UpdateUser(ctx, userID, patch); err != nil {
		s.LogError(ctx, err, "Failed to change password", slog.String("user_id", userID))
		return err
	}
	if err := s.revokeSessions(ctx, userID); err != nil {
		return err
	}

	s.LogInfo(ctx, "Password changed", slog.String("user_id", userID))
	s.Track(ctx, userID, EventPasswordChanged, nil)
	return nil
}

// issueTokenPair signs a fresh access/refresh pair and stores the refresh token.
func (s *sessionService) issueTokenPair(ctx context.Context, userID string, verify domain.UserVerifyStatus) (*domain.TokenPair, error) {
	accessToken, err := s.codec.Sign(domain.AccessToken, userID, verify, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", userID))
		return nil, err
	}
	refreshToken, err := s.codec.Sign(domain.RefreshToken, userID, verify, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign refresh token", slog.String("user_id", userID))
		return nil, err
	}
	if err := s.persistRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}
	return &domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// persistRefreshToken stores a signed refresh token using its own iat and exp claims.
func (s *sessionService) persistRefreshToken(ctx context.Context, token string) error {
	payload, err := s.codec.Verify(token, domain.RefreshToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to decode freshly signed refresh token")
		return err
	}
	record := domain.RefreshTokenRecord{
		Token:     token,
		UserID:    payload.UserID,
		Verify:    payload.Verify,
		IssuedAt:  payload.IssuedAt,
		ExpiresAt: payload.ExpiresAt,
		CreatedAt: s.now(),
	}
	if err := s.refreshTokens.InsertRefreshToken(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to insert refresh token", slog.String("user_id", payload.UserID))
		return fmt.Errorf("failed to insert refresh token: %w", err)
	}
	return nil
}

// requireUnverified allows only the Unverified -> Verified transition.
// Banned is terminal.
func requireUnverified(user *domain.User) error {
	switch user.Verify {
	case domain.UserUnverified:
		return nil
	case domain.UserBanned:
		return apperrors.ErrUserBanned
	default:
		return apperrors.ErrEmailAlreadyVerified
	}
}

func (s *sessionService) revokeSessions(ctx context.Context, userID string) error {
	if !s.revokeOnPasswordChange {
		return nil
	}
	n, err := s.refreshTokens.DeleteRefreshTokensByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to revoke sessions", slog.String("user_id", userID))
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	s.LogInfo(ctx, "Sessions revoked", slog.String("user_id", userID), slog.Int64("count", n))
	return nil
}
