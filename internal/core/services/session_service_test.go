package services_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/social_media_app/internal/adapters/database/memory"
	"github.com/SscSPs/social_media_app/internal/apperrors"
	"github.com/SscSPs/social_media_app/internal/core/domain"
	portssvc "github.com/SscSPs/social_media_app/internal/core/ports/services"
	"github.com/SscSPs/social_media_app/internal/core/services"
	"github.com/SscSPs/social_media_app/internal/middleware"
	"github.com/SscSPs/social_media_app/internal/utils"
	"github.com/stretchr/testify/suite"
)

type sentNotification struct {
	to              string
	token           string
	isPasswordReset bool
}

// fakeNotifier records every notification and can be told to fail.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	fail bool
}

func (n *fakeNotifier) Send(_ context.Context, to, token string, isPasswordReset bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return fmt.Errorf("%w: smtp down", apperrors.ErrNotificationDeliveryFailed)
	}
	n.sent = append(n.sent, sentNotification{to: to, token: token, isPasswordReset: isPasswordReset})
	return nil
}

func (n *fakeNotifier) last() sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sent[len(n.sent)-1]
}

// fakeIdentityProvider asserts a fixed identity for any code.
type fakeIdentityProvider struct {
	identity domain.ExternalIdentity
}

func (p *fakeIdentityProvider) LoginURL(state string) string { return "https://idp.test/auth?state=" + state }

func (p *fakeIdentityProvider) ExchangeCode(_ context.Context, code string) (*domain.OAuthTokens, error) {
	if code == "" {
		return nil, apperrors.ErrUnauthorized
	}
	return &domain.OAuthTokens{AccessToken: "provider-access"}, nil
}

func (p *fakeIdentityProvider) FetchIdentity(_ context.Context, _ *domain.OAuthTokens) (*domain.ExternalIdentity, error) {
	id := p.identity
	return &id, nil
}

// recordingTracker keeps the names of tracked events.
type recordingTracker struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingTracker) Track(_ context.Context, _ string, event string, _ map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

type SessionServiceTestSuite struct {
	suite.Suite
	ctx           context.Context
	clock         *testClock
	users         *memory.UserRepository
	refreshTokens *memory.RefreshTokenRepository
	notifier      *fakeNotifier
	identity      *fakeIdentityProvider
	tracker       *recordingTracker
	codec         portssvc.TokenCodec
	auth          *middleware.Authenticator
	service       portssvc.SessionSvcFacade
}

type suiteConfig struct {
	revokeOnPasswordChange bool
}

func (s *SessionServiceTestSuite) SetupTest() {
	s.build(suiteConfig{})
}

func (s *SessionServiceTestSuite) build(sc suiteConfig) {
	s.ctx = context.Background()
	s.clock = &testClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	s.users = memory.NewUserRepository()
	s.refreshTokens = memory.NewRefreshTokenRepository()
	s.notifier = &fakeNotifier{}
	s.identity = &fakeIdentityProvider{}
	s.tracker = &recordingTracker{}

	cfg := testConfig()
	s.codec = services.NewTokenCodec(cfg, services.WithTokenClock(s.clock.Now))
	s.auth = middleware.NewAuthenticator(s.codec, s.users, s.refreshTokens)
	s.service = services.NewSessionService(
		s.users,
		s.refreshTokens,
		s.codec,
		s.notifier,
		services.WithPasswordHasher(utils.NewPasswordHasher(cfg.HashPasswordSecret)),
		services.WithIdentityProvider(s.identity),
		services.WithEventTracker(s.tracker),
		services.WithSessionRevocationOnPasswordChange(sc.revokeOnPasswordChange),
		services.WithClock(s.clock.Now),
	)
}

func (s *SessionServiceTestSuite) register(email, password string) *domain.TokenPair {
	pair, err := s.service.Register(s.ctx, portssvc.RegisterInput{
		Name:        "Alice",
		Email:       email,
		Password:    password,
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	s.Require().NoError(err)
	return pair
}

func (s *SessionServiceTestSuite) userIDOf(pair *domain.TokenPair) string {
	payload, err := s.codec.Verify(pair.AccessToken, domain.AccessToken)
	s.Require().NoError(err)
	return payload.UserID
}

// --- Register ---

func (s *SessionServiceTestSuite) TestRegister_CreatesOneUserAndOneRefreshToken() {
	pair := s.register("a@x.com", "Abc123!")

	access, err := s.codec.Verify(pair.AccessToken, domain.AccessToken)
	s.Require().NoError(err)
	refresh, err := s.codec.Verify(pair.RefreshToken, domain.RefreshToken)
	s.Require().NoError(err)
	s.Equal(access.UserID, refresh.UserID)
	s.Equal(domain.UserUnverified, access.Verify)

	user, err := s.users.FindUserByEmail(s.ctx, "a@x.com")
	s.Require().NoError(err)
	s.Equal(access.UserID, user.UserID)
	s.Equal(domain.UserUnverified, user.Verify)
	s.Equal(utils.DefaultUsername(user.UserID), user.Username)
	s.NotEqual("Abc123!", user.PasswordHash)
	s.Equal(s.notifier.last().token, user.EmailVerifyToken)
	s.False(s.notifier.last().isPasswordReset)

	s.Equal(1, s.refreshTokens.Count())
	record, err := s.refreshTokens.FindRefreshToken(s.ctx, pair.RefreshToken)
	s.Require().NoError(err)
	s.True(record.ExpiresAt.Equal(refresh.ExpiresAt))
	s.True(record.IssuedAt.Equal(refresh.IssuedAt))
	s.Contains(s.tracker.events, services.EventUserRegistered)
}

func (s *SessionServiceTestSuite) TestRegister_NotificationFailurePersistsNothing() {
	s.notifier.fail = true

	pair, err := s.service.Register(s.ctx, portssvc.RegisterInput{Name: "A", Email: "a@x.com", Password: "Abc123!"})

	s.Nil(pair)
	s.ErrorIs(err, apperrors.ErrNotificationDeliveryFailed)
	_, err = s.users.FindUserByEmail(s.ctx, "a@x.com")
	s.ErrorIs(err, apperrors.ErrUserNotFound)
	s.Equal(0, s.refreshTokens.Count())
}

func (s *SessionServiceTestSuite) TestRegister_DuplicateEmail() {
	s.register("a@x.com", "Abc123!")

	_, err := s.service.Register(s.ctx, portssvc.RegisterInput{Name: "B", Email: "a@x.com", Password: "Abc123!"})

	s.ErrorIs(err, apperrors.ErrEmailAlreadyExists)
	s.Len(s.notifier.sent, 1)
}

// --- Login ---

func (s *SessionServiceTestSuite) TestLogin_Success() {
	s.register("a@x.com", "Abc123!")

	pair, err := s.service.Login(s.ctx, "a@x.com", "Abc123!")

	s.Require().NoError(err)
	_, err = s.codec.Verify(pair.AccessToken, domain.AccessToken)
	s.NoError(err)
	s.Equal(2, s.refreshTokens.Count())
}

func (s *SessionServiceTestSuite) TestLogin_WrongPasswordAndUnknownEmailLookAlike() {
	s.register("a@x.com", "Abc123!")

	_, wrongPassword := s.service.Login(s.ctx, "a@x.com", "Wrong123!")
	_, unknownEmail := s.service.Login(s.ctx, "nobody@x.com", "Abc123!")

	s.ErrorIs(wrongPassword, apperrors.ErrInvalidCredentials)
	s.ErrorIs(unknownEmail, apperrors.ErrInvalidCredentials)
	s.Equal(wrongPassword.Error(), unknownEmail.Error())
	s.Equal(apperrors.FromError(wrongPassword).Message, apperrors.FromError(unknownEmail).Message)
}

// --- Logout ---

func (s *SessionServiceTestSuite) TestLogout_Idempotent() {
	pair := s.register("a@x.com", "Abc123!")

	s.NoError(s.service.Logout(s.ctx, pair.RefreshToken))
	s.Equal(0, s.refreshTokens.Count())
	s.NoError(s.service.Logout(s.ctx, pair.RefreshToken))
	s.NoError(s.service.Logout(s.ctx, "never-issued"))
}

// --- Refresh ---

func (s *SessionServiceTestSuite) rotate(refreshToken string) (*domain.TokenPair, error) {
	payload, err := s.auth.Refresh(s.ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	return s.service.RefreshToken(s.ctx, payload.UserID, payload.Verify, refreshToken, payload.ExpiresAt)
}

func (s *SessionServiceTestSuite) TestRefresh_NeverExtendsAbsoluteExpiry() {
	t0 := s.clock.Now()
	pair := s.register("a@x.com", "Abc123!")
	lifetime := testConfig().RefreshToken.ExpiresIn

	for i := 0; i < 3; i++ {
		s.clock.Advance(24 * time.Hour)
		next, err := s.rotate(pair.RefreshToken)
		s.Require().NoError(err)

		payload, err := s.codec.Verify(next.RefreshToken, domain.RefreshToken)
		s.Require().NoError(err)
		s.True(payload.ExpiresAt.Equal(t0.Add(lifetime)), "rotation %d moved expiry to %s", i, payload.ExpiresAt)
		s.True(payload.IssuedAt.Equal(s.clock.Now()))
		pair = next
	}
	s.Equal(1, s.refreshTokens.Count())
}

func (s *SessionServiceTestSuite) TestRefresh_ReuseAfterRotationFails() {
	old := s.register("a@x.com", "Abc123!")

	_, err := s.rotate(old.RefreshToken)
	s.Require().NoError(err)

	// The old token still has a valid signature and is not expired.
	payload, err := s.codec.Verify(old.RefreshToken, domain.RefreshToken)
	s.Require().NoError(err)

	_, err = s.rotate(old.RefreshToken)
	s.ErrorIs(err, apperrors.ErrRefreshTokenReused)

	_, err = s.service.RefreshToken(s.ctx, payload.UserID, payload.Verify, old.RefreshToken, payload.ExpiresAt)
	s.ErrorIs(err, apperrors.ErrRefreshTokenReused)
	s.Equal(1, s.refreshTokens.Count())
	s.Contains(s.tracker.events, services.EventRefreshTokenReused)
}

func (s *SessionServiceTestSuite) TestRefresh_ConcurrentRotationHasOneWinner() {
	old := s.register("a@x.com", "Abc123!")
	payload, err := s.codec.Verify(old.RefreshToken, domain.RefreshToken)
	s.Require().NoError(err)

	const callers = 8
	results := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.RefreshToken(s.ctx, payload.UserID, payload.Verify, old.RefreshToken, payload.ExpiresAt)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, reused int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, apperrors.ErrRefreshTokenReused):
			reused++
		}
	}
	s.Equal(1, ok)
	s.Equal(callers-1, reused)
	s.Equal(1, s.refreshTokens.Count())
}

func (s *SessionServiceTestSuite) TestRefresh_ExpiredToken() {
	pair := s.register("a@x.com", "Abc123!")

	s.clock.Advance(testConfig().RefreshToken.ExpiresIn + time.Second)

	_, err := s.rotate(pair.RefreshToken)
	s.ErrorIs(err, apperrors.ErrTokenExpired)
}

// --- Email verification ---

func (s *SessionServiceTestSuite) TestVerifyEmail_Scenario() {
	before := s.register("a@x.com", "Abc123!")
	verifyToken := s.notifier.last().token

	payload, err := s.auth.EmailVerify(s.ctx, verifyToken)
	s.Require().NoError(err)

	after, err := s.service.VerifyEmail(s.ctx, payload.UserID)
	s.Require().NoError(err)

	user, err := s.users.FindUserByID(s.ctx, payload.UserID)
	s.Require().NoError(err)
	s.Equal(domain.UserVerified, user.Verify)
	s.Empty(user.EmailVerifyToken)

	fresh, err := s.codec.Verify(after.AccessToken, domain.AccessToken)
	s.Require().NoError(err)
	s.Equal(domain.UserVerified, fresh.Verify)

	stale, err := s.codec.Verify(before.AccessToken, domain.AccessToken)
	s.Require().NoError(err)
	s.Equal(domain.UserUnverified, stale.Verify)

	_, err = s.auth.EmailVerify(s.ctx, verifyToken)
	s.ErrorIs(err, apperrors.ErrEmailAlreadyVerified)
	_, err = s.service.VerifyEmail(s.ctx, payload.UserID)
	s.ErrorIs(err, apperrors.ErrEmailAlreadyVerified)
}

func (s *SessionServiceTestSuite) TestResendVerifyEmail() {
	pair := s.register("a@x.com", "Abc123!")
	userID := s.userIDOf(pair)
	first := s.notifier.last().token

	s.clock.Advance(2 * time.Second)
	s.Require().NoError(s.service.ResendVerifyEmail(s.ctx, userID))
	second := s.notifier.last().token
	s.NotEqual(first, second)

	_, err := s.auth.EmailVerify(s.ctx, first)
	s.ErrorIs(err, apperrors.ErrTokenInvalid)
	_, err = s.auth.EmailVerify(s.ctx, second)
	s.NoError(err)

	_, err = s.service.VerifyEmail(s.ctx, userID)
	s.Require().NoError(err)
	s.ErrorIs(s.service.ResendVerifyEmail(s.ctx, userID), apperrors.ErrEmailAlreadyVerified)
}

func (s *SessionServiceTestSuite) ban(userID string) {
	banned := domain.UserBanned
	s.Require().NoError(s.users.UpdateUser(s.ctx, userID, domain.UserPatch{Verify: &banned}))
}

func (s *SessionServiceTestSuite) TestVerifyEmail_BannedUserStaysBanned() {
	pair := s.register("a@x.com", "Abc123!")
	userID := s.userIDOf(pair)
	verifyToken := s.notifier.last().token
	s.ban(userID)

	_, err := s.auth.EmailVerify(s.ctx, verifyToken)
	s.ErrorIs(err, apperrors.ErrUserBanned)
	_, err = s.service.VerifyEmail(s.ctx, userID)
	s.ErrorIs(err, apperrors.ErrUserBanned)
	s.Equal(http.StatusForbidden, apperrors.FromError(err).Code)

	user, err := s.users.FindUserByID(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(domain.UserBanned, user.Verify)
}

func (s *SessionServiceTestSuite) TestResendVerifyEmail_BannedAfterVerification() {
	pair := s.register("a@x.com", "Abc123!")
	userID := s.userIDOf(pair)
	_, err := s.service.VerifyEmail(s.ctx, userID)
	s.Require().NoError(err)
	s.ban(userID)
	sent := len(s.notifier.sent)

	s.ErrorIs(s.service.ResendVerifyEmail(s.ctx, userID), apperrors.ErrUserBanned)
	s.Len(s.notifier.sent, sent)
	_, err = s.service.VerifyEmail(s.ctx, userID)
	s.ErrorIs(err, apperrors.ErrUserBanned)

	user, err := s.users.FindUserByID(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(domain.UserBanned, user.Verify)
	s.Empty(user.EmailVerifyToken)
}

// --- Password reset and change ---

func (s *SessionServiceTestSuite) TestForgotAndResetPassword_Scenario() {
	s.register("a@x.com", "Abc123!")

	s.Require().NoError(s.service.ForgotPassword(s.ctx, "a@x.com"))
	sent := s.notifier.last()
	s.True(sent.isPasswordReset)
	s.Equal("a@x.com", sent.to)

	payload, err := s.auth.ForgotPassword(s.ctx, sent.token)
	s.Require().NoError(err)
	s.Require().NoError(s.service.ResetPassword(s.ctx, payload.UserID, "NewPass1!"))

	_, err = s.service.Login(s.ctx, "a@x.com", "NewPass1!")
	s.NoError(err)
	_, err = s.service.Login(s.ctx, "a@x.com", "Abc123!")
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)

	// The reset token is single use.
	_, err = s.auth.ForgotPassword(s.ctx, sent.token)
	s.ErrorIs(err, apperrors.ErrTokenInvalid)
}

func (s *SessionServiceTestSuite) TestForgotPassword_UnknownEmail() {
	err := s.service.ForgotPassword(s.ctx, "nobody@x.com")
	s.ErrorIs(err, apperrors.ErrUserNotFound)
	s.Empty(s.notifier.sent)
}

func (s *SessionServiceTestSuite) TestResetPassword_KeepsSessionsByDefault() {
	pair := s.register("a@x.com", "Abc123!")

	s.Require().NoError(s.service.ResetPassword(s.ctx, s.userIDOf(pair), "NewPass1!"))

	_, err := s.refreshTokens.FindRefreshToken(s.ctx, pair.RefreshToken)
	s.NoError(err)
}

func (s *SessionServiceTestSuite) TestChangePassword() {
	pair := s.register("a@x.com", "Abc123!")
	userID := s.userIDOf(pair)

	err := s.service.ChangePassword(s.ctx, userID, "Wrong123!", "NewPass1!")
	s.ErrorIs(err, apperrors.ErrIncorrectOldPassword)

	s.clock.Advance(time.Minute)
	s.Require().NoError(s.service.ChangePassword(s.ctx, userID, "Abc123!", "NewPass1!"))

	user, err := s.users.FindUserByID(s.ctx, userID)
	s.Require().NoError(err)
	s.True(user.UpdatedAt.Equal(s.clock.Now()))

	_, err = s.service.Login(s.ctx, "a@x.com", "NewPass1!")
	s.NoError(err)
}

func (s *SessionServiceTestSuite) TestChangePassword_RevokesSessionsWhenEnabled() {
	s.build(suiteConfig{revokeOnPasswordChange: true})
	pair := s.register("a@x.com", "Abc123!")
	_, err := s.service.Login(s.ctx, "a@x.com", "Abc123!")
	s.Require().NoError(err)
	s.Equal(2, s.refreshTokens.Count())

	s.Require().NoError(s.service.ChangePassword(s.ctx, s.userIDOf(pair), "Abc123!", "NewPass1!"))

	s.Equal(0, s.refreshTokens.Count())
	_, err = s.rotate(pair.RefreshToken)
	s.ErrorIs(err, apperrors.ErrRefreshTokenReused)
}

// --- OAuth ---

func (s *SessionServiceTestSuite) TestOAuth_UnverifiedIdentity() {
	s.identity.identity = domain.ExternalIdentity{Subject: "g-1", Email: "a@x.com", EmailVerified: false}

	_, err := s.service.OAuth(s.ctx, "code")

	s.ErrorIs(err, apperrors.ErrExternalIdentityUnverified)
	s.Equal(0, s.refreshTokens.Count())
}

func (s *SessionServiceTestSuite) TestOAuth_ExistingEmailLogsIn() {
	pair := s.register("a@x.com", "Abc123!")
	s.identity.identity = domain.ExternalIdentity{Subject: "g-1", Email: "a@x.com", EmailVerified: true}

	result, err := s.service.OAuth(s.ctx, "code")

	s.Require().NoError(err)
	s.False(result.NewUser)
	s.Equal(domain.UserUnverified, result.Verify)
	s.Equal(s.userIDOf(pair), s.userIDOf(&result.TokenPair))
	s.Equal(2, s.refreshTokens.Count())
}

func (s *SessionServiceTestSuite) TestOAuth_NewEmailRegisters() {
	s.identity.identity = domain.ExternalIdentity{Subject: "g-2", Email: "new@x.com", EmailVerified: true, Name: "New", Picture: "https://img.test/p.png"}

	result, err := s.service.OAuth(s.ctx, "code")

	s.Require().NoError(err)
	s.True(result.NewUser)
	s.Equal(domain.UserVerified, result.Verify)

	user, err := s.users.FindUserByEmail(s.ctx, "new@x.com")
	s.Require().NoError(err)
	s.Equal(domain.UserVerified, user.Verify)
	s.Equal("New", user.Name)
	s.Equal("https://img.test/p.png", user.Avatar)
	s.NotEmpty(user.PasswordHash)
	s.Empty(s.notifier.sent)
	s.Equal(1, s.refreshTokens.Count())
}

func (s *SessionServiceTestSuite) TestOAuth_WithoutProvider() {
	svc := services.NewSessionService(s.users, s.refreshTokens, s.codec, s.notifier)

	_, err := svc.OAuth(s.ctx, "code")

	s.ErrorIs(err, apperrors.ErrIdentityProviderDisabled)
	s.Equal(http.StatusServiceUnavailable, apperrors.FromError(err).Code)
}

func TestSessionService(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}
