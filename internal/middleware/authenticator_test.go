package middleware_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/social_media_app/internal/adapters/database/memory"
	"github.com/SscSPs/social_media_app/internal/apperrors"
	"github.com/SscSPs/social_media_app/internal/core/domain"
	portssvc "github.com/SscSPs/social_media_app/internal/core/ports/services"
	"github.com/SscSPs/social_media_app/internal/core/services"
	"github.com/SscSPs/social_media_app/internal/middleware"
	"github.com/SscSPs/social_media_app/internal/platform/config"
	"github.com/stretchr/testify/suite"
)

type AuthenticatorTestSuite struct {
	suite.Suite
	ctx           context.Context
	codec         portssvc.TokenCodec
	users         *memory.UserRepository
	refreshTokens *memory.RefreshTokenRepository
	auth          *middleware.Authenticator
}

func (s *AuthenticatorTestSuite) SetupTest() {
	cfg := &config.Config{
		JWTIssuer:           "test-issuer",
		AccessToken:         config.TokenConfig{Secret: "access-secret", ExpiresIn: 15 * time.Minute},
		RefreshToken:        config.TokenConfig{Secret: "refresh-secret", ExpiresIn: 24 * time.Hour},
		EmailVerifyToken:    config.TokenConfig{Secret: "verify-secret", ExpiresIn: time.Hour},
		ForgotPasswordToken: config.TokenConfig{Secret: "forgot-secret", ExpiresIn: time.Hour},
	}
	s.ctx = context.Background()
	s.codec = services.NewTokenCodec(cfg)
	s.users = memory.NewUserRepository()
	s.refreshTokens = memory.NewRefreshTokenRepository()
	s.auth = middleware.NewAuthenticator(s.codec, s.users, s.refreshTokens)
}

func TestAuthenticatorTestSuite(t *testing.T) {
	suite.Run(t, new(AuthenticatorTestSuite))
}

func (s *AuthenticatorTestSuite) sign(kind domain.TokenType, userID string, verify domain.UserVerifyStatus) string {
	token, err := s.codec.Sign(kind, userID, verify, nil)
	s.Require().NoError(err)
	return token
}

func (s *AuthenticatorTestSuite) insertUser(userID, verifyToken, forgotToken string) {
	s.Require().NoError(s.users.InsertUser(s.ctx, domain.User{
		UserID:              userID,
		Email:               userID + "@example.com",
		Username:            "user" + userID,
		EmailVerifyToken:    verifyToken,
		ForgotPasswordToken: forgotToken,
	}))
}

func (s *AuthenticatorTestSuite) TestAccess() {
	token := s.sign(domain.AccessToken, "u1", domain.UserVerified)

	payload, err := s.auth.Access(s.ctx, "Bearer "+token)
	s.Require().NoError(err)
	s.Equal("u1", payload.UserID)
	s.Equal(domain.UserVerified, payload.Verify)

	payload, err = s.auth.Access(s.ctx, "bearer "+token)
	s.NoError(err)
	s.NotNil(payload)
}

func (s *AuthenticatorTestSuite) TestAccess_Rejects() {
	refresh := s.sign(domain.RefreshToken, "u1", domain.UserVerified)

	cases := map[string]struct {
		header string
		want   error
	}{
		"missing header":  {"", apperrors.ErrUnauthorized},
		"no scheme":       {"abc.def.ghi", apperrors.ErrUnauthorized},
		"wrong scheme":    {"Basic abc", apperrors.ErrUnauthorized},
		"garbage token":   {"Bearer not-a-jwt", apperrors.ErrTokenInvalid},
		"wrong kind":      {"Bearer " + refresh, apperrors.ErrTokenInvalid},
		"too many fields": {"Bearer a b", apperrors.ErrUnauthorized},
	}
	for name, tc := range cases {
		s.Run(name, func() {
			_, err := s.auth.Access(s.ctx, tc.header)
			s.ErrorIs(err, tc.want)
		})
	}
}

func (s *AuthenticatorTestSuite) TestRefresh() {
	token := s.sign(domain.RefreshToken, "u1", domain.UserUnverified)

	_, err := s.auth.Refresh(s.ctx, token)
	s.ErrorIs(err, apperrors.ErrRefreshTokenReused, "token not in store")

	s.Require().NoError(s.refreshTokens.InsertRefreshToken(s.ctx, domain.RefreshTokenRecord{
		Token:     token,
		UserID:    "u1",
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	payload, err := s.auth.Refresh(s.ctx, token)
	s.Require().NoError(err)
	s.Equal("u1", payload.UserID)

	_, err = s.auth.Refresh(s.ctx, "")
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AuthenticatorTestSuite) TestEmailVerify() {
	token := s.sign(domain.EmailVerifyToken, "u1", domain.UserUnverified)
	s.insertUser("u1", token, "")

	payload, err := s.auth.EmailVerify(s.ctx, token)
	s.Require().NoError(err)
	s.Equal("u1", payload.UserID)

	other := s.sign(domain.EmailVerifyToken, "u2", domain.UserUnverified)
	s.insertUser("u2", "", "")
	_, err = s.auth.EmailVerify(s.ctx, other)
	s.ErrorIs(err, apperrors.ErrEmailAlreadyVerified)

	_, err = s.auth.EmailVerify(s.ctx, s.sign(domain.EmailVerifyToken, "missing", domain.UserUnverified))
	s.ErrorIs(err, apperrors.ErrUserNotFound)
}

func (s *AuthenticatorTestSuite) TestForgotPassword() {
	stored := s.sign(domain.ForgotPasswordToken, "u1", domain.UserVerified)
	s.insertUser("u1", "", stored)

	payload, err := s.auth.ForgotPassword(s.ctx, stored)
	s.Require().NoError(err)
	s.Equal("u1", payload.UserID)

	s.insertUser("u2", "", "")
	_, err = s.auth.ForgotPassword(s.ctx, s.sign(domain.ForgotPasswordToken, "u2", domain.UserVerified))
	s.ErrorIs(err, apperrors.ErrTokenInvalid)

	_, err = s.auth.ForgotPassword(s.ctx, s.sign(domain.AccessToken, "u1", domain.UserVerified))
	s.ErrorIs(err, apperrors.ErrTokenInvalid)
}

func (s *AuthenticatorTestSuite) TestRequireVerified() {
	s.NoError(s.auth.RequireVerified(&domain.TokenPayload{Verify: domain.UserVerified}))
	s.ErrorIs(s.auth.RequireVerified(&domain.TokenPayload{Verify: domain.UserUnverified}), apperrors.ErrUserNotVerified)
	s.ErrorIs(s.auth.RequireVerified(&domain.TokenPayload{Verify: domain.UserBanned}), apperrors.ErrUserNotVerified)
	s.ErrorIs(s.auth.RequireVerified(nil), apperrors.ErrUserNotVerified)
}
