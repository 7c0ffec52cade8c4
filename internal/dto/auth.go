package dto

import (
	"github.com/SscSPs/social_media_app/internal/core/domain"
	"github.com/SscSPs/social_media_app/internal/validation"
)

type RegisterRequest struct {
	Name            string `json:"name" example:"Alice"`
	Email           string `json:"email" example:"alice@example.com"`
	Password        string `json:"password" example:"Passw0rd!"`
	ConfirmPassword string `json:"confirm_password" example:"Passw0rd!"`
	DateOfBirth     string `json:"date_of_birth" example:"1999-04-01T00:00:00Z"`
}

func (r RegisterRequest) ToValidationInput() validation.RegisterInput {
	return validation.RegisterInput{
		Name:            r.Name,
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
		DateOfBirth:     r.DateOfBirth,
	}
}

type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"Passw0rd!"`
}

// RefreshTokenRequest carries the refresh token for the refresh and logout endpoints.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type VerifyEmailRequest struct {
	EmailVerifyToken string `json:"email_verify_token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" example:"alice@example.com"`
}

type VerifyForgotPasswordRequest struct {
	ForgotPasswordToken string `json:"forgot_password_token"`
}

type ResetPasswordRequest struct {
	ForgotPasswordToken string `json:"forgot_password_token"`
	Password            string `json:"password"`
	ConfirmPassword     string `json:"confirm_password"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// TokenPairResponse is returned by every endpoint that starts or rotates a session.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func ToTokenPairResponse(pair *domain.TokenPair) TokenPairResponse {
	return TokenPairResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}
}

type OAuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	NewUser      bool   `json:"new_user"`
	Verify       int    `json:"verify"`
}

func ToOAuthResponse(res *domain.OAuthResult) OAuthResponse {
	return OAuthResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		NewUser:      res.NewUser,
		Verify:       int(res.Verify),
	}
}
