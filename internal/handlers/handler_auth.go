package handlers

import (
	"github.com/SscSPs/social_media_app/internal/apperrors"
	portssvc "github.com/SscSPs/social_media_app/internal/core/ports/services"
	"github.com/SscSPs/social_media_app/internal/dto"
	"github.com/SscSPs/social_media_app/internal/middleware"
	"github.com/SscSPs/social_media_app/internal/validation"
	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration, login and the session token endpoints.
type AuthHandler struct {
	sessionService portssvc.SessionSvcFacade
	auth           *middleware.Authenticator
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(ss portssvc.SessionSvcFacade, auth *middleware.Authenticator) *AuthHandler {
	return &AuthHandler{sessionService: ss, auth: auth}
}

// registerAuthRoutes sets up the session routes. limit guards the endpoints
// that send email or check passwords.
func registerAuthRoutes(users *gin.RouterGroup, h *AuthHandler, limit gin.HandlerFunc) {
	users.POST("/register", limit, h.Register)
	users.POST("/login", limit, h.Login)
	users.POST("/logout", h.Logout)
	users.POST("/refresh-token", h.RefreshToken)
	users.POST("/verify-email", h.VerifyEmail)
	users.POST("/resend-verify-email", limit, h.ResendVerifyEmail)
	users.POST("/forgot-password", limit, h.ForgotPassword)
	users.POST("/verify-forgot-password", h.VerifyForgotPassword)
	users.POST("/reset-password", h.ResetPassword)
	users.PUT("/change-password", h.ChangePassword)
}

// Register godoc
// @Summary Register new user
// @Description Creates an unverified account, emails a verification link and starts a session.
// @Tags users
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 200 {object} dto.Response{result=dto.TokenPairResponse}
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 422 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse "Verification email could not be sent"
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.Register(req.ToValidationInput()).Err(); err != nil {
		respondError(c, err)
		return
	}
	dob, err := validation.ParseDate(req.DateOfBirth)
	if err != nil {
		respondError(c, err)
		return
	}

	pair, err := h.sessionService.Register(c.Request.Context(), portssvc.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		DateOfBirth: dob,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Register success", dto.ToTokenPairResponse(pair))
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns an access/refresh token pair.
// @Tags users
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.Response{result=dto.TokenPairResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.Login(req.Email, req.Password).Err(); err != nil {
		respondError(c, err)
		return
	}

	pair, err := h.sessionService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Login success", dto.ToTokenPairResponse(pair))
}

// Logout godoc
// @Summary Logout
// @Description Revokes the given refresh token. Requires the access token of the same user.
// @Tags users
// @Accept json
// @Produce json
// @Param logout body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	access, ok := authenticate(c, h.auth)
	if !ok {
		return
	}
	var req dto.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}
	refresh, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	if refresh.UserID != access.UserID {
		respondError(c, apperrors.ErrTokenInvalid)
		return
	}

	if err := h.sessionService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Logout success", nil)
}

// RefreshToken godoc
// @Summary Rotate refresh token
// @Description Exchanges a refresh token for a new pair. The old refresh token stops working.
// @Tags users
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.Response{result=dto.TokenPairResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}
	payload, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	pair, err := h.sessionService.RefreshToken(c.Request.Context(), payload.UserID, payload.Verify, req.RefreshToken, payload.ExpiresAt)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Refresh token success", dto.ToTokenPairResponse(pair))
}

// VerifyEmail godoc
// @Summary Verify email
// @Tags users
// @Accept json
// @Produce json
// @Param verify body dto.VerifyEmailRequest true "Email verify token"
// @Success 200 {object} dto.Response{result=dto.TokenPairResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already verified"
// @Router /users/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	payload, err := h.auth.EmailVerify(c.Request.Context(), req.EmailVerifyToken)
	if err != nil {
		respondError(c, err)
		return
	}

	pair, err := h.sessionService.VerifyEmail(c.Request.Context(), payload.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Email verify success", dto.ToTokenPairResponse(pair))
}

// ResendVerifyEmail godoc
// @Summary Resend verification email
// @Tags users
// @Produce json
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already verified"
// @Security BearerAuth
// @Router /users/resend-verify-email [post]
func (h *AuthHandler) ResendVerifyEmail(c *gin.Context) {
	payload, ok := authenticate(c, h.auth)
	if !ok {
		return
	}
	if err := h.sessionService.ResendVerifyEmail(c.Request.Context(), payload.UserID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Resend verify email success", nil)
}

// ForgotPassword godoc
// @Summary Request password reset
// @Tags users
// @Accept json
// @Produce json
// @Param forgot body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /users/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.EmailOnly(req.Email).Err(); err != nil {
		respondError(c, err)
		return
	}
	if err := h.sessionService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Check your email to reset your password", nil)
}

// VerifyForgotPassword godoc
// @Summary Check a password reset token
// @Tags users
// @Accept json
// @Produce json
// @Param verify body dto.VerifyForgotPasswordRequest true "Forgot password token"
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/verify-forgot-password [post]
func (h *AuthHandler) VerifyForgotPassword(c *gin.Context) {
	var req dto.VerifyForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.auth.ForgotPassword(c.Request.Context(), req.ForgotPasswordToken); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Verify forgot password success", nil)
}

// ResetPassword godoc
// @Summary Reset password
// @Tags users
// @Accept json
// @Produce json
// @Param reset body dto.ResetPasswordRequest true "Token and new password"
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /users/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	payload, err := h.auth.ForgotPassword(c.Request.Context(), req.ForgotPasswordToken)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := validation.ResetPassword(req.Password, req.ConfirmPassword).Err(); err != nil {
		respondError(c, err)
		return
	}

	if err := h.sessionService.ResetPassword(c.Request.Context(), payload.UserID, req.Password); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Reset password success", nil)
}

// ChangePassword godoc
// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Param change body dto.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "User not verified"
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/change-password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	payload, ok := authenticateVerified(c, h.auth)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.ChangePassword(req.OldPassword, req.Password, req.ConfirmPassword).Err(); err != nil {
		respondError(c, err)
		return
	}

	if err := h.sessionService.ChangePassword(c.Request.Context(), payload.UserID, req.OldPassword, req.Password); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Change password success", nil)
}
