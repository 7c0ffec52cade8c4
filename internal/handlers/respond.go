package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/social_media_app/internal/apperrors"
	"github.com/SscSPs/social_media_app/internal/core/domain"
	"github.com/SscSPs/social_media_app/internal/dto"
	"github.com/SscSPs/social_media_app/internal/middleware"
	"github.com/SscSPs/social_media_app/internal/validation"
	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, message string, result any) {
	c.JSON(http.StatusOK, dto.Response{Message: message, Result: result})
}

// respondError writes err as the error envelope. Validation failures carry
// per-field details; everything else goes through apperrors.FromError.
func respondError(c *gin.Context, err error) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		c.JSON(http.StatusUnprocessableEntity, dto.ToValidationErrorResponse("Validation error", vErr))
		return
	}

	appErr := apperrors.FromError(err)
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if appErr.Code >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("error", err.Error()))
	} else {
		logger.Debug("Request rejected", slog.Int("status", appErr.Code), slog.String("error", err.Error()))
	}
	c.JSON(appErr.Code, dto.ErrorResponse{Message: appErr.Message})
}

// bindJSON decodes the body into req and writes a 400 when it is not valid JSON.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request body", slog.String("error", err.Error()))
		appErr := apperrors.NewBadRequestError("Invalid request body")
		c.JSON(appErr.Code, dto.ErrorResponse{Message: appErr.Message})
		return false
	}
	return true
}

// authenticate validates the access token of the request and exposes the user
// to the request logger and tracking middleware.
func authenticate(c *gin.Context, auth *middleware.Authenticator) (*domain.TokenPayload, bool) {
	payload, err := auth.Access(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	middleware.SetAuthenticatedUser(c, payload)
	return payload, true
}

// authenticateVerified is authenticate plus the verified-user requirement.
func authenticateVerified(c *gin.Context, auth *middleware.Authenticator) (*domain.TokenPayload, bool) {
	payload, ok := authenticate(c, auth)
	if !ok {
		return nil, false
	}
	if err := auth.RequireVerified(payload); err != nil {
		respondError(c, err)
		return nil, false
	}
	return payload, true
}
