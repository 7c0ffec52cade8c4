package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates a missing or malformed credential.
var ErrUnauthorized = errors.New("unauthorized")

// Authentication and session errors.
var (
	ErrInvalidCredentials         = errors.New("email or password is incorrect")
	ErrTokenInvalid               = errors.New("token is invalid")
	ErrTokenExpired               = errors.New("token has expired")
	ErrRefreshTokenReused         = errors.New("refresh token has been used or does not exist")
	ErrSigning                    = errors.New("failed to sign token")
	ErrExternalIdentityUnverified = errors.New("external identity email is not verified")
	ErrNotificationDeliveryFailed = errors.New("notification delivery failed")
	ErrEmailAlreadyVerified       = errors.New("email already verified")
	ErrUserNotVerified            = errors.New("user not verified")
	ErrIncorrectOldPassword       = errors.New("old password is incorrect")
	ErrUserBanned                 = errors.New("user is banned")
	ErrIdentityProviderDisabled   = errors.New("no identity provider configured")
)

// User record errors. ErrUserNotFound matches ErrNotFound with errors.Is.
var (
	ErrUserNotFound       = fmt.Errorf("user not found: %w", ErrNotFound)
	ErrEmailAlreadyExists = fmt.Errorf("email already exists: %w", ErrDuplicate)
	ErrUsernameExists     = fmt.Errorf("username already exists: %w", ErrDuplicate)
)

// AppError is an error carrying the HTTP status and the message shown to the caller.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, nil)
}

// errorMappings is checked in order; more specific errors come before the
// generic ones they wrap.
var errorMappings = []struct {
	target  error
	code    int
	message string
}{
	{ErrValidation, http.StatusUnprocessableEntity, "Validation error"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "Email or password is incorrect"},
	{ErrTokenExpired, http.StatusUnauthorized, "Token has expired, please log in again"},
	{ErrTokenInvalid, http.StatusUnauthorized, "Token is invalid"},
	{ErrRefreshTokenReused, http.StatusUnauthorized, "Refresh token has been used or does not exist, please log in again"},
	{ErrUnauthorized, http.StatusUnauthorized, "Authorization required"},
	{ErrIncorrectOldPassword, http.StatusUnprocessableEntity, "Old password is incorrect"},
	{ErrUserBanned, http.StatusForbidden, "User is banned"},
	{ErrUserNotVerified, http.StatusForbidden, "User not verified"},
	{ErrUserNotFound, http.StatusNotFound, "User not found"},
	{ErrNotFound, http.StatusNotFound, "Resource not found"},
	{ErrEmailAlreadyExists, http.StatusConflict, "Email already exists"},
	{ErrUsernameExists, http.StatusConflict, "Username already exists"},
	{ErrDuplicate, http.StatusConflict, "Resource already exists"},
	{ErrEmailAlreadyVerified, http.StatusConflict, "Email already verified"},
	{ErrExternalIdentityUnverified, http.StatusBadRequest, "Email of the external account is not verified"},
	{ErrNotificationDeliveryFailed, http.StatusBadGateway, "Could not deliver the email, please try again later"},
	{ErrIdentityProviderDisabled, http.StatusServiceUnavailable, "External login is not available"},
}

// FromError converts any error into an AppError suitable for a response body.
// Unknown errors become a generic 500 so internal details never leak.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return NewAppError(m.code, m.message, err)
		}
	}
	return NewAppError(http.StatusInternalServerError, "Internal server error", err)
}
