package dto

import "github.com/SscSPs/social_media_app/internal/validation"

// Response is the envelope of every successful response.
type Response struct {
	Message string `json:"message"`
	Result  any    `json:"result,omitempty"`
}

// FieldErrorResponse describes why one request field was rejected.
type FieldErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"msg"`
}

// ErrorResponse is the envelope of every error response. Errors is only set
// for validation failures.
type ErrorResponse struct {
	Message string                        `json:"message"`
	Errors  map[string]FieldErrorResponse `json:"errors,omitempty"`
}

// ToValidationErrorResponse converts a validation failure into the per-field error body.
func ToValidationErrorResponse(message string, err *validation.Error) ErrorResponse {
	fields := make(map[string]FieldErrorResponse, len(err.Fields))
	for field, fe := range err.ByField() {
		fields[field] = FieldErrorResponse{Kind: string(fe.Kind), Message: fe.Message}
	}
	return ErrorResponse{Message: message, Errors: fields}
}
