package domain

import "time"

// TokenType identifies the kind of a signed session token. Each kind has its
// own signing key and lifetime.
type TokenType int

const (
	AccessToken TokenType = iota
	RefreshToken
	ForgotPasswordToken
	EmailVerifyToken
)

func (t TokenType) String() string {
	switch t {
	case AccessToken:
		return "access_token"
	case RefreshToken:
		return "refresh_token"
	case ForgotPasswordToken:
		return "forgot_password_token"
	case EmailVerifyToken:
		return "email_verify_token"
	default:
		return "unknown_token"
	}
}

// TokenPayload is the decoded content of a verified token.
type TokenPayload struct {
	UserID    string           `json:"user_id"`
	Verify    UserVerifyStatus `json:"verify"`
	TokenType TokenType        `json:"token_type"`
	IssuedAt  time.Time        `json:"iat"`
	ExpiresAt time.Time        `json:"exp"`
}

// TokenPair is the access/refresh pair handed to clients.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// OAuthResult is the outcome of an OAuth login.
type OAuthResult struct {
	TokenPair
	NewUser bool             `json:"new_user"`
	Verify  UserVerifyStatus `json:"verify"`
}
