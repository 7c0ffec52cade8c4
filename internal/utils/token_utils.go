package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the JWT body of every session token.
type SessionClaims struct {
	UserID    string `json:"user_id"`
	Verify    int    `json:"verify"`
	TokenType int    `json:"token_type"`
	jwt.RegisteredClaims
}

// GenerateJWT signs the claims with HS256 using the given secret.
func GenerateJWT(claims SessionClaims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a JWT token string, validates its signature and standard claims.
// It returns the claims if the token is valid, or the jwt error otherwise
// (jwt.ErrTokenExpired, jwt.ErrTokenSignatureInvalid, ...).
func ParseAndValidateJWT(tokenString string, secretKey string, now func() time.Time) (*SessionClaims, error) {
	claims := &SessionClaims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if now != nil {
		opts = append(opts, jwt.WithTimeFunc(now))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
