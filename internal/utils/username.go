package utils

import "strings"

const usernameIDChars = 12

// DefaultUsername derives the server-generated username of a new account from its ID.
func DefaultUsername(userID string) string {
	compact := strings.ReplaceAll(userID, "-", "")
	if len(compact) > usernameIDChars {
		compact = compact[:usernameIDChars]
	}
	return "user" + compact
}
