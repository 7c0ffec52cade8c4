package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/social_media_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestUserMappingKeepsSecretsAndStatus(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	d := domain.User{
		UserID:              "u1",
		Email:               "a@x.com",
		PasswordHash:        "hash",
		EmailVerifyToken:    "evt",
		ForgotPasswordToken: "fpt",
		Verify:              domain.UserBanned,
		Username:            "alice",
		Timestamps:          domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	m := ToModelUser(d)
	assert.Equal(t, "hash", m.Password)
	assert.Equal(t, 2, m.Verify)

	assert.Equal(t, d, ToDomainUser(m))
}
