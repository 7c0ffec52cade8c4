package mongo

import (
	"testing"
	"time"

	"github.com/SscSPs/social_media_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestUserPatchToSet(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	empty := ""
	verified := domain.UserVerified

	set := userPatchToSet(domain.UserPatch{
		EmailVerifyToken: &empty,
		Verify:           &verified,
		UpdatedAt:        now,
	})

	assert.Equal(t, bson.D{
		{Key: "email_verify_token", Value: ""},
		{Key: "verify", Value: 1},
		{Key: "updated_at", Value: now},
	}, set)

	assert.Empty(t, userPatchToSet(domain.UserPatch{}))
}
