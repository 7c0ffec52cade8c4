package pgsql

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/social_media_app/internal/apperrors"
	"github.com/SscSPs/social_media_app/internal/core/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestUserPatchToSQL(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	name := "Alice"
	hash := "hash"

	sets, args := userPatchToSQL(domain.UserPatch{Name: &name, PasswordHash: &hash, UpdatedAt: now})

	assert.Equal(t, []string{"name = $1", "password_hash = $2", "updated_at = $3"}, sets)
	assert.Equal(t, []any{"Alice", "hash", now}, args)

	sets, args = userPatchToSQL(domain.UserPatch{})
	assert.Empty(t, sets)
	assert.Empty(t, args)
}

func TestMapUserConstraint(t *testing.T) {
	unique := func(constraint string) error {
		return &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: constraint}
	}

	assert.ErrorIs(t, mapUserConstraint(unique(usersEmailKey)), apperrors.ErrEmailAlreadyExists)
	assert.ErrorIs(t, mapUserConstraint(unique(usersUsernameKey)), apperrors.ErrUsernameExists)
	assert.ErrorIs(t, mapUserConstraint(unique("users_pkey")), apperrors.ErrDuplicate)

	other := errors.New("connection reset")
	assert.Equal(t, other, mapUserConstraint(other))
}
