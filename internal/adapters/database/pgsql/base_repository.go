// Package pgsql implements the credential store on PostgreSQL.
package pgsql

import (
	"errors"

	"github.com/SscSPs/social_media_app/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Unique constraint names created by the migrations.
const (
	usersEmailKey    = "users_email_key"
	usersUsernameKey = "users_username_key"
)

const pgUniqueViolation = "23505"

// BaseRepository holds the pool shared by all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// uniqueViolation returns the violated constraint name, or "" when err is not a unique violation.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

func mapUserConstraint(err error) error {
	constraint, ok := uniqueViolation(err)
	if !ok {
		return err
	}
	switch constraint {
	case usersEmailKey:
		return apperrors.ErrEmailAlreadyExists
	case usersUsernameKey:
		return apperrors.ErrUsernameExists
	default:
		return apperrors.ErrDuplicate
	}
}
