package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/social_media_app/internal/apperrors"
	"github.com/SscSPs/social_media_app/internal/core/domain"
	portsrepo "github.com/SscSPs/social_media_app/internal/core/ports/repositories"
	"github.com/SscSPs/social_media_app/internal/models"
	"github.com/SscSPs/social_media_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRefreshTokenRepository struct {
	BaseRepository
}

func newPgxRefreshTokenRepository(db *pgxpool.Pool) portsrepo.RefreshTokenRepository {
	return &PgxRefreshTokenRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.RefreshTokenRepository = (*PgxRefreshTokenRepository)(nil)

func (r *PgxRefreshTokenRepository) InsertRefreshToken(ctx context.Context, token domain.RefreshTokenRecord) error {
	m := mapping.ToModelRefreshToken(token)
	query := `
        INSERT INTO refresh_tokens (token, user_id, verify, iat, exp, created_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	if _, err := r.Pool.Exec(ctx, query, m.Token, m.UserID, m.Verify, m.Iat, m.Exp, m.CreatedAt); err != nil {
		if _, ok := uniqueViolation(err); ok {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert refresh token: %w", err)
	}
	return nil
}

func (r *PgxRefreshTokenRepository) FindRefreshToken(ctx context.Context, token string) (*domain.RefreshTokenRecord, error) {
	query := `
        SELECT token, user_id, verify, iat, exp, created_at
        FROM refresh_tokens
        WHERE token = $1;
    `
	var m models.RefreshToken
	err := r.Pool.QueryRow(ctx, query, token).Scan(&m.Token, &m.UserID, &m.Verify, &m.Iat, &m.Exp, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}
	rt := mapping.ToDomainRefreshToken(m)
	return &rt, nil
}

// DeleteRefreshToken is the single-use guard of rotation: only one concurrent
// caller observes a deleted row.
func (r *PgxRefreshTokenRepository) DeleteRefreshToken(ctx context.Context, token string) (bool, error) {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE token = $1;`, token)
	if err != nil {
		return false, fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *PgxRefreshTokenRepository) DeleteRefreshTokensByUserID(ctx context.Context, userID string) (int64, error) {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1;`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete refresh tokens of user %s: %w", userID, err)
	}
	return cmdTag.RowsAffected(), nil
}

func (r *PgxRefreshTokenRepository) DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) (int64, error) {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE exp <= $1;`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired refresh tokens: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
