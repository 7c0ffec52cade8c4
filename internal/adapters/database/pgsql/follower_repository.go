package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/social_media_app/internal/apperrors"
	"github.com/SscSPs/social_media_app/internal/core/domain"
	portsrepo "github.com/SscSPs/social_media_app/internal/core/ports/repositories"
	"github.com/SscSPs/social_media_app/internal/models"
	"github.com/SscSPs/social_media_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFollowerRepository struct {
	BaseRepository
}

func newPgxFollowerRepository(db *pgxpool.Pool) portsrepo.FollowerRepository {
	return &PgxFollowerRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.FollowerRepository = (*PgxFollowerRepository)(nil)

func (r *PgxFollowerRepository) InsertFollower(ctx context.Context, follower domain.Follower) error {
	m := mapping.ToModelFollower(follower)
	query := `
        INSERT INTO followers (user_id, followed_user_id, created_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, followed_user_id) DO NOTHING;
    `
	if _, err := r.Pool.Exec(ctx, query, m.UserID, m.FollowedUserID, m.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert follower: %w", err)
	}
	return nil
}

func (r *PgxFollowerRepository) DeleteFollower(ctx context.Context, userID, followedUserID string) (bool, error) {
	cmdTag, err := r.Pool.Exec(ctx,
		`DELETE FROM followers WHERE user_id = $1 AND followed_user_id = $2;`,
		userID, followedUserID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete follower: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *PgxFollowerRepository) FindFollower(ctx context.Context, userID, followedUserID string) (*domain.Follower, error) {
	query := `
        SELECT user_id, followed_user_id, created_at
        FROM followers
        WHERE user_id = $1 AND followed_user_id = $2;
    `
	var m models.Follower
	if err := r.Pool.QueryRow(ctx, query, userID, followedUserID).Scan(&m.UserID, &m.FollowedUserID, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find follower: %w", err)
	}
	f := mapping.ToDomainFollower(m)
	return &f, nil
}
