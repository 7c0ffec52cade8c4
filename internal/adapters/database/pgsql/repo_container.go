package pgsql

import (
	portsrepo "github.com/SscSPs/social_media_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	refreshTokenRepo := newPgxRefreshTokenRepository(dbPool)
	followerRepo := newPgxFollowerRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:         userRepo,
		RefreshTokenRepo: refreshTokenRepo,
		FollowerRepo:     followerRepo,
	}
}
