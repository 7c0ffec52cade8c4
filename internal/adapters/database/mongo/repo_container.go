// Package mongo implements the credential store on MongoDB.
package mongo

import (
	"context"

	portsrepo "github.com/SscSPs/social_media_app/internal/core/ports/repositories"
	"github.com/SscSPs/social_media_app/internal/platform/config"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Collections groups the collections used by the repositories.
type Collections struct {
	Users         *mongo.Collection
	RefreshTokens *mongo.Collection
	Followers     *mongo.Collection
}

// NewCollections resolves the configured collection names in the database.
func NewCollections(client *mongo.Client, cfg *config.Config) Collections {
	db := client.Database(cfg.DBName)
	return Collections{
		Users:         db.Collection(cfg.UsersCollection),
		RefreshTokens: db.Collection(cfg.RefreshTokensCollection),
		Followers:     db.Collection(cfg.FollowersCollection),
	}
}

// NewRepositoryProvider ensures indexes exist and returns the Mongo-backed repositories.
func NewRepositoryProvider(ctx context.Context, client *mongo.Client, cfg *config.Config) (portsrepo.RepositoryProvider, error) {
	c := NewCollections(client, cfg)
	if err := EnsureIndexes(ctx, c); err != nil {
		return portsrepo.RepositoryProvider{}, err
	}
	return portsrepo.RepositoryProvider{
		UserRepo:         newMongoUserRepository(c.Users),
		RefreshTokenRepo: newMongoRefreshTokenRepository(c.RefreshTokens),
		FollowerRepo:     newMongoFollowerRepository(c.Followers),
	}, nil
}
