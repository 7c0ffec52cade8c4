package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Index names, also used to tell duplicate key errors apart.
const (
	usersEmailIndex         = "users_email_unique"
	usersUsernameIndex      = "users_username_unique"
	usersEmailPasswordIndex = "users_email_password"
	refreshTokenIndex       = "refresh_tokens_token_unique"
	refreshTokenUserIndex   = "refresh_tokens_user_id"
	refreshTokenTTLIndex    = "refresh_tokens_exp_ttl"
	followersPairIndex      = "followers_pair_unique"
)

// EnsureIndexes creates the unique and TTL indexes the repositories rely on.
// Creating an index that already exists is a no-op.
func EnsureIndexes(ctx context.Context, c Collections) error {
	if _, err := c.Users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName(usersEmailIndex).SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetName(usersUsernameIndex).SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "password", Value: 1}}, Options: options.Index().SetName(usersEmailPasswordIndex)},
	}); err != nil {
		return fmt.Errorf("failed to create users indexes: %w", err)
	}

	if _, err := c.RefreshTokens.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetName(refreshTokenIndex).SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetName(refreshTokenUserIndex)},
		// Documents are purged once exp has passed.
		{Keys: bson.D{{Key: "exp", Value: 1}}, Options: options.Index().SetName(refreshTokenTTLIndex).SetExpireAfterSeconds(0)},
	}); err != nil {
		return fmt.Errorf("failed to create refresh_tokens indexes: %w", err)
	}

	if _, err := c.Followers.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "followed_user_id", Value: 1}}, Options: options.Index().SetName(followersPairIndex).SetUnique(true)},
	}); err != nil {
		return fmt.Errorf("failed to create followers indexes: %w", err)
	}
	return nil
}
