package mongo

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
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoRefreshTokenRepository stores refresh tokens; the TTL index on exp purges expired ones.
type MongoRefreshTokenRepository struct {
	coll *mongo.Collection
}

func newMongoRefreshTokenRepository(coll *mongo.Collection) portsrepo.RefreshTokenRepository {
	return &MongoRefreshTokenRepository{coll: coll}
}

var _ portsrepo.RefreshTokenRepository = (*MongoRefreshTokenRepository)(nil)

func (r *MongoRefreshTokenRepository) InsertRefreshToken(ctx context.Context, token domain.RefreshTokenRecord) error {
	if _, err := r.coll.InsertOne(ctx, mapping.ToModelRefreshToken(token)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert refresh token: %w", err)
	}
	return nil
}

func (r *MongoRefreshTokenRepository) FindRefreshToken(ctx context.Context, token string) (*domain.RefreshTokenRecord, error) {
	var m models.RefreshToken
	if err := r.coll.FindOne(ctx, bson.D{{Key: "token", Value: token}}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}
	rt := mapping.ToDomainRefreshToken(m)
	return &rt, nil
}

func (r *MongoRefreshTokenRepository) DeleteRefreshToken(ctx context.Context, token string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "token", Value: token}})
	if err != nil {
		return false, fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoRefreshTokenRepository) DeleteRefreshTokensByUserID(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: "user_id", Value: userID}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete refresh tokens of user %s: %w", userID, err)
	}
	return res.DeletedCount, nil
}

func (r *MongoRefreshTokenRepository) DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: "exp", Value: bson.D{{Key: "$lte", Value: before}}}})
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired refresh tokens: %w", err)
	}
	return res.DeletedCount, nil
}
