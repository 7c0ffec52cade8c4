package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/social_media_app/internal/apperrors"
	"github.com/SscSPs/social_media_app/internal/core/domain"
	portsrepo "github.com/SscSPs/social_media_app/internal/core/ports/repositories"
	"github.com/SscSPs/social_media_app/internal/models"
	"github.com/SscSPs/social_media_app/internal/utils/mapping"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type MongoFollowerRepository struct {
	coll *mongo.Collection
}

func newMongoFollowerRepository(coll *mongo.Collection) portsrepo.FollowerRepository {
	return &MongoFollowerRepository{coll: coll}
}

var _ portsrepo.FollowerRepository = (*MongoFollowerRepository)(nil)

func pairFilter(userID, followedUserID string) bson.D {
	return bson.D{{Key: "user_id", Value: userID}, {Key: "followed_user_id", Value: followedUserID}}
}

// InsertFollower relies on the unique pair index; an existing edge is not an error.
func (r *MongoFollowerRepository) InsertFollower(ctx context.Context, follower domain.Follower) error {
	if _, err := r.coll.InsertOne(ctx, mapping.ToModelFollower(follower)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to insert follower: %w", err)
	}
	return nil
}

func (r *MongoFollowerRepository) DeleteFollower(ctx context.Context, userID, followedUserID string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, pairFilter(userID, followedUserID))
	if err != nil {
		return false, fmt.Errorf("failed to delete follower: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoFollowerRepository) FindFollower(ctx context.Context, userID, followedUserID string) (*domain.Follower, error) {
	var m models.Follower
	if err := r.coll.FindOne(ctx, pairFilter(userID, followedUserID)).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find follower: %w", err)
	}
	f := mapping.ToDomainFollower(m)
	return &f, nil
}
