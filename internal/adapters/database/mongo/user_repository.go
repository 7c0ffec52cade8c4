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

// MongoUserRepository stores users as documents keyed by user id.
type MongoUserRepository struct {
	coll *mongo.Collection
}

func newMongoUserRepository(coll *mongo.Collection) portsrepo.UserRepository {
	return &MongoUserRepository{coll: coll}
}

var _ portsrepo.UserRepository = (*MongoUserRepository)(nil)

func (r *MongoUserRepository) InsertUser(ctx context.Context, user domain.User) error {
	if _, err := r.coll.InsertOne(ctx, mapping.ToModelUser(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateKeyError(err)
		}
		return fmt.Errorf("failed to insert user %s: %w", user.UserID, err)
	}
	return nil
}

func (r *MongoUserRepository) UpdateUser(ctx context.Context, userID string, patch domain.UserPatch) error {
	set := userPatchToSet(patch)
	if len(set) == 0 {
		return nil
	}
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: userID}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateKeyError(err)
		}
		return fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: userID}})
}

func (r *MongoUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *MongoUserRepository) FindUserByEmailAndPassword(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}, {Key: "password", Value: passwordHash}})
}

func (r *MongoUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.D) (*domain.User, error) {
	var m models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

// userPatchToSet builds the $set document for the non-nil fields of the patch.
func userPatchToSet(p domain.UserPatch) bson.D {
	var set bson.D
	add := func(key string, value any) {
		set = append(set, bson.E{Key: key, Value: value})
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.DateOfBirth != nil {
		add("date_of_birth", *p.DateOfBirth)
	}
	if p.PasswordHash != nil {
		add("password", *p.PasswordHash)
	}
	if p.EmailVerifyToken != nil {
		add("email_verify_token", *p.EmailVerifyToken)
	}
	if p.ForgotPasswordToken != nil {
		add("forgot_password_token", *p.ForgotPasswordToken)
	}
	if p.Verify != nil {
		add("verify", int(*p.Verify))
	}
	if p.Username != nil {
		add("username", *p.Username)
	}
	if p.Bio != nil {
		add("bio", *p.Bio)
	}
	if p.Location != nil {
		add("location", *p.Location)
	}
	if p.Website != nil {
		add("website", *p.Website)
	}
	if p.Avatar != nil {
		add("avatar", *p.Avatar)
	}
	if p.CoverPhoto != nil {
		add("cover_photo", *p.CoverPhoto)
	}
	if !p.UpdatedAt.IsZero() {
		add("updated_at", p.UpdatedAt)
	}
	return set
}
