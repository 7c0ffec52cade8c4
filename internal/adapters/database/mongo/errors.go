package mongo

import (
	"errors"
	"strings"

	"github.com/SscSPs/social_media_app/internal/apperrors"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// duplicateKeyError maps a duplicate key error on a users index to the matching domain error.
func duplicateKeyError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	msg := err.Error()
	var we mongo.WriteException
	if errors.As(err, &we) && len(we.WriteErrors) > 0 {
		msg = we.WriteErrors[0].Message
	}
	switch {
	case strings.Contains(msg, usersEmailIndex):
		return apperrors.ErrEmailAlreadyExists
	case strings.Contains(msg, usersUsernameIndex):
		return apperrors.ErrUsernameExists
	default:
		return apperrors.ErrDuplicate
	}
}
