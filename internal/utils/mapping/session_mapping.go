package mapping

import (
	"github.com/SscSPs/social_media_app/internal/core/domain"
	"github.com/SscSPs/social_media_app/internal/models"
)

func ToModelRefreshToken(d domain.RefreshTokenRecord) models.RefreshToken {
	return models.RefreshToken{
		Token:     d.Token,
		UserID:    d.UserID,
		Verify:    int(d.Verify),
		Iat:       d.IssuedAt,
		Exp:       d.ExpiresAt,
		CreatedAt: d.CreatedAt,
	}
}

func ToDomainRefreshToken(m models.RefreshToken) domain.RefreshTokenRecord {
	return domain.RefreshTokenRecord{
		Token:     m.Token,
		UserID:    m.UserID,
		Verify:    domain.UserVerifyStatus(m.Verify),
		IssuedAt:  m.Iat,
		ExpiresAt: m.Exp,
		CreatedAt: m.CreatedAt,
	}
}

func ToModelFollower(d domain.Follower) models.Follower {
	return models.Follower{
		UserID:         d.UserID,
		FollowedUserID: d.FollowedUserID,
		CreatedAt:      d.CreatedAt,
	}
}

func ToDomainFollower(m models.Follower) domain.Follower {
	return domain.Follower{
		UserID:         m.UserID,
		FollowedUserID: m.FollowedUserID,
		CreatedAt:      m.CreatedAt,
	}
}
