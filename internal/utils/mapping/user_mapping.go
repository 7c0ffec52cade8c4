package mapping

import (
	"github.com/SscSPs/social_media_app/internal/core/domain"
	"github.com/SscSPs/social_media_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:              d.UserID,
		Name:                d.Name,
		Email:               d.Email,
		DateOfBirth:         d.DateOfBirth,
		Password:            d.PasswordHash,
		EmailVerifyToken:    d.EmailVerifyToken,
		ForgotPasswordToken: d.ForgotPasswordToken,
		Verify:              int(d.Verify),
		Username:            d.Username,
		Bio:                 d.Bio,
		Location:            d.Location,
		Website:             d.Website,
		Avatar:              d.Avatar,
		CoverPhoto:          d.CoverPhoto,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:              m.UserID,
		Name:                m.Name,
		Email:               m.Email,
		DateOfBirth:         m.DateOfBirth,
		PasswordHash:        m.Password,
		EmailVerifyToken:    m.EmailVerifyToken,
		ForgotPasswordToken: m.ForgotPasswordToken,
		Verify:              domain.UserVerifyStatus(m.Verify),
		Username:            m.Username,
		Bio:                 m.Bio,
		Location:            m.Location,
		Website:             m.Website,
		Avatar:              m.Avatar,
		CoverPhoto:          m.CoverPhoto,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}
