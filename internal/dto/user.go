package dto

import (
	"time"

	"github.com/SscSPs/social_media_app/internal/core/domain"
	"github.com/SscSPs/social_media_app/internal/validation"
)

// UpdateMeRequest defines the profile fields a user may change.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateMeRequest struct {
	Name        *string `json:"name"`
	DateOfBirth *string `json:"date_of_birth"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
	Website     *string `json:"website"`
	Username    *string `json:"username"`
	Avatar      *string `json:"avatar"`
	CoverPhoto  *string `json:"cover_photo"`
}

func (r UpdateMeRequest) ToValidationInput() validation.UpdateMeInput {
	return validation.UpdateMeInput{
		Name:        r.Name,
		DateOfBirth: r.DateOfBirth,
		Bio:         r.Bio,
		Location:    r.Location,
		Website:     r.Website,
		Username:    r.Username,
		Avatar:      r.Avatar,
		CoverPhoto:  r.CoverPhoto,
	}
}

type FollowRequest struct {
	FollowedUserID string `json:"followed_user_id"`
}

// UserResponse is the authenticated user's own view of their account.
type UserResponse struct {
	UserID      string    `json:"_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Verify      int       `json:"verify"`
	Username    string    `json:"username"`
	Bio         string    `json:"bio"`
	Location    string    `json:"location"`
	Website     string    `json:"website"`
	Avatar      string    `json:"avatar"`
	CoverPhoto  string    `json:"cover_photo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		Name:        u.Name,
		Email:       u.Email,
		DateOfBirth: u.DateOfBirth,
		Verify:      int(u.Verify),
		Username:    u.Username,
		Bio:         u.Bio,
		Location:    u.Location,
		Website:     u.Website,
		Avatar:      u.Avatar,
		CoverPhoto:  u.CoverPhoto,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ProfileResponse is the public view of a user; email and status are omitted.
type ProfileResponse struct {
	UserID     string    `json:"_id"`
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	Bio        string    `json:"bio"`
	Location   string    `json:"location"`
	Website    string    `json:"website"`
	Avatar     string    `json:"avatar"`
	CoverPhoto string    `json:"cover_photo"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToProfileResponse(u *domain.User) ProfileResponse {
	return ProfileResponse{
		UserID:     u.UserID,
		Name:       u.Name,
		Username:   u.Username,
		Bio:        u.Bio,
		Location:   u.Location,
		Website:    u.Website,
		Avatar:     u.Avatar,
		CoverPhoto: u.CoverPhoto,
		CreatedAt:  u.CreatedAt,
	}
}
