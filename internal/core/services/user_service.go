package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/social_media_app/internal/apperrors"
	"github.com/SscSPs/social_media_app/internal/core/domain"
	portsrepo "github.com/SscSPs/social_media_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/social_media_app/internal/core/ports/services"
)

// userService implements profile reads and updates and the follow graph.
type userService struct {
	BaseService
	userRepo     portsrepo.UserRepository
	followerRepo portsrepo.FollowerRepository
	now          func() time.Time
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepository, followerRepo portsrepo.FollowerRepository, tracker portssvc.EventTracker) portssvc.UserSvcFacade {
	return &userService{
		BaseService:  BaseService{Tracker: tracker},
		userRepo:     userRepo,
		followerRepo: followerRepo,
		now:          time.Now,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetMe(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by username", slog.String("username", username))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateMe(ctx context.Context, userID string, in portssvc.UpdateMeInput) (*domain.User, error) {
	if in.Username != nil {
		existing, err := s.userRepo.FindUserByUsername(ctx, *in.Username)
		switch {
		case err == nil && existing.UserID != userID:
			return nil, apperrors.ErrUsernameExists
		case err != nil && !errors.Is(err, apperrors.ErrNotFound):
			s.LogError(ctx, err, "Failed to check username availability", slog.String("user_id", userID))
			return nil, fmt.Errorf("failed to check username availability: %w", err)
		}
	}

	patch := domain.UserPatch{
		Name:        in.Name,
		DateOfBirth: in.DateOfBirth,
		Bio:         in.Bio,
		Location:    in.Location,
		Website:     in.Website,
		Username:    in.Username,
		Avatar:      in.Avatar,
		CoverPhoto:  in.CoverPhoto,
		UpdatedAt:   s.now(),
	}
	if err := s.userRepo.UpdateUser(ctx, userID, patch); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Profile updated", slog.String("user_id", userID))
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) Follow(ctx context.Context, userID, followedUserID string) error {
	if userID == followedUserID {
		return fmt.Errorf("%w: cannot follow yourself", apperrors.ErrValidation)
	}
	if _, err := s.userRepo.FindUserByID(ctx, followedUserID); err != nil {
		return err
	}

	follower := domain.Follower{
		UserID:         userID,
		FollowedUserID: followedUserID,
		CreatedAt:      s.now(),
	}
	if err := s.followerRepo.InsertFollower(ctx, follower); err != nil {
		s.LogError(ctx, err, "Failed to insert follower", slog.String("user_id", userID), slog.String("followed_user_id", followedUserID))
		return err
	}

	s.Track(ctx, userID, "user_followed", map[string]any{"followed_user_id": followedUserID})
	return nil
}

func (s *userService) Unfollow(ctx context.Context, userID, followedUserID string) error {
	deleted, err := s.followerRepo.DeleteFollower(ctx, userID, followedUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete follower", slog.String("user_id", userID), slog.String("followed_user_id", followedUserID))
		return err
	}
	if deleted {
		s.Track(ctx, userID, "user_unfollowed", map[string]any{"followed_user_id": followedUserID})
	}
	return nil
}
