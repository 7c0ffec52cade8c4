package services

import (
	portsrepo "github.com/SscSPs/social_media_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/social_media_app/internal/core/ports/services"
	"github.com/SscSPs/social_media_app/internal/platform/config"
	"github.com/SscSPs/social_media_app/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	notifier portssvc.NotificationSink,
	tracker portssvc.EventTracker,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.TokenCodec = NewTokenCodec(cfg)
	container.Identity = NewGoogleIdentityProvider(cfg)

	container.Session = NewSessionService(
		repos.UserRepo,
		repos.RefreshTokenRepo,
		container.TokenCodec,
		notifier,
		WithPasswordHasher(utils.NewPasswordHasher(cfg.HashPasswordSecret)),
		WithIdentityProvider(container.Identity),
		WithEventTracker(tracker),
		WithSessionRevocationOnPasswordChange(cfg.RevokeSessionsOnPasswordChange),
	)

	container.User = NewUserService(repos.UserRepo, repos.FollowerRepo, tracker)

	return container
}
