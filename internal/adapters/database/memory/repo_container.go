// Package memory is an in-process credential store for development and tests.
// Data is lost when the process exits.
package memory

import portsrepo "github.com/SscSPs/social_media_app/internal/core/ports/repositories"

// NewRepositoryProvider creates a provider backed by fresh in-memory repositories.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         NewUserRepository(),
		RefreshTokenRepo: NewRefreshTokenRepository(),
		FollowerRepo:     NewFollowerRepository(),
	}
}
