package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/social_media_app/internal/apperrors"
	"github.com/SscSPs/social_media_app/internal/core/domain"
	portsrepo "github.com/SscSPs/social_media_app/internal/core/ports/repositories"
)

var _ portsrepo.FollowerRepository = (*FollowerRepository)(nil)

type followerKey struct {
	userID         string
	followedUserID string
}

// FollowerRepository keeps follow edges in process memory.
type FollowerRepository struct {
	edges map[followerKey]domain.Follower
	lock  sync.RWMutex
}

func NewFollowerRepository() *FollowerRepository {
	return &FollowerRepository{
		edges: make(map[followerKey]domain.Follower),
	}
}

func (r *FollowerRepository) InsertFollower(_ context.Context, follower domain.Follower) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	key := followerKey{follower.UserID, follower.FollowedUserID}
	if _, ok := r.edges[key]; !ok {
		r.edges[key] = follower
	}
	return nil
}

func (r *FollowerRepository) DeleteFollower(_ context.Context, userID, followedUserID string) (bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	key := followerKey{userID, followedUserID}
	if _, ok := r.edges[key]; !ok {
		return false, nil
	}
	delete(r.edges, key)
	return true, nil
}

func (r *FollowerRepository) FindFollower(_ context.Context, userID, followedUserID string) (*domain.Follower, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	f, ok := r.edges[followerKey{userID, followedUserID}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &f, nil
}
