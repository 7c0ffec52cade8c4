package memory

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/social_media_app/internal/apperrors"
	"github.com/SscSPs/social_media_app/internal/core/domain"
	portsrepo "github.com/SscSPs/social_media_app/internal/core/ports/repositories"
)

var _ portsrepo.RefreshTokenRepository = (*RefreshTokenRepository)(nil)

// RefreshTokenRepository keeps refresh token records in process memory, keyed by token.
type RefreshTokenRepository struct {
	tokens map[string]domain.RefreshTokenRecord
	lock   sync.RWMutex
}

func NewRefreshTokenRepository() *RefreshTokenRepository {
	return &RefreshTokenRepository{
		tokens: make(map[string]domain.RefreshTokenRecord),
	}
}

func (r *RefreshTokenRepository) InsertRefreshToken(_ context.Context, token domain.RefreshTokenRecord) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.tokens[token.Token]; ok {
		return apperrors.ErrDuplicate
	}
	r.tokens[token.Token] = token
	return nil
}

func (r *RefreshTokenRepository) FindRefreshToken(_ context.Context, token string) (*domain.RefreshTokenRecord, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	rt, ok := r.tokens[token]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &rt, nil
}

// DeleteRefreshToken is atomic, so of two concurrent deletes of the same token only one reports true.
func (r *RefreshTokenRepository) DeleteRefreshToken(_ context.Context, token string) (bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.tokens[token]; !ok {
		return false, nil
	}
	delete(r.tokens, token)
	return true, nil
}

func (r *RefreshTokenRepository) DeleteRefreshTokensByUserID(_ context.Context, userID string) (int64, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	var n int64
	for k, rt := range r.tokens {
		if rt.UserID == userID {
			delete(r.tokens, k)
			n++
		}
	}
	return n, nil
}

func (r *RefreshTokenRepository) DeleteExpiredRefreshTokens(_ context.Context, before time.Time) (int64, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	var n int64
	for k, rt := range r.tokens {
		if rt.Expired(before) {
			delete(r.tokens, k)
			n++
		}
	}
	return n, nil
}

// Count returns the number of stored records.
func (r *RefreshTokenRepository) Count() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.tokens)
}
