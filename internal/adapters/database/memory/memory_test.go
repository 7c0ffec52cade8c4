package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/social_media_app/internal/apperrors"
	"github.com/SscSPs/social_media_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_UniqueConstraints(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.InsertUser(ctx, domain.User{UserID: "1", Email: "a@x.io", Username: "alice"}))

	err := repo.InsertUser(ctx, domain.User{UserID: "2", Email: "a@x.io", Username: "other"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	err = repo.InsertUser(ctx, domain.User{UserID: "3", Email: "b@x.io", Username: "alice"})
	assert.ErrorIs(t, err, apperrors.ErrUsernameExists)
}

func TestUserRepository_FindUserByEmailAndPassword(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.InsertUser(ctx, domain.User{UserID: "1", Email: "a@x.io", Username: "alice", PasswordHash: "h1"}))

	u, err := repo.FindUserByEmailAndPassword(ctx, "a@x.io", "h1")
	require.NoError(t, err)
	assert.Equal(t, "1", u.UserID)

	_, err = repo.FindUserByEmailAndPassword(ctx, "a@x.io", "h2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = repo.FindUserByEmailAndPassword(ctx, "nobody@x.io", "h1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserRepository_UpdateUserMovesUsername(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.InsertUser(ctx, domain.User{UserID: "1", Email: "a@x.io", Username: "alice"}))
	require.NoError(t, repo.InsertUser(ctx, domain.User{UserID: "2", Email: "b@x.io", Username: "bob"}))

	taken := "bob"
	assert.ErrorIs(t, repo.UpdateUser(ctx, "1", domain.UserPatch{Username: &taken}), apperrors.ErrUsernameExists)

	renamed := "alice2"
	require.NoError(t, repo.UpdateUser(ctx, "1", domain.UserPatch{Username: &renamed}))

	_, err := repo.FindUserByUsername(ctx, "alice")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	u, err := repo.FindUserByUsername(ctx, "alice2")
	require.NoError(t, err)
	assert.Equal(t, "1", u.UserID)

	assert.ErrorIs(t, repo.UpdateUser(ctx, "missing", domain.UserPatch{}), apperrors.ErrUserNotFound)
}

func TestRefreshTokenRepository_ConcurrentDeleteHasOneWinner(t *testing.T) {
	ctx := context.Background()
	repo := NewRefreshTokenRepository()
	require.NoError(t, repo.InsertRefreshToken(ctx, domain.RefreshTokenRecord{Token: "t", UserID: "u"}))

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.DeleteRefreshToken(ctx, "t")
			if err == nil && ok {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
	assert.Equal(t, 0, repo.Count())
}

func TestRefreshTokenRepository_Purges(t *testing.T) {
	ctx := context.Background()
	repo := NewRefreshTokenRepository()
	now := time.Now()

	require.NoError(t, repo.InsertRefreshToken(ctx, domain.RefreshTokenRecord{Token: "old", UserID: "u1", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, repo.InsertRefreshToken(ctx, domain.RefreshTokenRecord{Token: "live", UserID: "u1", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.InsertRefreshToken(ctx, domain.RefreshTokenRecord{Token: "other", UserID: "u2", ExpiresAt: now.Add(time.Hour)}))
	assert.ErrorIs(t, repo.InsertRefreshToken(ctx, domain.RefreshTokenRecord{Token: "live"}), apperrors.ErrDuplicate)

	n, err := repo.DeleteExpiredRefreshTokens(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.DeleteRefreshTokensByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.FindRefreshToken(ctx, "other")
	assert.NoError(t, err)
	_, err = repo.FindRefreshToken(ctx, "live")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFollowerRepository_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewFollowerRepository()

	require.NoError(t, repo.InsertFollower(ctx, domain.Follower{UserID: "a", FollowedUserID: "b"}))
	require.NoError(t, repo.InsertFollower(ctx, domain.Follower{UserID: "a", FollowedUserID: "b"}))

	_, err := repo.FindFollower(ctx, "a", "b")
	require.NoError(t, err)

	deleted, err := repo.DeleteFollower(ctx, "a", "b")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteFollower(ctx, "a", "b")
	require.NoError(t, err)
	assert.False(t, deleted)
}
