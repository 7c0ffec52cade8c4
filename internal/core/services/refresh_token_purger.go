package services

import (
	"context"
	"log/slog"
	"time"

	portsrepo "github.com/SscSPs/social_media_app/internal/core/ports/repositories"
)

// RefreshTokenPurger deletes expired refresh token records on a fixed interval.
// Stores with a native TTL do not need it.
type RefreshTokenPurger struct {
	BaseService
	repo     portsrepo.RefreshTokenRepository
	interval time.Duration
	now      func() time.Time
}

func NewRefreshTokenPurger(repo portsrepo.RefreshTokenRepository, interval time.Duration) *RefreshTokenPurger {
	return &RefreshTokenPurger{repo: repo, interval: interval, now: time.Now}
}

// PurgeOnce removes every record expired at the current time.
func (p *RefreshTokenPurger) PurgeOnce(ctx context.Context) (int64, error) {
	n, err := p.repo.DeleteExpiredRefreshTokens(ctx, p.now())
	if err != nil {
		p.LogError(ctx, err, "Failed to purge expired refresh tokens")
		return 0, err
	}
	if n > 0 {
		p.LogInfo(ctx, "Purged expired refresh tokens", slog.Int64("count", n))
	}
	return n, nil
}

// Run purges until ctx is cancelled.
func (p *RefreshTokenPurger) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = p.PurgeOnce(ctx)
		}
	}
}
