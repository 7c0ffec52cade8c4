package services

import (
	"context"
	"log/slog"

	portssvc "github.com/SscSPs/social_media_app/internal/core/ports/services"
	"github.com/SscSPs/social_media_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Tracker portssvc.EventTracker
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Track records an auth event when a tracker is configured.
func (s *BaseService) Track(ctx context.Context, userID, event string, props map[string]any) {
	if s.Tracker == nil {
		return
	}
	s.Tracker.Track(ctx, userID, event, props)
}

// multiTracker fans an event out to several trackers.
type multiTracker []portssvc.EventTracker

// NewMultiTracker combines trackers; nil entries are skipped.
func NewMultiTracker(trackers ...portssvc.EventTracker) portssvc.EventTracker {
	var out multiTracker
	for _, t := range trackers {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

func (m multiTracker) Track(ctx context.Context, userID, event string, props map[string]any) {
	for _, t := range m {
		t.Track(ctx, userID, event, props)
	}
}
