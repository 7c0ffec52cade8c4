package notification

import (
	"context"
	"log/slog"

	"github.com/SscSPs/social_media_app/internal/middleware"
)

// LogTransport writes the action link to the request logger instead of sending mail.
// Meant for local development.
type LogTransport struct{}

func (LogTransport) Deliver(ctx context.Context, msg Message) error {
	middleware.GetLoggerFromCtx(ctx).Info("Email not sent, log provider configured",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("link", msg.Link))
	return nil
}
