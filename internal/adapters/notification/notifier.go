// Package notification delivers verification and password reset emails.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/social_media_app/internal/apperrors"
	portssvc "github.com/SscSPs/social_media_app/internal/core/ports/services"
	"github.com/SscSPs/social_media_app/internal/middleware"
	"github.com/SscSPs/social_media_app/internal/platform/config"
)

// Transport sends a rendered message.
type Transport interface {
	Deliver(ctx context.Context, msg Message) error
}

// EmailNotifier renders emails and hands them to a Transport.
type EmailNotifier struct {
	transport Transport
	clientURL string
	timeout   time.Duration
}

var _ portssvc.NotificationSink = (*EmailNotifier)(nil)

func NewEmailNotifier(transport Transport, clientURL string, timeout time.Duration) *EmailNotifier {
	return &EmailNotifier{transport: transport, clientURL: clientURL, timeout: timeout}
}

// NewFromConfig selects the transport named by EMAIL_PROVIDER.
func NewFromConfig(cfg *config.Config) (*EmailNotifier, error) {
	var transport Transport
	switch cfg.EmailProvider {
	case config.EmailSMTP:
		t, err := NewSMTPTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
		if err != nil {
			return nil, err
		}
		transport = t
	case config.EmailResend:
		transport = NewResendTransport(cfg.ResendAPIKey, cfg.EmailFrom)
	case config.EmailLog, "":
		transport = LogTransport{}
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.EmailProvider)
	}
	return NewEmailNotifier(transport, cfg.ClientURL, cfg.NotificationTimeout), nil
}

func (n *EmailNotifier) Send(ctx context.Context, toEmail, token string, isPasswordReset bool) error {
	msg, err := renderMessage(n.clientURL, toEmail, token, isPasswordReset)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrNotificationDeliveryFailed, err)
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	if err := n.transport.Deliver(ctx, msg); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to deliver email",
			slog.String("error", err.Error()),
			slog.Bool("password_reset", isPasswordReset))
		return fmt.Errorf("%w: %w", apperrors.ErrNotificationDeliveryFailed, err)
	}
	return nil
}
