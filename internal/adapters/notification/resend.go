package notification

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendTransport sends mail through the Resend HTTP API.
type ResendTransport struct {
	client *resend.Client
	from   string
}

func NewResendTransport(apiKey, from string) *ResendTransport {
	return &ResendTransport{client: resend.NewClient(apiKey), from: from}
}

func (t *ResendTransport) Deliver(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    t.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if _, err := t.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	return nil
}
