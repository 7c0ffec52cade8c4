package notification

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTPTransport sends mail through an authenticated SMTP relay.
type SMTPTransport struct {
	client *mail.Client
	from   string
}

func NewSMTPTransport(host string, port int, username, password, from string) (*SMTPTransport, error) {
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}
	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return &SMTPTransport{client: client, from: from}, nil
}

func (t *SMTPTransport) Deliver(ctx context.Context, msg Message) error {
	m := mail.NewMsg()
	if err := m.From(t.from); err != nil {
		return fmt.Errorf("invalid sender %q: %w", t.from, err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	if err := t.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
