package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
)

var emailTemplate = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #f4f4f7; padding: 24px;">
  <div style="max-width: 480px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
    <h2 style="margin-top: 0;">{{.Title}}</h2>
    <p>{{.Content}}</p>
    <p style="text-align: center; margin: 32px 0;">
      <a href="{{.Link}}" style="background: #1d9bf0; color: #ffffff; padding: 12px 24px; border-radius: 24px; text-decoration: none;">{{.LinkTitle}}</a>
    </p>
    <p style="font-size: 12px; color: #888888;">If you did not request this email you can ignore it.</p>
  </div>
</body>
</html>
`))

type emailContent struct {
	Title     string
	Content   string
	Link      string
	LinkTitle string
}

// Message is a rendered email ready for a transport.
type Message struct {
	To      string
	Subject string
	HTML    string
	// Link is the action link embedded in HTML.
	Link string
}

// renderMessage builds the verification or password reset email for token.
func renderMessage(clientURL, toEmail, token string, isPasswordReset bool) (Message, error) {
	path, subject := "verify-email", "Verify your email"
	content := emailContent{
		Title:     "Verify your email",
		Content:   "Click the button below to verify your account.",
		LinkTitle: "Verify now",
	}
	if isPasswordReset {
		path, subject = "reset-password", "Reset your password"
		content = emailContent{
			Title:     "Reset your password",
			Content:   "Click the button below to reset your password.",
			LinkTitle: "Reset password",
		}
	}
	content.Link = fmt.Sprintf("%s/%s?token=%s", clientURL, path, url.QueryEscape(token))

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, content); err != nil {
		return Message{}, fmt.Errorf("failed to render email: %w", err)
	}
	return Message{To: toEmail, Subject: subject, HTML: buf.String(), Link: content.Link}, nil
}
