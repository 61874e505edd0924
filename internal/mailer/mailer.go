// Package mailer sends transactional e-mail over SMTP.
package mailer

import (
	"fmt"
	"log"

	"github.com/wneessen/go-mail"
)

// Mailer wraps the SMTP settings needed to send storefront e-mail. A nil
// Mailer is valid and means e-mail is not configured.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// New returns a Mailer, or nil when no SMTP host is configured.
func New(host string, port int, username, password, from string) *Mailer {
	if host == "" {
		log.Println("[MAIL] [INFO] SMTP_HOST not set, mail disabled")
		return nil
	}
	return &Mailer{host: host, port: port, username: username, password: password, from: from}
}

// SendPasswordReset mails a reset link to the given address.
func (m *Mailer) SendPasswordReset(to, resetURL string) error {
	msg := mail.NewMsg()

	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Reset your password")
	msg.SetBodyString(mail.TypeTextHTML, passwordResetHTML(resetURL))

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("[MAIL] [INFO] sending password reset mail to", to)
	return client.DialAndSend(msg)
}

func passwordResetHTML(resetURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Password reset</h2>
		<p>We received a request to reset your password. Click the link below to choose a new one.</p>
		<p><a href="%s">Reset password</a></p>
		<p>If you did not request this, you can ignore this e-mail.</p>
	</div>
</body>
</html>`, resetURL)
}
