package contact

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/pkg/errors"
)

// SMTPMailer sends contact messages through an authenticated SMTP relay.
type SMTPMailer struct {
	Host string
	Port string
	User string
	Pass string
	To   string

	// send is smtp.SendMail; replaced in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer returns a mailer. to defaults to the SMTP user.
func NewSMTPMailer(host, port, user, pass, to string) *SMTPMailer {
	if to == "" {
		to = user
	}
	return &SMTPMailer{Host: host, Port: port, User: user, Pass: pass, To: to, send: smtp.SendMail}
}

// Send implements Mailer. net/smtp has no context support; ctx is only
// checked before dialing.
func (m *SMTPMailer) Send(ctx context.Context, s Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.User == "" || m.Pass == "" {
		return errors.New("SMTP credentials not configured")
	}

	auth := smtp.PlainAuth("", m.User, m.Pass, m.Host)
	if err := m.send(m.Host+":"+m.Port, auth, m.User, []string{m.To}, m.compose(s)); err != nil {
		return errors.Wrapf(err, "smtp send via %s", m.Host)
	}
	return nil
}

func (m *SMTPMailer) compose(s Submission) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerSafe(s.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, s.Name, s.Email, s.Message)

	return []byte("To: " + m.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.User + "\r\n" +
		"Reply-To: " + headerSafe(s.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

var headerReplacer = strings.NewReplacer("\r", " ", "\n", " ")

func headerSafe(v string) string {
	return headerReplacer.Replace(v)
}
