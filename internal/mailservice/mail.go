package mailservice

import (
	"strings"
	"time"

	"github.com/go-mail/mail/v2"
)

const (
	dialTimeout = 5 * time.Second
	senderName  = "Blog Notifications"
)

// NewMailer returns a Mail that renders tp templates and delivers through the SMTP server at host:port.
func NewMailer(host string, port int, username, password, sender string, tp TemplateParser) *Mail {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = dialTimeout

	return &Mail{
		dialer: dialer,
		sender: sender,
		parser: tp,
	}
}

func (m *Mail) send(recipient string, data any, templateFile string) error {
	subject, plainBody, htmlBody, err := m.parser.ParseTemplate(templateFile, data)
	if err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetAddressHeader("From", m.sender, senderName)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", strings.TrimSpace(subject.String()))
	msg.SetDateHeader("Date", time.Now())
	msg.SetBody("text/plain", plainBody.String())
	msg.AddAlternative("text/html", htmlBody.String())

	// one SMTP session at a time
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.dialer.DialAndSend(msg)
}
