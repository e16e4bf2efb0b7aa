// Package mailer sends transactional email over SMTP with HTML templates.
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
)

// Config holds SMTP connection settings.
type Config struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// Mailer sends rendered messages. The send function is swappable in tests.
type Mailer struct {
	cfg  Config
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// New constructs a Mailer.
func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

// Send delivers a single HTML email.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	if m.cfg.Host == "" {
		return fmt.Errorf("mailer: smtp host not configured")
	}
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}
	return m.send(addr, auth, m.cfg.From, []string{to}, msg.Bytes())
}

// Render substitutes {{.key}} placeholders in an HTML template body.
func Render(body string, data map[string]string) (string, error) {
	tpl, err := template.New("email").Parse(body)
	if err != nil {
		return "", err
	}
	var out strings.Builder
	if err := tpl.Execute(&out, data); err != nil {
		return "", err
	}
	return out.String(), nil
}
