// Package mailer wraps the SMTP delivery of schedule emails. Messages carry
// a text part, an HTML alternative and any number of byte attachments
// (calendar files, summaries).
package mailer

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/config"
)

// Attachment is an in-memory file added to an outgoing message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is one outbound email.
type Message struct {
	To          string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Sender delivers messages. Satisfied by Mailer; services depend on the
// interface so tests can capture outgoing mail.
type Sender interface {
	Send(msg Message) error
}

// Mailer sends through a configured SMTP relay.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New builds a mailer from SMTP settings.
func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send composes and delivers one message.
func (m *Mailer) Send(msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("message has no recipient")
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		gm.AddAlternative("text/html", msg.HTML)
	}

	for _, att := range msg.Attachments {
		content := att.Content
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
		}
		if att.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}))
		}
		gm.Attach(att.Filename, settings...)
	}

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}
	return nil
}
