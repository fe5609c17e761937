package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"

	"eventhub/internal/model"
)

type Mailer struct {
	host     string
	addr     string
	from     string
	password string
	log      *zerolog.Logger
}

func New(host, port, from, password string, log *zerolog.Logger) *Mailer {
	return &Mailer{
		host:     host,
		addr:     host + ":" + port,
		from:     from,
		password: password,
		log:      log,
	}
}

// Send delivers one notification to the recipient address. The subject is
// derived from the notification type; the body is the recorded message.
func (m *Mailer) Send(n *model.Notification, recipientEmail string) error {
	var subject string
	switch n.Type {
	case model.NotificationTypeConfirmation:
		subject = "Registration confirmed"
	case model.NotificationTypeReminder:
		subject = "Event reminder"
	case model.NotificationTypeUpdate:
		subject = "Event updated"
	default:
		subject = "Notification"
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.from, recipientEmail, subject, n.Message,
	)

	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	if err := smtp.SendMail(m.addr, auth, m.from, []string{recipientEmail}, []byte(msg)); err != nil {
		m.log.Warn().Msgf("failed to send email to %s: %v", recipientEmail, err)
		return fmt.Errorf("send email: %w", err)
	}

	m.log.Info().Msgf("email sent to %s (type: %s)", recipientEmail, n.Type)
	return nil
}
