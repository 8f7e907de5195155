// Package mailer delivers rendered mails over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/Ki-Sung/weather-email-service/internal/config"
)

var ErrNoRecipients = errors.New("no recipients configured")

const sendTimeout = 30 * time.Second

// Message is one HTML mail.
type Message struct {
	Subject string
	HTML    string
}

type Sender interface {
	// Send delivers msg and returns the number of recipients it was sent to.
	Send(ctx context.Context, msg Message) (int, error)
}

type SMTPSender struct {
	host     string
	port     int
	user     string
	password string
	from     string
	to       []string
	bcc      []string
	logger   *slog.Logger
}

var _ Sender = (*SMTPSender)(nil)

// NewSMTPSender addresses mail to cfg.Recipient with cfg.BCCRecipients as blind
// copies. Either list may be empty, but not both.
func NewSMTPSender(cfg config.Config, logger *slog.Logger) *SMTPSender {
	if logger == nil {
		logger = slog.Default()
	}
	var to []string
	if cfg.Recipient != "" {
		to = []string{cfg.Recipient}
	}
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &SMTPSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     from,
		to:       to,
		bcc:      cfg.BCCRecipients,
		logger:   logger,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) (int, error) {
	m, err := s.buildMessage(msg)
	if err != nil {
		return 0, err
	}

	client, err := mail.NewClient(s.host, s.clientOptions()...)
	if err != nil {
		return 0, fmt.Errorf("smtp client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	start := time.Now()
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return 0, fmt.Errorf("smtp send: %w", err)
	}

	n := len(s.to) + len(s.bcc)
	s.logger.Info("mail sent",
		"subject", msg.Subject,
		"recipients", n,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return n, nil
}

func (s *SMTPSender) clientOptions() []mail.Option {
	// port must follow the TLS policy, which rewrites the default port
	opts := []mail.Option{
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
		mail.WithPort(s.port),
		mail.WithTimeout(sendTimeout),
	}
	if s.user != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.user),
			mail.WithPassword(s.password),
		)
	}
	return opts
}

// buildMessage never puts BCC addresses in a visible header.
func (s *SMTPSender) buildMessage(msg Message) (*mail.Msg, error) {
	if len(s.to) == 0 && len(s.bcc) == 0 {
		return nil, ErrNoRecipients
	}

	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", s.from, err)
	}
	if len(s.to) > 0 {
		if err := m.To(s.to...); err != nil {
			return nil, fmt.Errorf("invalid recipient: %w", err)
		}
	}
	if len(s.bcc) > 0 {
		if err := m.Bcc(s.bcc...); err != nil {
			return nil, fmt.Errorf("invalid bcc recipient: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetMessageID()
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}
