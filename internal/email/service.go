package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/clinic-directory/internal/config"
	"github.com/jwalitptl/clinic-directory/pkg/metrics"
)

// Message is a single plaintext mail. FromName is the display name put in
// front of the configured sender address; empty means the configured name.
type Message struct {
	FromName string
	To       string
	Subject  string
	Body     string
}

type Sender interface {
	Send(ctx context.Context, msg *Message) error
	Host() string
}

type smtpSender struct {
	dialer        *gomail.Dialer
	senderAddress string
	senderName    string
	metrics       *metrics.Metrics
}

// NewSMTPSender dials cfg.Host for every message. Authentication is only
// attempted when a username is configured. Send gives up when ctx is done,
// so callers bound it with cfg.Timeout; gomail's dialer has no timeout of
// its own beyond the 10s TCP connect.
func NewSMTPSender(cfg config.MailConfig, m *metrics.Metrics) Sender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Secrets.Username, cfg.Secrets.Password)
	d.SSL = cfg.SSL

	sender := cfg.SenderAddress
	if sender == "" {
		sender = cfg.Secrets.Username
	}

	return &smtpSender{
		dialer:        d,
		senderAddress: sender,
		senderName:    cfg.SenderName,
		metrics:       m,
	}
}

func (s *smtpSender) Send(ctx context.Context, msg *Message) error {
	if s.senderAddress == "" {
		return fmt.Errorf("no sender address configured")
	}

	name := msg.FromName
	if name == "" {
		name = s.senderName
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderAddress, name)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	done := make(chan error, 1)
	go func() {
		err := s.deliver(ctx, m)
		s.observe(err)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, ctx.Err())
	}
}

// deliver dials and sends, but never starts the mail transaction once ctx
// is done. A late dial ends with QUIT instead of a delivery the caller has
// already reported as failed.
func (s *smtpSender) deliver(ctx context.Context, m *gomail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sc, err := s.dialer.Dial()
	if err != nil {
		return err
	}
	defer sc.Close()

	if err := ctx.Err(); err != nil {
		return err
	}
	return gomail.Send(sc, m)
}

// observe counts the real outcome of a delivery, even one Send stopped waiting for.
func (s *smtpSender) observe(err error) {
	if s.metrics == nil {
		return
	}
	if err != nil {
		s.metrics.MailSendFailure.WithLabelValues(s.Host()).Inc()
		return
	}
	s.metrics.MailSendSuccess.WithLabelValues(s.Host()).Inc()
}

func (s *smtpSender) Host() string {
	return s.dialer.Host
}
