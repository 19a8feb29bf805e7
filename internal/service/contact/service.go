package contact

import (
	"context"
	"time"

	"github.com/jwalitptl/clinic-directory/internal/email"
	"github.com/jwalitptl/clinic-directory/internal/model"
	"github.com/jwalitptl/clinic-directory/pkg/logger"
)

type ContactServicer interface {
	Relay(ctx context.Context, msg *model.ContactMessage) error
}

type Service struct {
	sender  email.Sender
	timeout time.Duration
	logger  *logger.Logger
}

// NewService relays through sender. A zero timeout leaves the deadline to ctx.
func NewService(sender email.Sender, timeout time.Duration, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		sender:  sender,
		timeout: timeout,
		logger:  log.WithComponent("contact"),
	}
}

// Relay forwards msg as one mail addressed to msg.Mail. Failures are logged
// here and returned; callers are free to ignore them.
func (s *Service) Relay(ctx context.Context, msg *model.ContactMessage) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	err := s.sender.Send(ctx, &email.Message{
		FromName: msg.SenderName(),
		To:       msg.Mail,
		Subject:  msg.Subject,
		Body:     msg.Message,
	})
	if err != nil {
		s.logger.Error(err, "contact form relay failed", "host", s.sender.Host(), "to", msg.Mail)
		return err
	}

	s.logger.Info("contact form relayed", "to", msg.Mail)
	return nil
}
