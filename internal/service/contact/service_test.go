package contact

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-directory/internal/email"
	"github.com/jwalitptl/clinic-directory/internal/model"
	"github.com/jwalitptl/clinic-directory/pkg/logger"
)

type stubSender struct {
	sent        []*email.Message
	err         error
	hasDeadline bool
}

func (s *stubSender) Send(ctx context.Context, msg *email.Message) error {
	_, s.hasDeadline = ctx.Deadline()
	s.sent = append(s.sent, msg)
	return s.err
}

func (s *stubSender) Host() string { return "smtp.test" }

func TestRelay_BuildsMessage(t *testing.T) {
	sender := &stubSender{}
	svc := NewService(sender, time.Second, nil)

	err := svc.Relay(context.Background(), &model.ContactMessage{
		Subject: "Opening hours",
		Mail:    "visitor@example.com",
		Message: "Are you open on Saturday?",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "Opening hours", msg.FromName)
	assert.Equal(t, "visitor@example.com", msg.To)
	assert.Equal(t, "Opening hours", msg.Subject)
	assert.Equal(t, "Are you open on Saturday?", msg.Body)
	assert.True(t, sender.hasDeadline)
}

func TestRelay_NameWins(t *testing.T) {
	sender := &stubSender{}
	svc := NewService(sender, 0, nil)

	require.NoError(t, svc.Relay(context.Background(), &model.ContactMessage{
		Name:    "Anna",
		Subject: "Question",
		Mail:    "anna@example.com",
	}))
	assert.Equal(t, "Anna", sender.sent[0].FromName)
	assert.False(t, sender.hasDeadline)
}

func TestRelay_FailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(&logger.Config{Level: logger.InfoLevel, Output: &buf, JSON: true})
	svc := NewService(&stubSender{err: errors.New("connection refused")}, time.Second, log)

	err := svc.Relay(context.Background(), &model.ContactMessage{Mail: "visitor@example.com"})
	assert.ErrorContains(t, err, "connection refused")
	assert.Contains(t, buf.String(), "contact form relay failed")
	assert.Contains(t, buf.String(), "smtp.test")
}
