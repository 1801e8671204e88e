package services

import (
	"context"
	"testing"

	"multitrackscheduling/internal/adapters/email"
	"multitrackscheduling/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	to, subject, html, text string
	err                     error
}

func (m *recordingMailer) Send(to, subject, html, text string) error {
	m.to, m.subject, m.html, m.text = to, subject, html, text
	return m.err
}

func TestEmailService_SendEventCancelled(t *testing.T) {
	mailer := &recordingMailer{}
	svc := NewEmailService(mailer, email.NewTemplateRenderer(), discardLogger())

	err := svc.SendEventCancelled(context.Background(), &domain.EventCancelledEmailData{
		Email:   "ada@example.com",
		Name:    "Ada",
		EventID: "E1",
		RoomID:  "R1",
		Start:   at(9, 0),
		End:     at(10, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", mailer.to)
	assert.Contains(t, mailer.text, "E1")
	assert.Contains(t, mailer.html, "R1")
}

func TestEmailService_SendEventCancelled_Errors(t *testing.T) {
	svc := NewEmailService(&recordingMailer{}, email.NewTemplateRenderer(), discardLogger())
	assert.Error(t, svc.SendEventCancelled(context.Background(), nil))

	failing := NewEmailService(&recordingMailer{err: errBoom}, email.NewTemplateRenderer(), discardLogger())
	err := failing.SendEventCancelled(context.Background(), &domain.EventCancelledEmailData{Email: "x@example.com", EventID: "E1"})
	assert.ErrorIs(t, err, errBoom)
}
