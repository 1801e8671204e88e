package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventCancelledEmailData holds data for the event cancellation notice.
type EventCancelledEmailData struct {
	Email   string
	Name    string
	EventID string
	RoomID  string
	Start   time.Time
	End     time.Time
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendEventCancelled(ctx context.Context, data *EventCancelledEmailData) error
}
