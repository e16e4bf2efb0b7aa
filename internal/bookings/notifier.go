package bookings

import (
	"context"

	"github.com/velora-beauty/velora/internal/templates"
	"github.com/velora-beauty/velora/jobs"
)

// EmailNotifier renders the confirmation template and enqueues delivery.
type EmailNotifier struct {
	templates *templates.Service
	client    *jobs.Client
}

// NewEmailNotifier constructs the queue-backed notifier.
func NewEmailNotifier(t *templates.Service, client *jobs.Client) *EmailNotifier {
	return &EmailNotifier{templates: t, client: client}
}

// BookingConfirmation queues the confirmation email for a new booking.
func (n *EmailNotifier) BookingConfirmation(ctx context.Context, b Booking) error {
	subject, html, err := n.templates.Render(ctx, templates.NameBookingConfirmation, map[string]string{
		"name":    b.Name,
		"service": b.Service,
		"date":    b.Date,
		"time":    b.Time,
	})
	if err != nil {
		return err
	}
	_, err = n.client.EnqueueSendEmail(ctx, jobs.SendEmailPayload{
		To:      b.Email,
		Subject: subject,
		HTML:    html,
	})
	return err
}
