package mailer

import "embed"

const (
	FromName                    = "Bandencentrale"
	maxRetries                  = 3
	BookingConfirmationTemplate = "booking_confirmation.tmpl"
	ContactNotificationTemplate = "contact_notification.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}
