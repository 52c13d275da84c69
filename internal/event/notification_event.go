package event

import "time"

const (
	NotificationTypeEmail = "SEND_EMAIL"
)

// EmailNotificationEvent is consumed by the notification-service. Delivery is
// best-effort and never feeds back into the reseller lifecycle.
type EmailNotificationEvent struct {
	Type      string    `json:"type"`
	AccountID int64     `json:"accountId"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
