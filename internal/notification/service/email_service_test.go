package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vominhduc11/NexHub-sub001/config"
	"github.com/vominhduc11/NexHub-sub001/internal/event"
	"github.com/vominhduc11/NexHub-sub001/pkg/errs"
)

func TestProcessEmailNotificationRejectsInvalidEvents(t *testing.T) {
	svc := CreateEmailService(&config.Config{})

	testCases := []struct {
		name string
		evt  event.EmailNotificationEvent
	}{
		{
			name: "unknown notification type",
			evt:  event.EmailNotificationEvent{Type: "SEND_SMS", Email: "dealer01@example.com"},
		},
		{
			name: "missing recipient",
			evt:  event.EmailNotificationEvent{Type: event.NotificationTypeEmail},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.ProcessEmailNotification(context.Background(), tc.evt)
			assert.ErrorIs(t, err, errs.ErrInvalidEvent)
		})
	}
}
