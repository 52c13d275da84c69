package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/vominhduc11/NexHub-sub001/internal/event"
	"github.com/vominhduc11/NexHub-sub001/internal/notification/service"
	"github.com/vominhduc11/NexHub-sub001/pkg/errs"
)

const (
	initialRetryBackoff = time.Second
	maxRetryBackoff     = 30 * time.Second
)

// MessageReader is the subset of kafka.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type EmailConsumer struct {
	service service.EmailService
	reader  MessageReader
}

func CreateEmailConsumer(svc service.EmailService, reader MessageReader) *EmailConsumer {
	return &EmailConsumer{
		service: svc,
		reader:  reader,
	}
}

// Start consumes until ctx is done. Offsets are committed after the email is
// handed to the SMTP server, so a crash mid-send means redelivery, not loss.
func (c *EmailConsumer) Start(ctx context.Context) {
	defer func() {
		if err := c.reader.Close(); err != nil {
			log.Error().Err(err).Str("component", "Start").Msg("")
		}
	}()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Str("component", "Start").Msg("")
			continue
		}

		if !c.processWithRetry(ctx, msg) {
			return
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Str("component", "Start").Msg("")
		}
	}
}

func (c *EmailConsumer) processWithRetry(ctx context.Context, msg kafka.Message) bool {
	backoff := initialRetryBackoff

	for {
		err := c.handleEmailNotification(ctx, msg.Value)
		if err == nil {
			return true
		}

		if err == errs.ErrInvalidEvent {
			log.Error().Str("component", "processWithRetry").Str("payload", string(msg.Value)).Msg("dropping invalid event")
			return true
		}

		log.Error().Err(err).Str("component", "processWithRetry").Msg("email delivery failed, retrying")

		select {
		case <-ctx.Done():
			return false
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxRetryBackoff {
			backoff = maxRetryBackoff
		}
	}
}

func (c *EmailConsumer) handleEmailNotification(ctx context.Context, payload []byte) error {
	var evt event.EmailNotificationEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		log.Error().Err(err).Str("component", "handleEmailNotification").Msg("")
		return errs.ErrInvalidEvent
	}

	return c.service.ProcessEmailNotification(ctx, evt)
}
