package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/vominhduc11/NexHub-sub001/internal/auth/service"
	"github.com/vominhduc11/NexHub-sub001/internal/event"
	"github.com/vominhduc11/NexHub-sub001/pkg/errs"
)

const (
	initialRetryBackoff = time.Second
	maxRetryBackoff     = 30 * time.Second
)

// MessageReader is the subset of kafka.Reader the consumer needs. Offsets are
// committed only after a message is fully processed so that transient failures
// lead to redelivery instead of data loss.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type handlerFunc func(ctx context.Context, payload []byte) error

type topicConsumer struct {
	topic   string
	reader  MessageReader
	handler handlerFunc
}

type ResellerEventConsumer struct {
	service   service.ResellerEventService
	consumers []topicConsumer
}

func CreateResellerEventConsumer(svc service.ResellerEventService, approvedReader, rejectedReader, deletedReader, restoredReader MessageReader,
	approvedTopic, rejectedTopic, deletedTopic, restoredTopic string) *ResellerEventConsumer {
	c := &ResellerEventConsumer{service: svc}

	c.consumers = []topicConsumer{
		{topic: approvedTopic, reader: approvedReader, handler: c.handleResellerApproved},
		{topic: rejectedTopic, reader: rejectedReader, handler: c.handleResellerRejected},
		{topic: deletedTopic, reader: deletedReader, handler: c.handleResellerDeleted},
		{topic: restoredTopic, reader: restoredReader, handler: c.handleResellerRestored},
	}

	return c
}

// Start launches one consume loop per topic and blocks until ctx is done.
func (c *ResellerEventConsumer) Start(ctx context.Context) {
	for _, tc := range c.consumers {
		go c.consumeLoop(ctx, tc)
	}

	<-ctx.Done()

	for _, tc := range c.consumers {
		if err := tc.reader.Close(); err != nil {
			log.Error().Err(err).Str("component", "Start").Str("topic", tc.topic).Msg("")
		}
	}
}

func (c *ResellerEventConsumer) consumeLoop(ctx context.Context, tc topicConsumer) {
	for {
		msg, err := tc.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Str("component", "consumeLoop").Str("topic", tc.topic).Msg("")
			continue
		}

		if !c.processWithRetry(ctx, tc, msg) {
			return
		}

		if err := tc.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Str("component", "consumeLoop").Str("topic", tc.topic).Msg("")
		}
	}
}

// processWithRetry retries transient handler failures in place with capped
// backoff, preserving per-account ordering: the next message on the partition
// is not touched until this one succeeds. Malformed events are dropped since
// retrying cannot fix them. Returns false when ctx is cancelled.
func (c *ResellerEventConsumer) processWithRetry(ctx context.Context, tc topicConsumer, msg kafka.Message) bool {
	backoff := initialRetryBackoff

	for {
		err := tc.handler(ctx, msg.Value)
		if err == nil {
			return true
		}

		if err == errs.ErrInvalidEvent {
			log.Error().Str("component", "processWithRetry").Str("topic", tc.topic).Str("payload", string(msg.Value)).Msg("dropping invalid event")
			return true
		}

		log.Error().Err(err).Str("component", "processWithRetry").Str("topic", tc.topic).Msg("event processing failed, retrying")

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

func (c *ResellerEventConsumer) handleResellerApproved(ctx context.Context, payload []byte) error {
	var evt event.ResellerApprovedEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		log.Error().Err(err).Str("component", "handleResellerApproved").Msg("")
		return errs.ErrInvalidEvent
	}

	return c.service.ProcessResellerApproved(ctx, evt)
}

func (c *ResellerEventConsumer) handleResellerRejected(ctx context.Context, payload []byte) error {
	var evt event.ResellerRejectedEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		log.Error().Err(err).Str("component", "handleResellerRejected").Msg("")
		return errs.ErrInvalidEvent
	}

	return c.service.ProcessResellerRejected(ctx, evt)
}

func (c *ResellerEventConsumer) handleResellerDeleted(ctx context.Context, payload []byte) error {
	var evt event.ResellerDeletedEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		log.Error().Err(err).Str("component", "handleResellerDeleted").Msg("")
		return errs.ErrInvalidEvent
	}

	return c.service.ProcessResellerDeleted(ctx, evt)
}

func (c *ResellerEventConsumer) handleResellerRestored(ctx context.Context, payload []byte) error {
	var evt event.ResellerRestoredEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		log.Error().Err(err).Str("component", "handleResellerRestored").Msg("")
		return errs.ErrInvalidEvent
	}

	return c.service.ProcessResellerRestored(ctx, evt)
}
