package outbox

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/vominhduc11/NexHub-sub001/internal/user/repository"
)

const dispatchBatchSize = 100

// MessageWriter is the subset of kafka.Writer the dispatcher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Dispatcher relays committed outbox rows to the broker. Rows are published in
// insertion order and marked only after the broker acknowledges, so delivery
// is at least once and consumers must be idempotent.
type Dispatcher struct {
	repo   repository.ResellerRepository
	writer MessageWriter
	mu     sync.Mutex
}

func CreateDispatcher(repo repository.ResellerRepository, writer MessageWriter) *Dispatcher {
	return &Dispatcher{repo: repo, writer: writer}
}

// Dispatch publishes one batch of unpublished rows. A failed publish stops the
// sweep; the remaining rows keep their order and are retried on the next run.
// Sweeps are serialized: two overlapping runs would read the same unpublished
// rows and a stalled run could republish a stale row after a newer one for the
// same account.
func (d *Dispatcher) Dispatch() {
	d.mu.Lock()
	defer d.mu.Unlock()

	ctx := context.Background()

	events, err := d.repo.GetUnpublishedOutboxEvents(ctx, dispatchBatchSize)
	if err != nil {
		log.Error().Err(err).Str("component", "Dispatch").Msg("")
		return
	}

	for _, evt := range events {
		err := d.writer.WriteMessages(ctx, kafka.Message{
			Topic: evt.Topic,
			Key:   []byte(evt.Key),
			Value: evt.Payload,
			Headers: []kafka.Header{
				{Key: "event_id", Value: []byte(evt.EventID)},
			},
		})
		if err != nil {
			log.Error().Err(err).Str("component", "Dispatch").Str("topic", evt.Topic).Str("event_id", evt.EventID).Msg("failed to publish outbox event")
			return
		}

		if err := d.repo.MarkOutboxEventPublished(ctx, evt.ID); err != nil {
			log.Error().Err(err).Str("component", "Dispatch").Str("event_id", evt.EventID).Msg("")
			return
		}
	}
}
