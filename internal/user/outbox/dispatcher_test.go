package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vominhduc11/NexHub-sub001/internal/user/domain"
	"github.com/vominhduc11/NexHub-sub001/internal/user/repository"
)

type fakeOutboxRepository struct {
	repository.ResellerRepository

	events []domain.OutboxEvent
}

func (f *fakeOutboxRepository) GetUnpublishedOutboxEvents(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	var data []domain.OutboxEvent
	for _, evt := range f.events {
		if evt.PublishedAt == nil {
			data = append(data, evt)
		}
		if len(data) == limit {
			break
		}
	}
	return data, nil
}

func (f *fakeOutboxRepository) MarkOutboxEventPublished(ctx context.Context, id int64) error {
	for i, evt := range f.events {
		if evt.ID == id {
			publishedAt := int64(1)
			f.events[i].PublishedAt = &publishedAt
		}
	}
	return nil
}

type fakeWriter struct {
	written   []kafka.Message
	failAfter int
	err       error
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil && len(w.written) >= w.failAfter {
		return w.err
	}
	w.written = append(w.written, msgs...)
	return nil
}

func outboxEvent(id int64, topic, key string) domain.OutboxEvent {
	return domain.OutboxEvent{
		ID:      id,
		EventID: "01J0000000000000000000000" + string(rune('0'+id)),
		Topic:   topic,
		Key:     key,
		Payload: []byte(`{"accountId":` + key + `}`),
	}
}

func TestDispatchPublishesInOrder(t *testing.T) {
	repo := &fakeOutboxRepository{events: []domain.OutboxEvent{
		outboxEvent(1, "reseller-approved", "7"),
		outboxEvent(2, "notification-email", "7"),
	}}
	writer := &fakeWriter{}

	CreateDispatcher(repo, writer).Dispatch()

	require.Len(t, writer.written, 2)
	assert.Equal(t, "reseller-approved", writer.written[0].Topic)
	assert.Equal(t, []byte("7"), writer.written[0].Key)
	assert.Equal(t, "notification-email", writer.written[1].Topic)

	require.Len(t, writer.written[0].Headers, 1)
	assert.Equal(t, "event_id", writer.written[0].Headers[0].Key)

	for _, evt := range repo.events {
		assert.NotNil(t, evt.PublishedAt)
	}
}

func TestDispatchStopsOnPublishFailure(t *testing.T) {
	repo := &fakeOutboxRepository{events: []domain.OutboxEvent{
		outboxEvent(1, "reseller-approved", "7"),
		outboxEvent(2, "reseller-rejected", "8"),
	}}
	writer := &fakeWriter{failAfter: 1, err: errors.New("broker unavailable")}

	CreateDispatcher(repo, writer).Dispatch()

	// The first row is published and marked; the second stays queued for the
	// next sweep so ordering is preserved.
	require.Len(t, writer.written, 1)
	assert.NotNil(t, repo.events[0].PublishedAt)
	assert.Nil(t, repo.events[1].PublishedAt)
}

type slowWriter struct {
	written []kafka.Message
	delay   time.Duration
}

func (w *slowWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	time.Sleep(w.delay)
	w.written = append(w.written, msgs...)
	return nil
}

func TestDispatchSerializesOverlappingSweeps(t *testing.T) {
	repo := &fakeOutboxRepository{events: []domain.OutboxEvent{
		outboxEvent(1, "reseller-deleted", "7"),
		outboxEvent(2, "reseller-restored", "7"),
	}}
	writer := &slowWriter{delay: 50 * time.Millisecond}
	dispatcher := CreateDispatcher(repo, writer)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dispatcher.Dispatch()
		}()
	}
	wg.Wait()

	// The second sweep waits for the first and then finds nothing unpublished,
	// so each row goes out exactly once and the account's delete can never be
	// republished after its restore.
	require.Len(t, writer.written, 2)
	assert.Equal(t, "reseller-deleted", writer.written[0].Topic)
	assert.Equal(t, "reseller-restored", writer.written[1].Topic)

	for _, evt := range repo.events {
		assert.NotNil(t, evt.PublishedAt)
	}
}

func TestDispatchSkipsPublishedRows(t *testing.T) {
	publishedAt := int64(1)
	published := outboxEvent(1, "reseller-approved", "7")
	published.PublishedAt = &publishedAt

	repo := &fakeOutboxRepository{events: []domain.OutboxEvent{
		published,
		outboxEvent(2, "reseller-deleted", "8"),
	}}
	writer := &fakeWriter{}

	CreateDispatcher(repo, writer).Dispatch()

	require.Len(t, writer.written, 1)
	assert.Equal(t, "reseller-deleted", writer.written[0].Topic)
}
