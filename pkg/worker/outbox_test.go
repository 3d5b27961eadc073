package worker

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicware/admin-api/internal/model"
	"github.com/clinicware/admin-api/pkg/logger"
	"github.com/clinicware/admin-api/pkg/messaging"
	"github.com/clinicware/admin-api/pkg/metrics"
)

// Prometheus metrics register globally, so the package shares one instance.
var testMetrics = metrics.NewMetrics("clinicware", "worker_test")

func testLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
}

type fakeOutboxRepo struct {
	pending  []*model.OutboxEvent
	statuses map[string]model.OutboxStatus
	errs     map[string]string
	deleted  int64
}

func newFakeOutboxRepo(events ...*model.OutboxEvent) *fakeOutboxRepo {
	return &fakeOutboxRepo{
		pending:  events,
		statuses: make(map[string]model.OutboxStatus),
		errs:     make(map[string]string),
	}
}

func (r *fakeOutboxRepo) Create(_ context.Context, _ *model.OutboxEvent) error { return nil }

func (r *fakeOutboxRepo) GetPendingEvents(_ context.Context, limit int) ([]*model.OutboxEvent, error) {
	if len(r.pending) > limit {
		return r.pending[:limit], nil
	}
	out := r.pending
	r.pending = nil
	return out, nil
}

func (r *fakeOutboxRepo) UpdateStatus(_ context.Context, id string, status model.OutboxStatus, errMessage *string) error {
	r.statuses[id] = status
	if errMessage != nil {
		r.errs[id] = *errMessage
	}
	return nil
}

func (r *fakeOutboxRepo) DeleteProcessedBefore(_ context.Context, _ time.Time) (int64, error) {
	return r.deleted, nil
}

type fakeBroker struct {
	failures  int
	published []messaging.Message
}

func (b *fakeBroker) Publish(_ context.Context, _ string, message interface{}) error {
	if b.failures > 0 {
		b.failures--
		return errors.New("broker unavailable")
	}
	msg, ok := message.(messaging.Message)
	if !ok {
		return errors.New("unexpected message type")
	}
	b.published = append(b.published, msg)
	return nil
}

func (b *fakeBroker) Subscribe(_ context.Context, _ string) (<-chan []byte, error) {
	return nil, errors.New("not implemented")
}

func (b *fakeBroker) Close() error { return nil }

func newProcessor(repo *fakeOutboxRepo, broker *fakeBroker) *OutboxProcessor {
	return NewOutboxProcessor(repo, broker, OutboxProcessorConfig{
		BatchSize:     10,
		PollInterval:  time.Second,
		RetryAttempts: 3,
		RetryDelay:    time.Millisecond,
	}, testLogger(), testMetrics)
}

func TestProcessBatchPublishesAndMarksProcessed(t *testing.T) {
	repo := newFakeOutboxRepo(
		&model.OutboxEvent{ID: "evt-1", EventType: "appointment.created", Payload: []byte(`{"id":1}`)},
		&model.OutboxEvent{ID: "evt-2", EventType: "payment.recorded", Payload: []byte(`{"id":2}`)},
	)
	broker := &fakeBroker{}

	err := newProcessor(repo, broker).processBatch(context.Background())
	require.NoError(t, err)

	require.Len(t, broker.published, 2)
	assert.Equal(t, "appointment.created", broker.published[0].Type)
	assert.Equal(t, model.OutboxStatusProcessed, repo.statuses["evt-1"])
	assert.Equal(t, model.OutboxStatusProcessed, repo.statuses["evt-2"])
}

func TestProcessEventRetriesTransientFailure(t *testing.T) {
	repo := newFakeOutboxRepo()
	broker := &fakeBroker{failures: 2}

	newProcessor(repo, broker).processEvent(context.Background(), &model.OutboxEvent{
		ID:        "evt-1",
		EventType: "appointment.created",
	})

	require.Len(t, broker.published, 1, "third attempt should succeed")
	assert.Equal(t, model.OutboxStatusProcessed, repo.statuses["evt-1"])
}

func TestProcessEventMarksFailedAfterRetriesExhausted(t *testing.T) {
	repo := newFakeOutboxRepo()
	broker := &fakeBroker{failures: 10}

	newProcessor(repo, broker).processEvent(context.Background(), &model.OutboxEvent{
		ID:        "evt-1",
		EventType: "appointment.created",
	})

	assert.Empty(t, broker.published)
	assert.Equal(t, model.OutboxStatusFailed, repo.statuses["evt-1"])
	assert.Equal(t, "broker unavailable", repo.errs["evt-1"])
}
