package worker

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/clinicware/admin-api/internal/model"
	"github.com/clinicware/admin-api/internal/repository"
	"github.com/clinicware/admin-api/pkg/logger"
	"github.com/clinicware/admin-api/pkg/messaging"
	"github.com/clinicware/admin-api/pkg/metrics"
)

const eventsChannel = "events"

type OutboxProcessorConfig struct {
	BatchSize       int
	PollInterval    time.Duration
	RetryAttempts   int
	RetryDelay      time.Duration
	RetentionPeriod time.Duration
}

// OutboxProcessor drains the outbox table: it claims pending events,
// publishes them to the broker and marks the result. Events that exhaust
// their retries stay failed for operator inspection.
type OutboxProcessor struct {
	outboxRepo repository.OutboxRepository
	broker     messaging.Broker
	config     OutboxProcessorConfig
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

func NewOutboxProcessor(
	outboxRepo repository.OutboxRepository,
	broker messaging.Broker,
	config OutboxProcessorConfig,
	log *logger.Logger,
	m *metrics.Metrics,
) *OutboxProcessor {
	if config.BatchSize <= 0 {
		config.BatchSize = 100
	}
	if config.PollInterval <= 0 {
		config.PollInterval = 5 * time.Second
	}
	if config.RetryAttempts <= 0 {
		config.RetryAttempts = 3
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = 5 * time.Second
	}
	return &OutboxProcessor{
		outboxRepo: outboxRepo,
		broker:     broker,
		config:     config,
		logger:     log,
		metrics:    m,
	}
}

// Start blocks until ctx is cancelled, polling on the configured interval.
func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	cleanupTicker := time.NewTicker(time.Hour)
	defer cleanupTicker.Stop()

	p.logger.Info("outbox processor started", map[string]interface{}{
		"batch_size":    p.config.BatchSize,
		"poll_interval": p.config.PollInterval.String(),
	})

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("outbox processor shutting down")
			return
		case <-ticker.C:
			if err := p.processBatch(ctx); err != nil {
				p.logger.Error(err, "failed to process outbox batch")
			}
		case <-cleanupTicker.C:
			p.cleanup(ctx)
		}
	}
}

func (p *OutboxProcessor) processBatch(ctx context.Context) error {
	events, err := p.outboxRepo.GetPendingEvents(ctx, p.config.BatchSize)
	if err != nil {
		return err
	}

	for _, evt := range events {
		p.processEvent(ctx, evt)
	}
	return nil
}

func (p *OutboxProcessor) processEvent(ctx context.Context, evt *model.OutboxEvent) {
	timer := prometheus.NewTimer(p.metrics.OutboxProcessingLatency)
	defer timer.ObserveDuration()

	var publishErr error
	for attempt := 0; attempt < p.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			p.metrics.OutboxRetries.WithLabelValues(evt.EventType).Inc()
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempt) * p.config.RetryDelay):
			}
		}

		publishErr = p.broker.Publish(ctx, eventsChannel, messaging.Message{
			Type:    evt.EventType,
			Payload: evt.Payload,
		})
		if publishErr == nil {
			break
		}

		p.logger.Warn("retrying event publish", map[string]interface{}{
			"event_id":   evt.ID,
			"event_type": evt.EventType,
			"attempt":    attempt + 1,
			"error":      publishErr.Error(),
		})
	}

	if publishErr != nil {
		p.metrics.OutboxEventsFailed.Inc()
		errMsg := publishErr.Error()
		if err := p.outboxRepo.UpdateStatus(ctx, evt.ID, model.OutboxStatusFailed, &errMsg); err != nil {
			p.logger.Error(err, "failed to mark event failed", map[string]interface{}{"event_id": evt.ID})
		}
		return
	}

	if err := p.outboxRepo.UpdateStatus(ctx, evt.ID, model.OutboxStatusProcessed, nil); err != nil {
		p.logger.Error(err, "failed to mark event processed", map[string]interface{}{"event_id": evt.ID})
		return
	}
	p.metrics.OutboxEventsProcessed.Inc()
}

func (p *OutboxProcessor) cleanup(ctx context.Context) {
	if p.config.RetentionPeriod <= 0 {
		return
	}
	cutoff := time.Now().Add(-p.config.RetentionPeriod)
	count, err := p.outboxRepo.DeleteProcessedBefore(ctx, cutoff)
	if err != nil {
		p.logger.Error(err, "failed to clean up processed events")
		return
	}
	if count > 0 {
		p.logger.Info("cleaned up processed events", map[string]interface{}{"deleted": count})
	}
}
