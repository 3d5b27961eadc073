package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clinicware/admin-api/internal/model"
	"github.com/clinicware/admin-api/internal/repository"
)

// Event type names published on the outbox.
const (
	TypeAppointmentCreated   = "appointment.created"
	TypeAppointmentUpdated   = "appointment.updated"
	TypeAppointmentConfirmed = "appointment.confirmed"
	TypeAppointmentCompleted = "appointment.completed"
	TypeAppointmentCancelled = "appointment.cancelled"
	TypePaymentRecorded      = "payment.recorded"
	TypePrescriptionCreated  = "prescription.created"
	TypePharmacySaleCreated  = "pharmacy_sale.created"
)

// Emitter records domain events for asynchronous delivery.
type Emitter interface {
	Emit(ctx context.Context, eventType string, aggregateID int64, payload interface{}) error
}

// Service writes events to the outbox table; the worker binary picks them up
// and publishes to the broker. Writing and publishing are decoupled so an
// unavailable broker never fails a user request.
type Service struct {
	outboxRepo repository.OutboxRepository
}

func NewService(outboxRepo repository.OutboxRepository) *Service {
	return &Service{outboxRepo: outboxRepo}
}

func (s *Service) Emit(ctx context.Context, eventType string, aggregateID int64, payload interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	evt := &model.OutboxEvent{
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     payloadJSON,
	}
	if err := s.outboxRepo.Create(ctx, evt); err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}
	return nil
}
