package payment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/clinicware/admin-api/internal/model"
	"github.com/clinicware/admin-api/internal/repository"
	"github.com/clinicware/admin-api/internal/scheduling"
	"github.com/clinicware/admin-api/internal/service/event"
	apperrors "github.com/clinicware/admin-api/pkg/errors"
)

// Service records and reconciles appointment payments. The ledger is
// append-only: an edit from the console becomes a new entry and the
// displayed amount is always the sum over the appointment.
type Service struct {
	repo     repository.PaymentRepository
	apptRepo repository.AppointmentRepository
	emitter  event.Emitter
}

func NewService(repo repository.PaymentRepository, apptRepo repository.AppointmentRepository, emitter event.Emitter) *Service {
	return &Service{repo: repo, apptRepo: apptRepo, emitter: emitter}
}

func (s *Service) Record(ctx context.Context, req *model.CreatePaymentRequest) (*model.PaymentEntry, error) {
	input, err := scheduling.ValidatePaymentInput(req.Amount, model.PaymentType(req.PaymentType))
	if err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	appt, err := s.apptRepo.Get(ctx, req.AppointmentID)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}

	entry := &model.PaymentEntry{
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		Amount:        input.Amount,
		PaymentType:   input.PaymentType,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	// The entry is committed; failing the request now would invite a
	// retry and a duplicate ledger entry.
	if err := s.emitter.Emit(ctx, event.TypePaymentRecorded, entry.AppointmentID, entry); err != nil {
		log.Error().Err(err).Int64("appointment_id", entry.AppointmentID).Msg("failed to record payment event")
	}
	return entry, nil
}

// Summary reduces an appointment's entries to the total and the latest
// entry. The latest entry is what the console prefills when the operator
// opens the payment form again.
func (s *Service) Summary(ctx context.Context, appointmentID int64) (*scheduling.PaymentSummary, error) {
	entries, err := s.repo.ListByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	summary := scheduling.AggregatePayments(entries, appointmentID)
	return &summary, nil
}

func (s *Service) ListByAppointment(ctx context.Context, appointmentID int64) ([]*model.PaymentEntry, error) {
	entries, err := s.repo.ListByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return entries, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*model.PaymentEntry, error) {
	entries, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient payments: %w", err)
	}
	return entries, nil
}
