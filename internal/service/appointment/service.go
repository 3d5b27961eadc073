package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clinicware/admin-api/internal/model"
	"github.com/clinicware/admin-api/internal/repository"
	"github.com/clinicware/admin-api/internal/scheduling"
	"github.com/clinicware/admin-api/internal/service/event"
	apperrors "github.com/clinicware/admin-api/pkg/errors"
)

// Service owns the appointment lifecycle. All calendar rules live in the
// scheduling package; this layer loads state, applies them and persists.
type Service struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
	userRepo    repository.UserRepository
	emitter     event.Emitter
	now         func() time.Time
}

func NewService(repo repository.AppointmentRepository, patientRepo repository.PatientRepository, userRepo repository.UserRepository, emitter event.Emitter) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		userRepo:    userRepo,
		emitter:     emitter,
		now:         time.Now,
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	treatment := model.TreatmentType(req.TreatmentType)
	apptType := model.AppointmentType(req.Type)

	if err := scheduling.ValidateType(treatment, apptType); err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	endTime, err := scheduling.DeriveEndTime(req.StartTime, apptType)
	if err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	patient, err := s.patientRepo.Get(ctx, req.PatientID)
	if err != nil {
		return nil, apperrors.NotFound("patient", err)
	}
	dentist, err := s.userRepo.Get(ctx, req.DentistID)
	if err != nil {
		return nil, apperrors.NotFound("dentist", err)
	}

	appt := &model.Appointment{
		PatientID:     patient.ID,
		PatientName:   patient.FullName(),
		DentistID:     dentist.ID,
		DentistName:   dentist.Name,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       endTime,
		Status:        model.AppointmentStatusScheduled,
		Type:          apptType,
		TreatmentType: treatment,
		Notes:         req.Notes,
	}

	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	// The appointment is committed at this point; a failed event write
	// must not make the client retry and double-book.
	if err := s.emitter.Emit(ctx, event.TypeAppointmentCreated, appt.ID, appt); err != nil {
		log.Error().Err(err).Int64("appointment_id", appt.ID).Msg("failed to record appointment event")
	}
	return appt, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	appt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}
	return appt, nil
}

// Update edits the editable fields of an appointment. Completed and
// past-dated appointments are frozen. Changing the treatment type drops a
// previously chosen type that the new vocabulary does not admit, and any
// change to start time or type re-derives the end time.
func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	appt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}

	if !scheduling.CanModify(appt, s.now()) {
		return nil, apperrors.Forbidden("appointment can no longer be modified", nil)
	}

	if req.Date != nil {
		appt.Date = *req.Date
	}
	if req.StartTime != nil {
		appt.StartTime = *req.StartTime
	}
	if req.TreatmentType != nil {
		appt.TreatmentType = model.TreatmentType(*req.TreatmentType)
	}
	if req.Type != nil {
		appt.Type = model.AppointmentType(*req.Type)
	}
	if req.Notes != nil {
		appt.Notes = *req.Notes
	}

	if err := scheduling.ValidateType(appt.TreatmentType, appt.Type); err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	endTime, err := scheduling.DeriveEndTime(appt.StartTime, appt.Type)
	if err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}
	appt.EndTime = endTime

	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	if err := s.emitter.Emit(ctx, event.TypeAppointmentUpdated, appt.ID, appt); err != nil {
		log.Error().Err(err).Int64("appointment_id", appt.ID).Msg("failed to record appointment event")
	}
	return appt, nil
}

// Transition applies a lifecycle action. Cancelling is additionally gated by
// the same edit-eligibility rule as updates; confirming and completing are
// bound only by the state machine.
func (s *Service) Transition(ctx context.Context, id int64, action scheduling.Action) (*model.Appointment, error) {
	appt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}

	if action == scheduling.ActionCancel && !scheduling.CanModify(appt, s.now()) {
		return nil, apperrors.Forbidden("appointment can no longer be cancelled", nil)
	}

	next, err := scheduling.Transition(appt, action)
	if err != nil {
		return nil, apperrors.Conflict(err.Error(), err)
	}

	if err := s.repo.Update(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	if next.Status == model.AppointmentStatusCompleted {
		visitDate, err := time.Parse("2006-01-02", next.Date)
		if err == nil {
			if err := s.patientRepo.TouchLastVisit(ctx, next.PatientID, visitDate); err != nil {
				return nil, fmt.Errorf("failed to update last visit: %w", err)
			}
		}
	}

	if err := s.emitter.Emit(ctx, transitionEventType(action), next.ID, next); err != nil {
		log.Error().Err(err).Int64("appointment_id", next.ID).Msg("failed to record appointment event")
	}
	return next, nil
}

func transitionEventType(action scheduling.Action) string {
	switch action {
	case scheduling.ActionConfirm:
		return event.TypeAppointmentConfirmed
	case scheduling.ActionComplete:
		return event.TypeAppointmentCompleted
	default:
		return event.TypeAppointmentCancelled
	}
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error) {
	appointments, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	return appointments, nil
}

// AllowedTypes exposes the per-treatment type vocabulary so the client can
// populate its type selector without duplicating the lists.
func (s *Service) AllowedTypes(treatment model.TreatmentType) []scheduling.TypeOption {
	return scheduling.AllowedTypes(treatment)
}
