package clinical

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

// Service handles clinical records: treatment notes and prescriptions. Both
// may only be written by the appointment's assigned dentist on the day of
// the appointment.
type Service struct {
	treatmentRepo    repository.TreatmentRepository
	prescriptionRepo repository.PrescriptionRepository
	apptRepo         repository.AppointmentRepository
	medicineRepo     repository.MedicineRepository
	emitter          event.Emitter
	now              func() time.Time
}

func NewService(
	treatmentRepo repository.TreatmentRepository,
	prescriptionRepo repository.PrescriptionRepository,
	apptRepo repository.AppointmentRepository,
	medicineRepo repository.MedicineRepository,
	emitter event.Emitter,
) *Service {
	return &Service{
		treatmentRepo:    treatmentRepo,
		prescriptionRepo: prescriptionRepo,
		apptRepo:         apptRepo,
		medicineRepo:     medicineRepo,
		emitter:          emitter,
		now:              time.Now,
	}
}

// gate loads the appointment and enforces the two clinical-record rules:
// the record is written on the appointment's own day, by its assigned
// dentist.
func (s *Service) gate(ctx context.Context, appointmentID, dentistID int64) (*model.Appointment, error) {
	appt, err := s.apptRepo.Get(ctx, appointmentID)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}

	if !scheduling.IsAssignedDentist(appt, dentistID) {
		return nil, apperrors.Forbidden("only the assigned dentist may add clinical records", nil)
	}
	if !scheduling.CanAddClinicalRecord(appt, s.now()) {
		return nil, apperrors.Forbidden("clinical records may only be added on the day of the appointment", nil)
	}
	return appt, nil
}

func (s *Service) CreateTreatment(ctx context.Context, dentistID int64, req *model.CreateTreatmentRequest) (*model.Treatment, error) {
	appt, err := s.gate(ctx, req.AppointmentID, dentistID)
	if err != nil {
		return nil, err
	}

	treatment := &model.Treatment{
		AppointmentID: appt.ID,
		Description:   req.Description,
	}
	if err := s.treatmentRepo.Create(ctx, treatment); err != nil {
		return nil, fmt.Errorf("failed to create treatment: %w", err)
	}
	return treatment, nil
}

func (s *Service) ListTreatmentsByAppointment(ctx context.Context, appointmentID int64) ([]*model.Treatment, error) {
	treatments, err := s.treatmentRepo.ListByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list treatments: %w", err)
	}
	return treatments, nil
}

func (s *Service) ListTreatmentsByPatient(ctx context.Context, patientID int64) ([]*model.Treatment, error) {
	treatments, err := s.treatmentRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient treatments: %w", err)
	}
	return treatments, nil
}

// CreatePrescription writes a prescription with a snapshot of each
// medicine's name and type, so later catalogue edits do not rewrite
// history.
func (s *Service) CreatePrescription(ctx context.Context, dentistID int64, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	appt, err := s.gate(ctx, req.AppointmentID, dentistID)
	if err != nil {
		return nil, err
	}

	items := make([]model.PrescriptionItem, 0, len(req.Items))
	for _, item := range req.Items {
		medicine, err := s.medicineRepo.Get(ctx, item.MedicineID)
		if err != nil {
			return nil, apperrors.NotFound("medicine", err)
		}
		items = append(items, model.PrescriptionItem{
			MedicineID:   medicine.ID,
			MedicineName: medicine.Name,
			MedicineType: medicine.Type,
			Dosage:       item.Dosage,
			Frequency:    item.Frequency,
			Duration:     item.Duration,
			Instructions: item.Instructions,
		})
	}

	prescription := &model.Prescription{
		PatientID:     appt.PatientID,
		PatientName:   appt.PatientName,
		AppointmentID: appt.ID,
		DentistID:     appt.DentistID,
		DentistName:   appt.DentistName,
		Items:         items,
		Notes:         req.Notes,
	}
	if err := s.prescriptionRepo.Create(ctx, prescription); err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", err)
	}

	if err := s.emitter.Emit(ctx, event.TypePrescriptionCreated, prescription.ID, prescription); err != nil {
		log.Error().Err(err).Int64("prescription_id", prescription.ID).Msg("failed to record prescription event")
	}
	return prescription, nil
}

func (s *Service) GetPrescription(ctx context.Context, id int64) (*model.Prescription, error) {
	prescription, err := s.prescriptionRepo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("prescription", err)
	}
	return prescription, nil
}

func (s *Service) ListPrescriptionsByAppointment(ctx context.Context, appointmentID int64) ([]*model.Prescription, error) {
	prescriptions, err := s.prescriptionRepo.ListByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (s *Service) ListPrescriptionsByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error) {
	prescriptions, err := s.prescriptionRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient prescriptions: %w", err)
	}
	return prescriptions, nil
}
