package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clinicware/admin-api/internal/model"
)

// Treatments and prescriptions are append-only children of an appointment.

func (r *treatmentRepository) Create(ctx context.Context, treatment *model.Treatment) error {
	query := `
		INSERT INTO treatments (appointment_id, description, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	treatment.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		treatment.AppointmentID,
		treatment.Description,
		treatment.CreatedAt,
	).Scan(&treatment.ID)
	if err != nil {
		return fmt.Errorf("failed to create treatment: %w", err)
	}
	return nil
}

func (r *treatmentRepository) ListByAppointment(ctx context.Context, appointmentID int64) ([]*model.Treatment, error) {
	query := `
		SELECT id, appointment_id, description, created_at
		FROM treatments
		WHERE appointment_id = $1
		ORDER BY created_at ASC
	`
	var treatments []*model.Treatment
	if err := r.db.SelectContext(ctx, &treatments, query, appointmentID); err != nil {
		return nil, fmt.Errorf("failed to list treatments: %w", err)
	}
	return treatments, nil
}

func (r *treatmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Treatment, error) {
	query := `
		SELECT t.id, t.appointment_id, t.description, t.created_at
		FROM treatments t
		JOIN appointments a ON a.id = t.appointment_id
		WHERE a.patient_id = $1
		ORDER BY t.created_at DESC
	`
	var treatments []*model.Treatment
	if err := r.db.SelectContext(ctx, &treatments, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient treatments: %w", err)
	}
	return treatments, nil
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	prescription.CreatedAt = time.Now()

	query := `
		INSERT INTO prescriptions (
			patient_id, patient_name, appointment_id, dentist_id, dentist_name,
			notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		prescription.PatientID,
		prescription.PatientName,
		prescription.AppointmentID,
		prescription.DentistID,
		prescription.DentistName,
		prescription.Notes,
		prescription.CreatedAt,
	).Scan(&prescription.ID)
	if err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}

	itemQuery := `
		INSERT INTO prescription_items (
			prescription_id, medicine_id, medicine_name, medicine_type,
			dosage, frequency, duration, instructions, position
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	for i := range prescription.Items {
		item := &prescription.Items[i]
		item.PrescriptionID = prescription.ID
		item.Position = i

		err = tx.QueryRowContext(ctx, itemQuery,
			item.PrescriptionID,
			item.MedicineID,
			item.MedicineName,
			item.MedicineType,
			item.Dosage,
			item.Frequency,
			item.Duration,
			item.Instructions,
			item.Position,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to create prescription item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	query := `
		SELECT id, patient_id, patient_name, appointment_id, dentist_id,
			   dentist_name, notes, created_at
		FROM prescriptions
		WHERE id = $1
	`
	var prescription model.Prescription
	if err := r.db.GetContext(ctx, &prescription, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("prescription not found")
		}
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}

	if err := r.loadItems(ctx, []*model.Prescription{&prescription}); err != nil {
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) ListByAppointment(ctx context.Context, appointmentID int64) ([]*model.Prescription, error) {
	query := `
		SELECT id, patient_id, patient_name, appointment_id, dentist_id,
			   dentist_name, notes, created_at
		FROM prescriptions
		WHERE appointment_id = $1
		ORDER BY created_at ASC
	`
	var prescriptions []*model.Prescription
	if err := r.db.SelectContext(ctx, &prescriptions, query, appointmentID); err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	if err := r.loadItems(ctx, prescriptions); err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error) {
	query := `
		SELECT id, patient_id, patient_name, appointment_id, dentist_id,
			   dentist_name, notes, created_at
		FROM prescriptions
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`
	var prescriptions []*model.Prescription
	if err := r.db.SelectContext(ctx, &prescriptions, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient prescriptions: %w", err)
	}
	if err := r.loadItems(ctx, prescriptions); err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) loadItems(ctx context.Context, prescriptions []*model.Prescription) error {
	if len(prescriptions) == 0 {
		return nil
	}

	ids := make([]int64, len(prescriptions))
	byID := make(map[int64]*model.Prescription, len(prescriptions))
	for i, p := range prescriptions {
		ids[i] = p.ID
		byID[p.ID] = p
		p.Items = []model.PrescriptionItem{}
	}

	query, args, err := buildInQuery(`
		SELECT id, prescription_id, medicine_id, medicine_name, medicine_type,
			   dosage, frequency, duration, instructions, position
		FROM prescription_items
		WHERE prescription_id IN (?)
		ORDER BY prescription_id, position ASC
	`, ids)
	if err != nil {
		return err
	}

	var items []model.PrescriptionItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return fmt.Errorf("failed to load prescription items: %w", err)
	}

	for _, item := range items {
		if p, ok := byID[item.PrescriptionID]; ok {
			p.Items = append(p.Items, item)
		}
	}
	return nil
}
