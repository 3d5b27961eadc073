package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicware/admin-api/internal/model"
)

// Payment entries are append-only; there is no update or delete. A
// correction is stored as a further entry against the same appointment.

func (r *paymentRepository) Create(ctx context.Context, entry *model.PaymentEntry) error {
	query := `
		INSERT INTO amounts (appointment_id, patient_id, amount, payment_type, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	entry.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		entry.AppointmentID,
		entry.PatientID,
		entry.Amount,
		entry.PaymentType,
		entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to create payment entry: %w", err)
	}
	return nil
}

func (r *paymentRepository) ListByAppointment(ctx context.Context, appointmentID int64) ([]*model.PaymentEntry, error) {
	query := `
		SELECT id, appointment_id, patient_id, amount, payment_type, created_at
		FROM amounts
		WHERE appointment_id = $1
		ORDER BY created_at ASC
	`
	var entries []*model.PaymentEntry
	if err := r.db.SelectContext(ctx, &entries, query, appointmentID); err != nil {
		return nil, fmt.Errorf("failed to list payment entries: %w", err)
	}
	return entries, nil
}

func (r *paymentRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.PaymentEntry, error) {
	query := `
		SELECT id, appointment_id, patient_id, amount, payment_type, created_at
		FROM amounts
		WHERE patient_id = $1
		ORDER BY created_at ASC
	`
	var entries []*model.PaymentEntry
	if err := r.db.SelectContext(ctx, &entries, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient payment entries: %w", err)
	}
	return entries, nil
}

func (r *paymentRepository) ListCreatedBetween(ctx context.Context, start, end time.Time) ([]*model.PaymentEntry, error) {
	query := `
		SELECT id, appointment_id, patient_id, amount, payment_type, created_at
		FROM amounts
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at ASC
	`
	var entries []*model.PaymentEntry
	if err := r.db.SelectContext(ctx, &entries, query, start, end); err != nil {
		return nil, fmt.Errorf("failed to list payment entries by range: %w", err)
	}
	return entries, nil
}
