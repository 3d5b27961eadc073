package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clinicware/admin-api/internal/model"
)

const appointmentColumns = `
	id, patient_id, patient_name, dentist_id, dentist_name,
	date, start_time, end_time, status, type, treatment_type,
	notes, created_at
`

func (r *appointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			patient_id, patient_name, dentist_id, dentist_name,
			date, start_time, end_time, status, type, treatment_type,
			notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	appt.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		appt.PatientID,
		appt.PatientName,
		appt.DentistID,
		appt.DentistName,
		appt.Date,
		appt.StartTime,
		appt.EndTime,
		appt.Status,
		appt.Type,
		appt.TreatmentType,
		appt.Notes,
		appt.CreatedAt,
	).Scan(&appt.ID)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	var appt model.Appointment
	if err := r.db.GetContext(ctx, &appt, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("appointment not found")
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appt, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appt *model.Appointment) error {
	query := `
		UPDATE appointments
		SET patient_id = $1, patient_name = $2, dentist_id = $3, dentist_name = $4,
			date = $5, start_time = $6, end_time = $7, status = $8,
			type = $9, treatment_type = $10, notes = $11
		WHERE id = $12
	`
	result, err := r.db.ExecContext(ctx, query,
		appt.PatientID,
		appt.PatientName,
		appt.DentistID,
		appt.DentistName,
		appt.Date,
		appt.StartTime,
		appt.EndTime,
		appt.Status,
		appt.Type,
		appt.TreatmentType,
		appt.Notes,
		appt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment not found")
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters.PatientID != 0 {
		query += fmt.Sprintf(" AND patient_id = $%d", argCount)
		args = append(args, filters.PatientID)
		argCount++
	}
	if filters.DentistID != 0 {
		query += fmt.Sprintf(" AND dentist_id = $%d", argCount)
		args = append(args, filters.DentistID)
		argCount++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}
	if filters.StartDate != "" {
		query += fmt.Sprintf(" AND date >= $%d", argCount)
		args = append(args, filters.StartDate)
		argCount++
	}
	if filters.EndDate != "" {
		query += fmt.Sprintf(" AND date <= $%d", argCount)
		args = append(args, filters.EndDate)
		argCount++
	}

	query += " ORDER BY date ASC, start_time ASC"

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByDateRange(ctx context.Context, startDate, endDate string) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC, start_time ASC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, startDate, endDate); err != nil {
		return nil, fmt.Errorf("failed to list appointments by date range: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE patient_id = $1
		ORDER BY date DESC, start_time DESC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListUpcoming(ctx context.Context, fromDate string, limit int) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE date >= $1 AND status IN ('scheduled', 'confirmed')
		ORDER BY date ASC, start_time ASC
		LIMIT $2
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, fromDate, limit); err != nil {
		return nil, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM appointments`); err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

func (r *appointmentRepository) CountByDate(ctx context.Context, date string) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM appointments WHERE date = $1`, date); err != nil {
		return 0, fmt.Errorf("failed to count appointments by date: %w", err)
	}
	return count, nil
}
