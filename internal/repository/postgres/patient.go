package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clinicware/admin-api/internal/model"
)

const patientColumns = `
	id, first_name, last_name, email, phone, date_of_birth, gender,
	address, medical_history, insurance_info, created_at, last_visit
`

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			first_name, last_name, email, phone, date_of_birth, gender,
			address, medical_history, insurance_info, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	patient.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.Email,
		patient.Phone,
		patient.DateOfBirth,
		patient.Gender,
		patient.Address,
		patient.MedicalHistory,
		patient.InsuranceInfo,
		patient.CreatedAt,
	).Scan(&patient.ID)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`

	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("patient not found")
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET first_name = $1, last_name = $2, email = $3, phone = $4,
			date_of_birth = $5, gender = $6, address = $7,
			medical_history = $8, insurance_info = $9
		WHERE id = $10
	`
	result, err := r.db.ExecContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.Email,
		patient.Phone,
		patient.DateOfBirth,
		patient.Gender,
		patient.Address,
		patient.MedicalHistory,
		patient.InsuranceInfo,
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("patient not found")
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("patient not found")
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, int, error) {
	where := ""
	args := []interface{}{}
	if filters.Search != "" {
		where = ` WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR phone ILIKE $1 OR email ILIKE $1`
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM patients`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count patients: %w", err)
	}

	query := `SELECT ` + patientColumns + ` FROM patients` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filters.PageSize, filters.Offset())

	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, total, nil
}

func (r *patientRepository) ListRecent(ctx context.Context, limit int) ([]*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients ORDER BY created_at DESC LIMIT $1`

	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) ListCreatedBetween(ctx context.Context, start, end time.Time) ([]*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE created_at >= $1 AND created_at < $2`

	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, start, end); err != nil {
		return nil, fmt.Errorf("failed to list patients by range: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM patients`); err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return count, nil
}

func (r *patientRepository) TouchLastVisit(ctx context.Context, id int64, visitedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE patients SET last_visit = $1 WHERE id = $2`, visitedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update last visit: %w", err)
	}
	return nil
}
