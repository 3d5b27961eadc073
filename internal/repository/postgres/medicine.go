package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clinicware/admin-api/internal/model"
)

const medicineColumns = `
	id, name, type, description, manufacturer, stock, unit, price,
	date_of_mfg, date_of_expiry, created_at, updated_at
`

func (r *medicineRepository) Create(ctx context.Context, medicine *model.Medicine) error {
	query := `
		INSERT INTO medicines (
			name, type, description, manufacturer, stock, unit, price,
			date_of_mfg, date_of_expiry, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	now := time.Now()
	medicine.CreatedAt = now
	medicine.UpdatedAt = now

	err := r.db.QueryRowContext(ctx, query,
		medicine.Name,
		medicine.Type,
		medicine.Description,
		medicine.Manufacturer,
		medicine.Stock,
		medicine.Unit,
		medicine.Price,
		medicine.DateOfMfg,
		medicine.DateOfExpiry,
		medicine.CreatedAt,
		medicine.UpdatedAt,
	).Scan(&medicine.ID)
	if err != nil {
		return fmt.Errorf("failed to create medicine: %w", err)
	}
	return nil
}

func (r *medicineRepository) Get(ctx context.Context, id int64) (*model.Medicine, error) {
	var medicine model.Medicine
	if err := r.db.GetContext(ctx, &medicine, `SELECT `+medicineColumns+` FROM medicines WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("medicine not found")
		}
		return nil, fmt.Errorf("failed to get medicine: %w", err)
	}
	return &medicine, nil
}

func (r *medicineRepository) Update(ctx context.Context, medicine *model.Medicine) error {
	query := `
		UPDATE medicines
		SET name = $1, type = $2, description = $3, manufacturer = $4,
			stock = $5, unit = $6, price = $7, date_of_mfg = $8,
			date_of_expiry = $9, updated_at = $10
		WHERE id = $11
	`
	medicine.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		medicine.Name,
		medicine.Type,
		medicine.Description,
		medicine.Manufacturer,
		medicine.Stock,
		medicine.Unit,
		medicine.Price,
		medicine.DateOfMfg,
		medicine.DateOfExpiry,
		medicine.UpdatedAt,
		medicine.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update medicine: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("medicine not found")
	}
	return nil
}

func (r *medicineRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete medicine: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("medicine not found")
	}
	return nil
}

func (r *medicineRepository) List(ctx context.Context, search string) ([]*model.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines`
	args := []interface{}{}
	if search != "" {
		query += ` WHERE name ILIKE $1 OR manufacturer ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name ASC`

	var medicines []*model.Medicine
	if err := r.db.SelectContext(ctx, &medicines, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	return medicines, nil
}

func (r *medicineRepository) ListLowStock(ctx context.Context, threshold int) ([]*model.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE stock <= $1 ORDER BY stock ASC`

	var medicines []*model.Medicine
	if err := r.db.SelectContext(ctx, &medicines, query, threshold); err != nil {
		return nil, fmt.Errorf("failed to list low stock medicines: %w", err)
	}
	return medicines, nil
}
