package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clinicware/admin-api/internal/model"
)

// Medicine types and manufacturers are the two configurable vocabularies
// behind the medicine form. Both are flat name tables.

func (r *medicineTypeRepository) Create(ctx context.Context, mt *model.MedicineType) error {
	query := `
		INSERT INTO medicine_types (name, created_at)
		VALUES ($1, $2)
		RETURNING id
	`
	mt.CreatedAt = time.Now()

	if err := r.db.QueryRowContext(ctx, query, mt.Name, mt.CreatedAt).Scan(&mt.ID); err != nil {
		return fmt.Errorf("failed to create medicine type: %w", err)
	}
	return nil
}

func (r *medicineTypeRepository) Get(ctx context.Context, id int64) (*model.MedicineType, error) {
	var mt model.MedicineType
	if err := r.db.GetContext(ctx, &mt, `SELECT id, name, created_at FROM medicine_types WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("medicine type not found")
		}
		return nil, fmt.Errorf("failed to get medicine type: %w", err)
	}
	return &mt, nil
}

func (r *medicineTypeRepository) GetByName(ctx context.Context, name string) (*model.MedicineType, error) {
	var mt model.MedicineType
	if err := r.db.GetContext(ctx, &mt, `SELECT id, name, created_at FROM medicine_types WHERE LOWER(name) = LOWER($1)`, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("medicine type not found")
		}
		return nil, fmt.Errorf("failed to get medicine type by name: %w", err)
	}
	return &mt, nil
}

func (r *medicineTypeRepository) Update(ctx context.Context, mt *model.MedicineType) error {
	result, err := r.db.ExecContext(ctx, `UPDATE medicine_types SET name = $1 WHERE id = $2`, mt.Name, mt.ID)
	if err != nil {
		return fmt.Errorf("failed to update medicine type: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("medicine type not found")
	}
	return nil
}

func (r *medicineTypeRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM medicine_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete medicine type: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("medicine type not found")
	}
	return nil
}

func (r *medicineTypeRepository) List(ctx context.Context) ([]*model.MedicineType, error) {
	var types []*model.MedicineType
	if err := r.db.SelectContext(ctx, &types, `SELECT id, name, created_at FROM medicine_types ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("failed to list medicine types: %w", err)
	}
	return types, nil
}

func (r *manufacturerRepository) Create(ctx context.Context, m *model.Manufacturer) error {
	query := `
		INSERT INTO manufacturers (name, created_at)
		VALUES ($1, $2)
		RETURNING id
	`
	m.CreatedAt = time.Now()

	if err := r.db.QueryRowContext(ctx, query, m.Name, m.CreatedAt).Scan(&m.ID); err != nil {
		return fmt.Errorf("failed to create manufacturer: %w", err)
	}
	return nil
}

func (r *manufacturerRepository) Get(ctx context.Context, id int64) (*model.Manufacturer, error) {
	var m model.Manufacturer
	if err := r.db.GetContext(ctx, &m, `SELECT id, name, created_at FROM manufacturers WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("manufacturer not found")
		}
		return nil, fmt.Errorf("failed to get manufacturer: %w", err)
	}
	return &m, nil
}

func (r *manufacturerRepository) GetByName(ctx context.Context, name string) (*model.Manufacturer, error) {
	var m model.Manufacturer
	if err := r.db.GetContext(ctx, &m, `SELECT id, name, created_at FROM manufacturers WHERE LOWER(name) = LOWER($1)`, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("manufacturer not found")
		}
		return nil, fmt.Errorf("failed to get manufacturer by name: %w", err)
	}
	return &m, nil
}

func (r *manufacturerRepository) Update(ctx context.Context, m *model.Manufacturer) error {
	result, err := r.db.ExecContext(ctx, `UPDATE manufacturers SET name = $1 WHERE id = $2`, m.Name, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update manufacturer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("manufacturer not found")
	}
	return nil
}

func (r *manufacturerRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM manufacturers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete manufacturer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("manufacturer not found")
	}
	return nil
}

func (r *manufacturerRepository) List(ctx context.Context) ([]*model.Manufacturer, error) {
	var manufacturers []*model.Manufacturer
	if err := r.db.SelectContext(ctx, &manufacturers, `SELECT id, name, created_at FROM manufacturers ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("failed to list manufacturers: %w", err)
	}
	return manufacturers, nil
}
