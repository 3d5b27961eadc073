package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clinicware/admin-api/internal/model"
)

const roleColumns = `id, name, description, permissions, created_at`

func (r *roleRepository) Create(ctx context.Context, role *model.Role) error {
	query := `
		INSERT INTO roles (name, description, permissions, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	role.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		role.Name,
		role.Description,
		role.Permissions,
		role.CreatedAt,
	).Scan(&role.ID)
	if err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}
	return nil
}

func (r *roleRepository) Get(ctx context.Context, id int64) (*model.Role, error) {
	var role model.Role
	if err := r.db.GetContext(ctx, &role, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("role not found")
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return &role, nil
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	if err := r.db.GetContext(ctx, &role, `SELECT `+roleColumns+` FROM roles WHERE name = $1`, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("role not found")
		}
		return nil, fmt.Errorf("failed to get role by name: %w", err)
	}
	return &role, nil
}

func (r *roleRepository) Update(ctx context.Context, role *model.Role) error {
	query := `UPDATE roles SET name = $1, description = $2, permissions = $3 WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, role.Name, role.Description, role.Permissions, role.ID)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("role not found")
	}
	return nil
}

func (r *roleRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("role not found")
	}
	return nil
}

func (r *roleRepository) List(ctx context.Context) ([]*model.Role, error) {
	var roles []*model.Role
	if err := r.db.SelectContext(ctx, &roles, `SELECT `+roleColumns+` FROM roles ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}
