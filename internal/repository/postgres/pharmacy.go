package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clinicware/admin-api/internal/model"
)

func (r *pharmacyCustomerRepository) Create(ctx context.Context, customer *model.PharmacyCustomer) error {
	query := `
		INSERT INTO pharmacy_customers (name, phone, email, address, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	customer.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		customer.Name,
		customer.Phone,
		customer.Email,
		customer.Address,
		customer.CreatedAt,
	).Scan(&customer.ID)
	if err != nil {
		return fmt.Errorf("failed to create pharmacy customer: %w", err)
	}
	return nil
}

func (r *pharmacyCustomerRepository) GetByPhone(ctx context.Context, phone string) (*model.PharmacyCustomer, error) {
	query := `
		SELECT id, name, phone, email, address, created_at
		FROM pharmacy_customers
		WHERE phone = $1
	`
	var customer model.PharmacyCustomer
	if err := r.db.GetContext(ctx, &customer, query, phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("pharmacy customer not found")
		}
		return nil, fmt.Errorf("failed to get pharmacy customer: %w", err)
	}
	return &customer, nil
}

func (r *pharmacyCustomerRepository) List(ctx context.Context) ([]*model.PharmacyCustomer, error) {
	query := `
		SELECT id, name, phone, email, address, created_at
		FROM pharmacy_customers
		ORDER BY name ASC
	`
	var customers []*model.PharmacyCustomer
	if err := r.db.SelectContext(ctx, &customers, query); err != nil {
		return nil, fmt.Errorf("failed to list pharmacy customers: %w", err)
	}
	return customers, nil
}

const saleColumns = `
	id, customer_id, customer_name, customer_phone, subtotal, sgst, cgst,
	discount, total, created_at
`

// Create inserts the sale with its line items and decrements medicine stock
// in the same transaction. The conditional UPDATE rejects the whole sale
// when any line would take stock below zero.
func (r *pharmacySaleRepository) Create(ctx context.Context, sale *model.PharmacySale) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sale.CreatedAt = time.Now()

	query := `
		INSERT INTO pharmacy_sales (
			customer_id, customer_name, customer_phone, subtotal, sgst, cgst,
			discount, total, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		sale.CustomerID,
		sale.CustomerName,
		sale.CustomerPhone,
		sale.Subtotal,
		sale.SGST,
		sale.CGST,
		sale.Discount,
		sale.Total,
		sale.CreatedAt,
	).Scan(&sale.ID)
	if err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}

	itemQuery := `
		INSERT INTO pharmacy_sale_items (
			sale_id, medicine_id, medicine_name, quantity, unit_price, total_price
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	stockQuery := `
		UPDATE medicines
		SET stock = stock - $1, updated_at = $2
		WHERE id = $3 AND stock >= $1
	`
	for i := range sale.Items {
		item := &sale.Items[i]
		item.SaleID = sale.ID

		err = tx.QueryRowContext(ctx, itemQuery,
			item.SaleID,
			item.MedicineID,
			item.MedicineName,
			item.Quantity,
			item.UnitPrice,
			item.TotalPrice,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to create sale item: %w", err)
		}

		result, err := tx.ExecContext(ctx, stockQuery, item.Quantity, sale.CreatedAt, item.MedicineID)
		if err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("insufficient stock for %s", item.MedicineName)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sale: %w", err)
	}
	return nil
}

func (r *pharmacySaleRepository) Get(ctx context.Context, id int64) (*model.PharmacySale, error) {
	var sale model.PharmacySale
	if err := r.db.GetContext(ctx, &sale, `SELECT `+saleColumns+` FROM pharmacy_sales WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sale not found")
		}
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}

	if err := r.loadItems(ctx, []*model.PharmacySale{&sale}); err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *pharmacySaleRepository) List(ctx context.Context) ([]*model.PharmacySale, error) {
	query := `SELECT ` + saleColumns + ` FROM pharmacy_sales ORDER BY created_at DESC`

	var sales []*model.PharmacySale
	if err := r.db.SelectContext(ctx, &sales, query); err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	if err := r.loadItems(ctx, sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *pharmacySaleRepository) ListCreatedBetween(ctx context.Context, start, end time.Time) ([]*model.PharmacySale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM pharmacy_sales
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at ASC
	`
	var sales []*model.PharmacySale
	if err := r.db.SelectContext(ctx, &sales, query, start, end); err != nil {
		return nil, fmt.Errorf("failed to list sales by period: %w", err)
	}
	if err := r.loadItems(ctx, sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *pharmacySaleRepository) loadItems(ctx context.Context, sales []*model.PharmacySale) error {
	if len(sales) == 0 {
		return nil
	}

	ids := make([]int64, len(sales))
	byID := make(map[int64]*model.PharmacySale, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
		byID[s.ID] = s
		s.Items = []model.PharmacySaleItem{}
	}

	query, args, err := buildInQuery(`
		SELECT id, sale_id, medicine_id, medicine_name, quantity, unit_price, total_price
		FROM pharmacy_sale_items
		WHERE sale_id IN (?)
		ORDER BY sale_id, id ASC
	`, ids)
	if err != nil {
		return err
	}

	var items []model.PharmacySaleItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return fmt.Errorf("failed to load sale items: %w", err)
	}

	for _, item := range items {
		if s, ok := byID[item.SaleID]; ok {
			s.Items = append(s.Items, item)
		}
	}
	return nil
}
