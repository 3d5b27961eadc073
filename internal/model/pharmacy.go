package model

import "time"

type Medicine struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Type         string    `db:"type" json:"type"`
	Description  string    `db:"description" json:"description,omitempty"`
	Manufacturer string    `db:"manufacturer" json:"manufacturer,omitempty"`
	Stock        int       `db:"stock" json:"stock"`
	Unit         string    `db:"unit" json:"unit"`
	Price        float64   `db:"price" json:"price"`
	DateOfMfg    *string   `db:"date_of_mfg" json:"date_of_mfg,omitempty"`
	DateOfExpiry *string   `db:"date_of_expiry" json:"date_of_expiry,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type CreateMedicineRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Type         string  `json:"type" validate:"required,max=100"`
	Description  string  `json:"description" validate:"max=1000"`
	Manufacturer string  `json:"manufacturer" validate:"max=200"`
	Stock        int     `json:"stock" validate:"gte=0"`
	Unit         string  `json:"unit" validate:"required,max=50"`
	Price        float64 `json:"price" validate:"gte=0"`
	DateOfMfg    *string `json:"date_of_mfg" validate:"omitempty,datetime=2006-01-02"`
	DateOfExpiry *string `json:"date_of_expiry" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateMedicineRequest struct {
	Name         *string  `json:"name" validate:"omitempty,max=200"`
	Type         *string  `json:"type" validate:"omitempty,max=100"`
	Description  *string  `json:"description" validate:"omitempty,max=1000"`
	Manufacturer *string  `json:"manufacturer" validate:"omitempty,max=200"`
	Stock        *int     `json:"stock" validate:"omitempty,gte=0"`
	Unit         *string  `json:"unit" validate:"omitempty,max=50"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	DateOfMfg    *string  `json:"date_of_mfg" validate:"omitempty,datetime=2006-01-02"`
	DateOfExpiry *string  `json:"date_of_expiry" validate:"omitempty,datetime=2006-01-02"`
}

// MedicineType and Manufacturer back the medicine form's dropdowns. Both
// are managed from the configuration page rather than baked into the code,
// so a medicine's type and manufacturer stay free-form strings snapshotted
// at entry time.
type MedicineType struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Manufacturer struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type SaveMedicineTypeRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type SaveManufacturerRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// PharmacyCustomer is a walk-in buyer, keyed by phone number at the counter.
type PharmacyCustomer struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	Email     string    `db:"email" json:"email,omitempty"`
	Address   string    `db:"address" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreatePharmacyCustomerRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Phone   string `json:"phone" validate:"required,max=30"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"max=500"`
}

// PharmacySale is a point-of-sale invoice. Creating one decrements stock for
// every line item in a single transaction; a sale that would take any
// medicine below zero is rejected whole.
type PharmacySale struct {
	ID            int64              `db:"id" json:"id"`
	CustomerID    int64              `db:"customer_id" json:"customer_id"`
	CustomerName  string             `db:"customer_name" json:"customer_name"`
	CustomerPhone string             `db:"customer_phone" json:"customer_phone"`
	Items         []PharmacySaleItem `db:"-" json:"items"`
	Subtotal      float64            `db:"subtotal" json:"subtotal"`
	SGST          float64            `db:"sgst" json:"sgst"`
	CGST          float64            `db:"cgst" json:"cgst"`
	Discount      float64            `db:"discount" json:"discount"`
	Total         float64            `db:"total" json:"total"`
	CreatedAt     time.Time          `db:"created_at" json:"created_at"`
}

type PharmacySaleItem struct {
	ID           int64   `db:"id" json:"-"`
	SaleID       int64   `db:"sale_id" json:"-"`
	MedicineID   int64   `db:"medicine_id" json:"medicine_id"`
	MedicineName string  `db:"medicine_name" json:"medicine_name"`
	Quantity     int     `db:"quantity" json:"quantity"`
	UnitPrice    float64 `db:"unit_price" json:"unit_price"`
	TotalPrice   float64 `db:"total_price" json:"total_price"`
}

type CreatePharmacySaleRequest struct {
	CustomerPhone string                          `json:"customer_phone" validate:"required,max=30"`
	Items         []CreatePharmacySaleItemRequest `json:"items" validate:"required,min=1,dive"`
	Discount      float64                         `json:"discount" validate:"gte=0"`
}

type CreatePharmacySaleItemRequest struct {
	MedicineID int64 `json:"medicine_id" validate:"required,gt=0"`
	Quantity   int   `json:"quantity" validate:"required,gt=0"`
}
