package model

import "time"

type PaymentType string

const (
	PaymentTypeCash   PaymentType = "cash"
	PaymentTypeOnline PaymentType = "online"
)

// PaymentEntry is one cash or online payment recorded against an
// appointment. Entries are append-only: a correction is recorded as a new
// entry, never by mutating a prior row. The amount shown for an appointment
// is the sum of all its entries.
type PaymentEntry struct {
	ID            int64       `db:"id" json:"id"`
	AppointmentID int64       `db:"appointment_id" json:"appointment_id"`
	PatientID     int64       `db:"patient_id" json:"patient_id"`
	Amount        float64     `db:"amount" json:"amount"`
	PaymentType   PaymentType `db:"payment_type" json:"payment_type"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
}

type CreatePaymentRequest struct {
	AppointmentID int64  `json:"appointment_id" validate:"required,gt=0"`
	PatientID     int64  `json:"patient_id" validate:"required,gt=0"`
	Amount        string `json:"amount" validate:"required"`
	PaymentType   string `json:"payment_type" validate:"required"`
}
