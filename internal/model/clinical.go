package model

import "time"

// Treatment is a free-text clinical note tied to an appointment, written by
// the treating dentist on the day of the appointment. Append-only.
type Treatment struct {
	ID            int64     `db:"id" json:"id"`
	AppointmentID int64     `db:"appointment_id" json:"appointment_id"`
	Description   string    `db:"description" json:"description"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type CreateTreatmentRequest struct {
	AppointmentID int64  `json:"appointment_id" validate:"required,gt=0"`
	Description   string `json:"description" validate:"required,max=5000"`
}

// Prescription is a header plus an ordered list of items. Like treatments,
// prescriptions may only be created by the assigned dentist on the day of
// the appointment.
type Prescription struct {
	ID            int64              `db:"id" json:"id"`
	PatientID     int64              `db:"patient_id" json:"patient_id"`
	PatientName   string             `db:"patient_name" json:"patient_name"`
	AppointmentID int64              `db:"appointment_id" json:"appointment_id"`
	DentistID     int64              `db:"dentist_id" json:"dentist_id"`
	DentistName   string             `db:"dentist_name" json:"dentist_name"`
	Items         []PrescriptionItem `db:"-" json:"items"`
	Notes         string             `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time          `db:"created_at" json:"created_at"`
}

type PrescriptionItem struct {
	ID             int64  `db:"id" json:"id"`
	PrescriptionID int64  `db:"prescription_id" json:"-"`
	MedicineID     int64  `db:"medicine_id" json:"medicine_id"`
	MedicineName   string `db:"medicine_name" json:"medicine_name"`
	MedicineType   string `db:"medicine_type" json:"medicine_type"`
	Dosage         string `db:"dosage" json:"dosage"`
	Frequency      string `db:"frequency" json:"frequency"`
	Duration       string `db:"duration" json:"duration"`
	Instructions   string `db:"instructions" json:"instructions,omitempty"`
	Position       int    `db:"position" json:"-"`
}

type CreatePrescriptionRequest struct {
	AppointmentID int64                           `json:"appointment_id" validate:"required,gt=0"`
	Items         []CreatePrescriptionItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes         string                          `json:"notes" validate:"max=2000"`
}

type CreatePrescriptionItemRequest struct {
	MedicineID   int64  `json:"medicine_id" validate:"required,gt=0"`
	Dosage       string `json:"dosage" validate:"required,max=100"`
	Frequency    string `json:"frequency" validate:"required,max=100"`
	Duration     string `json:"duration" validate:"required,max=100"`
	Instructions string `json:"instructions" validate:"max=500"`
}
