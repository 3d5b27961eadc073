package model

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// TreatmentType is the clinical domain of an appointment. It gates which
// appointment type codes are selectable.
type TreatmentType string

const (
	TreatmentDental TreatmentType = "dental"
	TreatmentHair   TreatmentType = "hair"
	TreatmentSkin   TreatmentType = "skin"
)

// AppointmentType is the procedure code within a treatment type.
type AppointmentType string

const (
	TypeCheckUp      AppointmentType = "check-up"
	TypeCleaning     AppointmentType = "cleaning"
	TypeFilling      AppointmentType = "filling"
	TypeExtraction   AppointmentType = "extraction"
	TypeRootCanal    AppointmentType = "root-canal"
	TypeConsultation AppointmentType = "consultation"
	TypeOther        AppointmentType = "other"
	TypePRP          AppointmentType = "PRP"
	TypeHT           AppointmentType = "HT"
	TypeHydrofacial  AppointmentType = "hydrofacial"
	TypeIV           AppointmentType = "IV"
)

// Appointment is a scheduled encounter. Date is a civil date (YYYY-MM-DD)
// and StartTime/EndTime are local clock times (HH:MM); no time zone
// conversion is applied to either. Patient and dentist names are snapshots
// taken at booking time, not live joins.
type Appointment struct {
	ID            int64             `db:"id" json:"id"`
	PatientID     int64             `db:"patient_id" json:"patient_id"`
	PatientName   string            `db:"patient_name" json:"patient_name"`
	DentistID     int64             `db:"dentist_id" json:"dentist_id"`
	DentistName   string            `db:"dentist_name" json:"dentist_name"`
	Date          string            `db:"date" json:"date"`
	StartTime     string            `db:"start_time" json:"start_time"`
	EndTime       string            `db:"end_time" json:"end_time"`
	Status        AppointmentStatus `db:"status" json:"status"`
	Type          AppointmentType   `db:"type" json:"type"`
	TreatmentType TreatmentType     `db:"treatment_type" json:"treatment_type"`
	Notes         string            `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
}

type CreateAppointmentRequest struct {
	PatientID     int64  `json:"patient_id" validate:"required,gt=0"`
	DentistID     int64  `json:"dentist_id" validate:"required,gt=0"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime     string `json:"start_time" validate:"required,datetime=15:04"`
	Type          string `json:"type" validate:"required"`
	TreatmentType string `json:"treatment_type" validate:"required,oneof=dental hair skin"`
	Notes         string `json:"notes" validate:"max=1000"`
}

type UpdateAppointmentRequest struct {
	Date          *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime     *string `json:"start_time" validate:"omitempty,datetime=15:04"`
	Type          *string `json:"type"`
	TreatmentType *string `json:"treatment_type" validate:"omitempty,oneof=dental hair skin"`
	Notes         *string `json:"notes" validate:"omitempty,max=1000"`
}

type AppointmentFilters struct {
	PatientID int64
	DentistID int64
	Status    AppointmentStatus
	StartDate string
	EndDate   string
}
