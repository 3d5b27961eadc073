package model

import "time"

type Patient struct {
	ID             int64      `db:"id" json:"id"`
	FirstName      string     `db:"first_name" json:"first_name"`
	LastName       string     `db:"last_name" json:"last_name"`
	Email          string     `db:"email" json:"email"`
	Phone          string     `db:"phone" json:"phone"`
	DateOfBirth    string     `db:"date_of_birth" json:"date_of_birth"`
	Gender         string     `db:"gender" json:"gender"`
	Address        string     `db:"address" json:"address"`
	MedicalHistory string     `db:"medical_history" json:"medical_history,omitempty"`
	InsuranceInfo  string     `db:"insurance_info" json:"insurance_info,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	LastVisit      *time.Time `db:"last_visit" json:"last_visit,omitempty"`
}

func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

type CreatePatientRequest struct {
	FirstName      string `json:"first_name" validate:"required,max=100"`
	LastName       string `json:"last_name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required,max=30"`
	DateOfBirth    string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender         string `json:"gender" validate:"required,oneof=male female other"`
	Address        string `json:"address" validate:"max=500"`
	MedicalHistory string `json:"medical_history" validate:"max=5000"`
	InsuranceInfo  string `json:"insurance_info" validate:"max=1000"`
}

type UpdatePatientRequest struct {
	FirstName      *string `json:"first_name" validate:"omitempty,max=100"`
	LastName       *string `json:"last_name" validate:"omitempty,max=100"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Phone          *string `json:"phone" validate:"omitempty,max=30"`
	DateOfBirth    *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender         *string `json:"gender" validate:"omitempty,oneof=male female other"`
	Address        *string `json:"address" validate:"omitempty,max=500"`
	MedicalHistory *string `json:"medical_history" validate:"omitempty,max=5000"`
	InsuranceInfo  *string `json:"insurance_info" validate:"omitempty,max=1000"`
}

type PatientFilters struct {
	Search string
	Pagination
}
