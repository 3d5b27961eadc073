package repository

import (
	"context"
	"time"

	"github.com/clinicware/admin-api/internal/model"
)

// All repository interfaces in one file
type (
	AppointmentRepository interface {
		Create(ctx context.Context, appt *model.Appointment) error
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		Update(ctx context.Context, appt *model.Appointment) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		ListByDateRange(ctx context.Context, startDate, endDate string) ([]*model.Appointment, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error)
		ListUpcoming(ctx context.Context, fromDate string, limit int) ([]*model.Appointment, error)
		Count(ctx context.Context) (int64, error)
		CountByDate(ctx context.Context, date string) (int64, error)
	}

	PaymentRepository interface {
		Create(ctx context.Context, entry *model.PaymentEntry) error
		ListByAppointment(ctx context.Context, appointmentID int64) ([]*model.PaymentEntry, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.PaymentEntry, error)
		// ListCreatedBetween treats the range as half-open: [start, end).
		ListCreatedBetween(ctx context.Context, start, end time.Time) ([]*model.PaymentEntry, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id int64) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, int, error)
		ListRecent(ctx context.Context, limit int) ([]*model.Patient, error)
		ListCreatedBetween(ctx context.Context, start, end time.Time) ([]*model.Patient, error)
		Count(ctx context.Context) (int64, error)
		TouchLastVisit(ctx context.Context, id int64, visitedAt time.Time) error
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id int64) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.User, error)
	}

	RoleRepository interface {
		Create(ctx context.Context, role *model.Role) error
		Get(ctx context.Context, id int64) (*model.Role, error)
		GetByName(ctx context.Context, name string) (*model.Role, error)
		Update(ctx context.Context, role *model.Role) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Role, error)
	}

	TreatmentRepository interface {
		Create(ctx context.Context, treatment *model.Treatment) error
		ListByAppointment(ctx context.Context, appointmentID int64) ([]*model.Treatment, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Treatment, error)
	}

	PrescriptionRepository interface {
		Create(ctx context.Context, prescription *model.Prescription) error
		Get(ctx context.Context, id int64) (*model.Prescription, error)
		ListByAppointment(ctx context.Context, appointmentID int64) ([]*model.Prescription, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error)
	}

	MedicineRepository interface {
		Create(ctx context.Context, medicine *model.Medicine) error
		Get(ctx context.Context, id int64) (*model.Medicine, error)
		Update(ctx context.Context, medicine *model.Medicine) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context, search string) ([]*model.Medicine, error)
		ListLowStock(ctx context.Context, threshold int) ([]*model.Medicine, error)
	}

	MedicineTypeRepository interface {
		Create(ctx context.Context, mt *model.MedicineType) error
		Get(ctx context.Context, id int64) (*model.MedicineType, error)
		GetByName(ctx context.Context, name string) (*model.MedicineType, error)
		Update(ctx context.Context, mt *model.MedicineType) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.MedicineType, error)
	}

	ManufacturerRepository interface {
		Create(ctx context.Context, m *model.Manufacturer) error
		Get(ctx context.Context, id int64) (*model.Manufacturer, error)
		GetByName(ctx context.Context, name string) (*model.Manufacturer, error)
		Update(ctx context.Context, m *model.Manufacturer) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Manufacturer, error)
	}

	PharmacyCustomerRepository interface {
		Create(ctx context.Context, customer *model.PharmacyCustomer) error
		GetByPhone(ctx context.Context, phone string) (*model.PharmacyCustomer, error)
		List(ctx context.Context) ([]*model.PharmacyCustomer, error)
	}

	PharmacySaleRepository interface {
		// Create inserts the sale with its items and decrements stock for
		// every line inside one transaction.
		Create(ctx context.Context, sale *model.PharmacySale) error
		Get(ctx context.Context, id int64) (*model.PharmacySale, error)
		List(ctx context.Context) ([]*model.PharmacySale, error)
		ListCreatedBetween(ctx context.Context, start, end time.Time) ([]*model.PharmacySale, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id string, status model.OutboxStatus, errMessage *string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
