package postgres

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/clinicware/admin-api/internal/repository"
)

// buildInQuery expands an IN (?) clause and rebinds it to $n placeholders.
func buildInQuery(query string, ids []int64) (string, []interface{}, error) {
	q, args, err := sqlx.In(query, ids)
	if err != nil {
		return "", nil, fmt.Errorf("failed to build query: %w", err)
	}
	return sqlx.Rebind(sqlx.DOLLAR, q), args, nil
}

type appointmentRepository struct {
	db *sqlx.DB
}

type paymentRepository struct {
	db *sqlx.DB
}

type patientRepository struct {
	db *sqlx.DB
}

type userRepository struct {
	db *sqlx.DB
}

type roleRepository struct {
	db *sqlx.DB
}

type treatmentRepository struct {
	db *sqlx.DB
}

type prescriptionRepository struct {
	db *sqlx.DB
}

type medicineRepository struct {
	db *sqlx.DB
}

type medicineTypeRepository struct {
	db *sqlx.DB
}

type manufacturerRepository struct {
	db *sqlx.DB
}

type pharmacyCustomerRepository struct {
	db *sqlx.DB
}

type pharmacySaleRepository struct {
	db *sqlx.DB
}

type outboxRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func NewPaymentRepository(db *sqlx.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func NewRoleRepository(db *sqlx.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

func NewTreatmentRepository(db *sqlx.DB) repository.TreatmentRepository {
	return &treatmentRepository{db: db}
}

func NewPrescriptionRepository(db *sqlx.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func NewMedicineRepository(db *sqlx.DB) repository.MedicineRepository {
	return &medicineRepository{db: db}
}

func NewMedicineTypeRepository(db *sqlx.DB) repository.MedicineTypeRepository {
	return &medicineTypeRepository{db: db}
}

func NewManufacturerRepository(db *sqlx.DB) repository.ManufacturerRepository {
	return &manufacturerRepository{db: db}
}

func NewPharmacyCustomerRepository(db *sqlx.DB) repository.PharmacyCustomerRepository {
	return &pharmacyCustomerRepository{db: db}
}

func NewPharmacySaleRepository(db *sqlx.DB) repository.PharmacySaleRepository {
	return &pharmacySaleRepository{db: db}
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{db: db}
}
