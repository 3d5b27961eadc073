package clinical

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicware/admin-api/internal/model"
	apperrors "github.com/clinicware/admin-api/pkg/errors"
)

type fakeTreatmentRepo struct {
	treatments []*model.Treatment
}

func (r *fakeTreatmentRepo) Create(_ context.Context, treatment *model.Treatment) error {
	treatment.ID = int64(len(r.treatments) + 1)
	r.treatments = append(r.treatments, treatment)
	return nil
}

func (r *fakeTreatmentRepo) ListByAppointment(_ context.Context, _ int64) ([]*model.Treatment, error) {
	return r.treatments, nil
}

func (r *fakeTreatmentRepo) ListByPatient(_ context.Context, _ int64) ([]*model.Treatment, error) {
	return r.treatments, nil
}

type fakePrescriptionRepo struct {
	prescriptions []*model.Prescription
}

func (r *fakePrescriptionRepo) Create(_ context.Context, prescription *model.Prescription) error {
	prescription.ID = int64(len(r.prescriptions) + 1)
	r.prescriptions = append(r.prescriptions, prescription)
	return nil
}

func (r *fakePrescriptionRepo) Get(_ context.Context, id int64) (*model.Prescription, error) {
	for _, p := range r.prescriptions {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errors.New("no rows")
}

func (r *fakePrescriptionRepo) ListByAppointment(_ context.Context, _ int64) ([]*model.Prescription, error) {
	return r.prescriptions, nil
}

func (r *fakePrescriptionRepo) ListByPatient(_ context.Context, _ int64) ([]*model.Prescription, error) {
	return r.prescriptions, nil
}

type fakeApptRepo struct {
	appointments map[int64]*model.Appointment
}

func (r *fakeApptRepo) Create(_ context.Context, _ *model.Appointment) error { return nil }

func (r *fakeApptRepo) Get(_ context.Context, id int64) (*model.Appointment, error) {
	appt, ok := r.appointments[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return appt, nil
}

func (r *fakeApptRepo) Update(_ context.Context, _ *model.Appointment) error { return nil }

func (r *fakeApptRepo) List(_ context.Context, _ *model.AppointmentFilters) ([]*model.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) ListByDateRange(_ context.Context, _, _ string) ([]*model.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) ListByPatient(_ context.Context, _ int64) ([]*model.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) ListUpcoming(_ context.Context, _ string, _ int) ([]*model.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) Count(_ context.Context) (int64, error) { return 0, nil }

func (r *fakeApptRepo) CountByDate(_ context.Context, _ string) (int64, error) { return 0, nil }

type fakeMedicineRepo struct {
	medicines map[int64]*model.Medicine
}

func (r *fakeMedicineRepo) Create(_ context.Context, _ *model.Medicine) error { return nil }

func (r *fakeMedicineRepo) Get(_ context.Context, id int64) (*model.Medicine, error) {
	m, ok := r.medicines[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return m, nil
}

func (r *fakeMedicineRepo) Update(_ context.Context, _ *model.Medicine) error { return nil }
func (r *fakeMedicineRepo) Delete(_ context.Context, _ int64) error           { return nil }

func (r *fakeMedicineRepo) List(_ context.Context, _ string) ([]*model.Medicine, error) {
	return nil, nil
}

func (r *fakeMedicineRepo) ListLowStock(_ context.Context, _ int) ([]*model.Medicine, error) {
	return nil, nil
}

type fakeEmitter struct {
	events []string
	err    error
}

func (e *fakeEmitter) Emit(_ context.Context, eventType string, _ int64, _ interface{}) error {
	if e.err != nil {
		return e.err
	}
	e.events = append(e.events, eventType)
	return nil
}

const assignedDentistID = int64(2)

// newTestService pins today to 2025-06-10 and seeds one appointment per
// relevant date.
func newTestService() *Service {
	apptRepo := &fakeApptRepo{appointments: map[int64]*model.Appointment{
		1: {ID: 1, PatientID: 7, PatientName: "Asha Rao", DentistID: assignedDentistID, DentistName: "Dr. Mehta",
			Date: "2025-06-10", Status: model.AppointmentStatusConfirmed},
		2: {ID: 2, PatientID: 7, DentistID: assignedDentistID, Date: "2025-06-11",
			Status: model.AppointmentStatusConfirmed},
		3: {ID: 3, PatientID: 7, DentistID: assignedDentistID, Date: "2025-06-09",
			Status: model.AppointmentStatusConfirmed},
		4: {ID: 4, PatientID: 7, DentistID: assignedDentistID, Date: "2025-06-10",
			Status: model.AppointmentStatusCompleted},
	}}
	medicineRepo := &fakeMedicineRepo{medicines: map[int64]*model.Medicine{
		30: {ID: 30, Name: "Azithromycin", Type: "tablet"},
	}}

	svc := NewService(&fakeTreatmentRepo{}, &fakePrescriptionRepo{}, apptRepo, medicineRepo, &fakeEmitter{})
	svc.now = func() time.Time {
		return time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	}
	return svc
}

func requireForbidden(t *testing.T, err error) {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
}

func TestCreateTreatmentOnAppointmentDay(t *testing.T) {
	svc := newTestService()

	treatment, err := svc.CreateTreatment(context.Background(), assignedDentistID, &model.CreateTreatmentRequest{
		AppointmentID: 1,
		Description:   "composite filling, upper left molar",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), treatment.AppointmentID)
}

func TestCreateTreatmentRejectsOtherDentist(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateTreatment(context.Background(), 99, &model.CreateTreatmentRequest{
		AppointmentID: 1,
		Description:   "not my patient",
	})
	requireForbidden(t, err)
}

func TestCreateTreatmentRejectsWrongDay(t *testing.T) {
	svc := newTestService()

	for name, apptID := range map[string]int64{"future": 2, "past": 3} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateTreatment(context.Background(), assignedDentistID, &model.CreateTreatmentRequest{
				AppointmentID: apptID,
				Description:   "off-day note",
			})
			requireForbidden(t, err)
		})
	}
}

func TestCreateTreatmentIgnoresStatus(t *testing.T) {
	svc := newTestService()

	// Completed same-day appointment: the day rule is about the date, not
	// the lifecycle state.
	_, err := svc.CreateTreatment(context.Background(), assignedDentistID, &model.CreateTreatmentRequest{
		AppointmentID: 4,
		Description:   "post-completion note",
	})
	require.NoError(t, err)
}

func TestCreatePrescriptionSnapshotsMedicine(t *testing.T) {
	svc := newTestService()

	prescription, err := svc.CreatePrescription(context.Background(), assignedDentistID, &model.CreatePrescriptionRequest{
		AppointmentID: 1,
		Items: []model.CreatePrescriptionItemRequest{
			{MedicineID: 30, Dosage: "500mg", Frequency: "once daily", Duration: "3 days"},
		},
		Notes: "after food",
	})
	require.NoError(t, err)

	require.Len(t, prescription.Items, 1)
	assert.Equal(t, "Azithromycin", prescription.Items[0].MedicineName)
	assert.Equal(t, "tablet", prescription.Items[0].MedicineType)
	assert.Equal(t, "Asha Rao", prescription.PatientName)
	assert.Equal(t, "Dr. Mehta", prescription.DentistName)
}

func TestCreatePrescriptionSucceedsWhenEventWriteFails(t *testing.T) {
	svc := newTestService()
	svc.emitter = &fakeEmitter{err: errors.New("outbox unavailable")}

	prescription, err := svc.CreatePrescription(context.Background(), assignedDentistID, &model.CreatePrescriptionRequest{
		AppointmentID: 1,
		Items: []model.CreatePrescriptionItemRequest{
			{MedicineID: 30, Dosage: "500mg", Frequency: "once daily", Duration: "3 days"},
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, prescription.ID)
}

func TestCreatePrescriptionUnknownMedicine(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreatePrescription(context.Background(), assignedDentistID, &model.CreatePrescriptionRequest{
		AppointmentID: 1,
		Items: []model.CreatePrescriptionItemRequest{
			{MedicineID: 404, Dosage: "500mg", Frequency: "once daily", Duration: "3 days"},
		},
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}
