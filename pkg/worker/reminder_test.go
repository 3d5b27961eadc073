package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicware/admin-api/internal/model"
)

type fakeApptRepo struct {
	appointments []*model.Appointment
}

func (r *fakeApptRepo) Create(_ context.Context, _ *model.Appointment) error { return nil }

func (r *fakeApptRepo) Get(_ context.Context, _ int64) (*model.Appointment, error) {
	return nil, errors.New("no rows")
}

func (r *fakeApptRepo) Update(_ context.Context, _ *model.Appointment) error { return nil }

func (r *fakeApptRepo) List(_ context.Context, _ *model.AppointmentFilters) ([]*model.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) ListByDateRange(_ context.Context, _, _ string) ([]*model.Appointment, error) {
	return r.appointments, nil
}

func (r *fakeApptRepo) ListByPatient(_ context.Context, _ int64) ([]*model.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) ListUpcoming(_ context.Context, _ string, _ int) ([]*model.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) Count(_ context.Context) (int64, error) { return 0, nil }

func (r *fakeApptRepo) CountByDate(_ context.Context, _ string) (int64, error) { return 0, nil }

type fakePatientRepo struct {
	patients map[int64]*model.Patient
}

func (r *fakePatientRepo) Create(_ context.Context, _ *model.Patient) error { return nil }

func (r *fakePatientRepo) Get(_ context.Context, id int64) (*model.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return p, nil
}

func (r *fakePatientRepo) Update(_ context.Context, _ *model.Patient) error { return nil }
func (r *fakePatientRepo) Delete(_ context.Context, _ int64) error          { return nil }

func (r *fakePatientRepo) List(_ context.Context, _ *model.PatientFilters) ([]*model.Patient, int, error) {
	return nil, 0, nil
}

func (r *fakePatientRepo) ListRecent(_ context.Context, _ int) ([]*model.Patient, error) {
	return nil, nil
}

func (r *fakePatientRepo) ListCreatedBetween(_ context.Context, _, _ time.Time) ([]*model.Patient, error) {
	return nil, nil
}

func (r *fakePatientRepo) Count(_ context.Context) (int64, error) { return 0, nil }

func (r *fakePatientRepo) TouchLastVisit(_ context.Context, _ int64, _ time.Time) error { return nil }

type fakeSender struct {
	sent []string
}

func (s *fakeSender) SendAppointmentReminder(to string, _ *model.Appointment) error {
	s.sent = append(s.sent, to)
	return nil
}

func TestReminderRunSkipsCancelledAndUnreachable(t *testing.T) {
	apptRepo := &fakeApptRepo{appointments: []*model.Appointment{
		{ID: 1, PatientID: 1, Status: model.AppointmentStatusScheduled},
		{ID: 2, PatientID: 2, Status: model.AppointmentStatusCancelled},
		{ID: 3, PatientID: 3, Status: model.AppointmentStatusConfirmed}, // no email on file
		{ID: 4, PatientID: 404, Status: model.AppointmentStatusScheduled},
	}}
	patientRepo := &fakePatientRepo{patients: map[int64]*model.Patient{
		1: {ID: 1, Email: "asha@example.com"},
		2: {ID: 2, Email: "ravi@example.com"},
		3: {ID: 3},
	}}
	sender := &fakeSender{}

	w := NewReminderWorker(apptRepo, patientRepo, sender, ReminderConfig{
		Interval:  time.Hour,
		Lookahead: 24 * time.Hour,
	}, testLogger(), testMetrics)

	require.NoError(t, w.run(context.Background()))
	assert.Equal(t, []string{"asha@example.com"}, sender.sent)
}
