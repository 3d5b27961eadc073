package patient

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

type fakePatientRepo struct {
	patients    map[int64]*model.Patient
	nextID      int64
	lastFilters *model.PatientFilters
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[int64]*model.Patient)}
}

func (r *fakePatientRepo) Create(_ context.Context, patient *model.Patient) error {
	r.nextID++
	patient.ID = r.nextID
	stored := *patient
	r.patients[patient.ID] = &stored
	return nil
}

func (r *fakePatientRepo) Get(_ context.Context, id int64) (*model.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	copied := *p
	return &copied, nil
}

func (r *fakePatientRepo) Update(_ context.Context, patient *model.Patient) error {
	stored := *patient
	r.patients[patient.ID] = &stored
	return nil
}

func (r *fakePatientRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.patients[id]; !ok {
		return errors.New("no rows")
	}
	delete(r.patients, id)
	return nil
}

func (r *fakePatientRepo) List(_ context.Context, filters *model.PatientFilters) ([]*model.Patient, int, error) {
	r.lastFilters = filters
	var out []*model.Patient
	for _, p := range r.patients {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (r *fakePatientRepo) ListRecent(_ context.Context, _ int) ([]*model.Patient, error) {
	return nil, nil
}

func (r *fakePatientRepo) ListCreatedBetween(_ context.Context, _, _ time.Time) ([]*model.Patient, error) {
	return nil, nil
}

func (r *fakePatientRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.patients)), nil
}

func (r *fakePatientRepo) TouchLastVisit(_ context.Context, _ int64, _ time.Time) error { return nil }

func seedPatient(t *testing.T, svc *Service) *model.Patient {
	t.Helper()
	patient, err := svc.Create(context.Background(), &model.CreatePatientRequest{
		FirstName:   "Asha",
		LastName:    "Rao",
		Email:       "asha@example.com",
		Phone:       "9000000001",
		DateOfBirth: "1990-04-12",
		Gender:      "female",
	})
	require.NoError(t, err)
	return patient
}

func TestUpdateOnlyTouchesProvidedFields(t *testing.T) {
	repo := newFakePatientRepo()
	svc := NewService(repo)
	created := seedPatient(t, svc)

	phone := "9000000002"
	updated, err := svc.Update(context.Background(), created.ID, &model.UpdatePatientRequest{
		Phone: &phone,
	})
	require.NoError(t, err)

	assert.Equal(t, "9000000002", updated.Phone)
	assert.Equal(t, "Asha", updated.FirstName)
	assert.Equal(t, "asha@example.com", updated.Email)
}

func TestUpdateUnknownPatient(t *testing.T) {
	svc := NewService(newFakePatientRepo())

	phone := "9000000002"
	_, err := svc.Update(context.Background(), 404, &model.UpdatePatientRequest{Phone: &phone})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestListNormalizesPagination(t *testing.T) {
	repo := newFakePatientRepo()
	svc := NewService(repo)
	seedPatient(t, svc)

	_, total, err := svc.List(context.Background(), &model.PatientFilters{
		Pagination: model.Pagination{Page: 0, PageSize: 5000},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, total)
	assert.Equal(t, 1, repo.lastFilters.Page)
	assert.Equal(t, 20, repo.lastFilters.PageSize)
}

func TestDeleteUnknownPatient(t *testing.T) {
	svc := NewService(newFakePatientRepo())

	err := svc.Delete(context.Background(), 404)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}
