package pharmacy

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

type fakeMedicineRepo struct {
	medicines map[int64]*model.Medicine
}

func (r *fakeMedicineRepo) Create(_ context.Context, medicine *model.Medicine) error {
	medicine.ID = int64(len(r.medicines) + 1)
	r.medicines[medicine.ID] = medicine
	return nil
}

func (r *fakeMedicineRepo) Get(_ context.Context, id int64) (*model.Medicine, error) {
	m, ok := r.medicines[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return m, nil
}

func (r *fakeMedicineRepo) Update(_ context.Context, medicine *model.Medicine) error {
	r.medicines[medicine.ID] = medicine
	return nil
}

func (r *fakeMedicineRepo) Delete(_ context.Context, id int64) error {
	delete(r.medicines, id)
	return nil
}

func (r *fakeMedicineRepo) List(_ context.Context, _ string) ([]*model.Medicine, error) {
	return nil, nil
}

func (r *fakeMedicineRepo) ListLowStock(_ context.Context, _ int) ([]*model.Medicine, error) {
	return nil, nil
}

type fakeTypeRepo struct {
	types map[int64]*model.MedicineType
}

func (r *fakeTypeRepo) Create(_ context.Context, mt *model.MedicineType) error {
	mt.ID = int64(len(r.types) + 1)
	r.types[mt.ID] = mt
	return nil
}

func (r *fakeTypeRepo) Get(_ context.Context, id int64) (*model.MedicineType, error) {
	mt, ok := r.types[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return mt, nil
}

func (r *fakeTypeRepo) GetByName(_ context.Context, name string) (*model.MedicineType, error) {
	for _, mt := range r.types {
		if mt.Name == name {
			return mt, nil
		}
	}
	return nil, errors.New("no rows")
}

func (r *fakeTypeRepo) Update(_ context.Context, mt *model.MedicineType) error {
	r.types[mt.ID] = mt
	return nil
}

func (r *fakeTypeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.types[id]; !ok {
		return errors.New("no rows")
	}
	delete(r.types, id)
	return nil
}

func (r *fakeTypeRepo) List(_ context.Context) ([]*model.MedicineType, error) {
	var out []*model.MedicineType
	for _, mt := range r.types {
		out = append(out, mt)
	}
	return out, nil
}

type fakeManufacturerRepo struct {
	manufacturers map[int64]*model.Manufacturer
}

func (r *fakeManufacturerRepo) Create(_ context.Context, m *model.Manufacturer) error {
	m.ID = int64(len(r.manufacturers) + 1)
	r.manufacturers[m.ID] = m
	return nil
}

func (r *fakeManufacturerRepo) Get(_ context.Context, id int64) (*model.Manufacturer, error) {
	m, ok := r.manufacturers[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return m, nil
}

func (r *fakeManufacturerRepo) GetByName(_ context.Context, name string) (*model.Manufacturer, error) {
	for _, m := range r.manufacturers {
		if m.Name == name {
			return m, nil
		}
	}
	return nil, errors.New("no rows")
}

func (r *fakeManufacturerRepo) Update(_ context.Context, m *model.Manufacturer) error {
	r.manufacturers[m.ID] = m
	return nil
}

func (r *fakeManufacturerRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.manufacturers[id]; !ok {
		return errors.New("no rows")
	}
	delete(r.manufacturers, id)
	return nil
}

func (r *fakeManufacturerRepo) List(_ context.Context) ([]*model.Manufacturer, error) {
	var out []*model.Manufacturer
	for _, m := range r.manufacturers {
		out = append(out, m)
	}
	return out, nil
}

type fakeCustomerRepo struct {
	customers map[string]*model.PharmacyCustomer
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *model.PharmacyCustomer) error {
	customer.ID = int64(len(r.customers) + 1)
	r.customers[customer.Phone] = customer
	return nil
}

func (r *fakeCustomerRepo) GetByPhone(_ context.Context, phone string) (*model.PharmacyCustomer, error) {
	c, ok := r.customers[phone]
	if !ok {
		return nil, errors.New("no rows")
	}
	return c, nil
}

func (r *fakeCustomerRepo) List(_ context.Context) ([]*model.PharmacyCustomer, error) {
	return nil, nil
}

type fakeSaleRepo struct {
	sales []*model.PharmacySale
}

func (r *fakeSaleRepo) Create(_ context.Context, sale *model.PharmacySale) error {
	sale.ID = int64(len(r.sales) + 1)
	r.sales = append(r.sales, sale)
	return nil
}

func (r *fakeSaleRepo) Get(_ context.Context, id int64) (*model.PharmacySale, error) {
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, errors.New("no rows")
}

func (r *fakeSaleRepo) List(_ context.Context) ([]*model.PharmacySale, error) {
	return r.sales, nil
}

func (r *fakeSaleRepo) ListCreatedBetween(_ context.Context, _, _ time.Time) ([]*model.PharmacySale, error) {
	return r.sales, nil
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

func newTestService() (*Service, *fakeSaleRepo) {
	medicineRepo := &fakeMedicineRepo{medicines: map[int64]*model.Medicine{
		1: {ID: 1, Name: "Amoxicillin", Type: "tablet", Stock: 50, Price: 120.00},
		2: {ID: 2, Name: "Ibuprofen", Type: "tablet", Stock: 3, Price: 45.50},
	}}
	typeRepo := &fakeTypeRepo{types: map[int64]*model.MedicineType{
		1: {ID: 1, Name: "tablet"},
	}}
	manufacturerRepo := &fakeManufacturerRepo{manufacturers: map[int64]*model.Manufacturer{
		1: {ID: 1, Name: "Cipla"},
	}}
	customerRepo := &fakeCustomerRepo{customers: map[string]*model.PharmacyCustomer{
		"9800000001": {ID: 1, Name: "Counter Customer", Phone: "9800000001"},
	}}
	saleRepo := &fakeSaleRepo{}
	return NewService(medicineRepo, typeRepo, manufacturerRepo, customerRepo, saleRepo, &fakeEmitter{}), saleRepo
}

func TestCreateSaleComputesGST(t *testing.T) {
	svc, _ := newTestService()

	sale, err := svc.CreateSale(context.Background(), &model.CreatePharmacySaleRequest{
		CustomerPhone: "9800000001",
		Items: []model.CreatePharmacySaleItemRequest{
			{MedicineID: 1, Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 240.00, sale.Subtotal)
	assert.Equal(t, 21.60, sale.SGST)
	assert.Equal(t, 21.60, sale.CGST)
	assert.Equal(t, 283.20, sale.Total)
	assert.Equal(t, "Counter Customer", sale.CustomerName)
}

func TestCreateSaleRoundsPerLine(t *testing.T) {
	svc, _ := newTestService()

	// 3 x 45.50 = 136.50; 9% of that is 12.285, rounded to 12.29.
	sale, err := svc.CreateSale(context.Background(), &model.CreatePharmacySaleRequest{
		CustomerPhone: "9800000001",
		Items: []model.CreatePharmacySaleItemRequest{
			{MedicineID: 2, Quantity: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 136.50, sale.Subtotal)
	assert.Equal(t, 12.29, sale.SGST)
	assert.Equal(t, 12.29, sale.CGST)
	assert.Equal(t, 161.08, sale.Total)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 136.50, sale.Items[0].TotalPrice)
	assert.Equal(t, "Ibuprofen", sale.Items[0].MedicineName)
}

func TestCreateSaleAppliesDiscount(t *testing.T) {
	svc, _ := newTestService()

	sale, err := svc.CreateSale(context.Background(), &model.CreatePharmacySaleRequest{
		CustomerPhone: "9800000001",
		Items: []model.CreatePharmacySaleItemRequest{
			{MedicineID: 1, Quantity: 1},
		},
		Discount: 20.00,
	})
	require.NoError(t, err)

	// 120.00 + 10.80 + 10.80 - 20.00
	assert.Equal(t, 121.60, sale.Total)
}

func TestCreateSaleRejectsExcessiveDiscount(t *testing.T) {
	svc, saleRepo := newTestService()

	_, err := svc.CreateSale(context.Background(), &model.CreatePharmacySaleRequest{
		CustomerPhone: "9800000001",
		Items: []model.CreatePharmacySaleItemRequest{
			{MedicineID: 1, Quantity: 1},
		},
		Discount: 500.00,
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
	assert.Empty(t, saleRepo.sales)
}

func TestCreateSaleRejectsInsufficientStock(t *testing.T) {
	svc, saleRepo := newTestService()

	_, err := svc.CreateSale(context.Background(), &model.CreatePharmacySaleRequest{
		CustomerPhone: "9800000001",
		Items: []model.CreatePharmacySaleItemRequest{
			{MedicineID: 2, Quantity: 5},
		},
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Contains(t, appErr.Message, "Ibuprofen")
	assert.Empty(t, saleRepo.sales)
}

func TestCreateSaleUnknownCustomer(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateSale(context.Background(), &model.CreatePharmacySaleRequest{
		CustomerPhone: "0000000000",
		Items: []model.CreatePharmacySaleItemRequest{
			{MedicineID: 1, Quantity: 1},
		},
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestCreateSaleSucceedsWhenEventWriteFails(t *testing.T) {
	svc, saleRepo := newTestService()
	svc.emitter = &fakeEmitter{err: errors.New("outbox unavailable")}

	sale, err := svc.CreateSale(context.Background(), &model.CreatePharmacySaleRequest{
		CustomerPhone: "9800000001",
		Items: []model.CreatePharmacySaleItemRequest{
			{MedicineID: 1, Quantity: 1},
		},
	})
	require.NoError(t, err)

	// Stock was decremented and the invoice stored; reporting failure now
	// would get the sale rung up twice.
	assert.Len(t, saleRepo.sales, 1)
	assert.Equal(t, sale.ID, saleRepo.sales[0].ID)
}

func TestMedicineTypeLifecycle(t *testing.T) {
	svc, _ := newTestService()

	mt, err := svc.CreateMedicineType(context.Background(), &model.SaveMedicineTypeRequest{Name: "syrup"})
	require.NoError(t, err)
	require.NotZero(t, mt.ID)

	updated, err := svc.UpdateMedicineType(context.Background(), mt.ID, &model.SaveMedicineTypeRequest{Name: "oral syrup"})
	require.NoError(t, err)
	assert.Equal(t, "oral syrup", updated.Name)

	types, err := svc.ListMedicineTypes(context.Background())
	require.NoError(t, err)
	assert.Len(t, types, 2)

	require.NoError(t, svc.DeleteMedicineType(context.Background(), mt.ID))
}

func TestCreateMedicineTypeRejectsDuplicate(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateMedicineType(context.Background(), &model.SaveMedicineTypeRequest{Name: "tablet"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestCreateManufacturerRejectsDuplicate(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateManufacturer(context.Background(), &model.SaveManufacturerRequest{Name: "Cipla"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestUpdateManufacturerUnknown(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateManufacturer(context.Background(), 404, &model.SaveManufacturerRequest{Name: "Sun Pharma"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestCreateCustomerRejectsDuplicatePhone(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateCustomer(context.Background(), &model.CreatePharmacyCustomerRequest{
		Name:  "Duplicate",
		Phone: "9800000001",
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}
