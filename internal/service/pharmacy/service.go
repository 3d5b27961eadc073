package pharmacy

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/clinicware/admin-api/internal/model"
	"github.com/clinicware/admin-api/internal/repository"
	"github.com/clinicware/admin-api/internal/service/event"
	apperrors "github.com/clinicware/admin-api/pkg/errors"
)

// GST is split equally between state and central components.
const gstRate = 0.09

// Service runs the in-clinic pharmacy: the medicine catalogue with its
// configurable type and manufacturer vocabularies, walk-in customers and
// point-of-sale invoices.
type Service struct {
	medicineRepo     repository.MedicineRepository
	typeRepo         repository.MedicineTypeRepository
	manufacturerRepo repository.ManufacturerRepository
	customerRepo     repository.PharmacyCustomerRepository
	saleRepo         repository.PharmacySaleRepository
	emitter          event.Emitter
}

func NewService(
	medicineRepo repository.MedicineRepository,
	typeRepo repository.MedicineTypeRepository,
	manufacturerRepo repository.ManufacturerRepository,
	customerRepo repository.PharmacyCustomerRepository,
	saleRepo repository.PharmacySaleRepository,
	emitter event.Emitter,
) *Service {
	return &Service{
		medicineRepo:     medicineRepo,
		typeRepo:         typeRepo,
		manufacturerRepo: manufacturerRepo,
		customerRepo:     customerRepo,
		saleRepo:         saleRepo,
		emitter:          emitter,
	}
}

func (s *Service) CreateMedicine(ctx context.Context, req *model.CreateMedicineRequest) (*model.Medicine, error) {
	medicine := &model.Medicine{
		Name:         req.Name,
		Type:         req.Type,
		Description:  req.Description,
		Manufacturer: req.Manufacturer,
		Stock:        req.Stock,
		Unit:         req.Unit,
		Price:        req.Price,
		DateOfMfg:    req.DateOfMfg,
		DateOfExpiry: req.DateOfExpiry,
	}
	if err := s.medicineRepo.Create(ctx, medicine); err != nil {
		return nil, fmt.Errorf("failed to create medicine: %w", err)
	}
	return medicine, nil
}

func (s *Service) GetMedicine(ctx context.Context, id int64) (*model.Medicine, error) {
	medicine, err := s.medicineRepo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("medicine", err)
	}
	return medicine, nil
}

func (s *Service) UpdateMedicine(ctx context.Context, id int64, req *model.UpdateMedicineRequest) (*model.Medicine, error) {
	medicine, err := s.medicineRepo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("medicine", err)
	}

	if req.Name != nil {
		medicine.Name = *req.Name
	}
	if req.Type != nil {
		medicine.Type = *req.Type
	}
	if req.Description != nil {
		medicine.Description = *req.Description
	}
	if req.Manufacturer != nil {
		medicine.Manufacturer = *req.Manufacturer
	}
	if req.Stock != nil {
		medicine.Stock = *req.Stock
	}
	if req.Unit != nil {
		medicine.Unit = *req.Unit
	}
	if req.Price != nil {
		medicine.Price = *req.Price
	}
	if req.DateOfMfg != nil {
		medicine.DateOfMfg = req.DateOfMfg
	}
	if req.DateOfExpiry != nil {
		medicine.DateOfExpiry = req.DateOfExpiry
	}

	if err := s.medicineRepo.Update(ctx, medicine); err != nil {
		return nil, fmt.Errorf("failed to update medicine: %w", err)
	}
	return medicine, nil
}

func (s *Service) DeleteMedicine(ctx context.Context, id int64) error {
	if err := s.medicineRepo.Delete(ctx, id); err != nil {
		return apperrors.NotFound("medicine", err)
	}
	return nil
}

func (s *Service) ListMedicines(ctx context.Context, search string) ([]*model.Medicine, error) {
	medicines, err := s.medicineRepo.List(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	return medicines, nil
}

func (s *Service) ListMedicineTypes(ctx context.Context) ([]*model.MedicineType, error) {
	types, err := s.typeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list medicine types: %w", err)
	}
	return types, nil
}

func (s *Service) CreateMedicineType(ctx context.Context, req *model.SaveMedicineTypeRequest) (*model.MedicineType, error) {
	if _, err := s.typeRepo.GetByName(ctx, req.Name); err == nil {
		return nil, apperrors.Conflict("medicine type already exists", nil)
	}

	mt := &model.MedicineType{Name: req.Name}
	if err := s.typeRepo.Create(ctx, mt); err != nil {
		return nil, fmt.Errorf("failed to create medicine type: %w", err)
	}
	return mt, nil
}

func (s *Service) UpdateMedicineType(ctx context.Context, id int64, req *model.SaveMedicineTypeRequest) (*model.MedicineType, error) {
	mt, err := s.typeRepo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("medicine type", err)
	}

	mt.Name = req.Name
	if err := s.typeRepo.Update(ctx, mt); err != nil {
		return nil, fmt.Errorf("failed to update medicine type: %w", err)
	}
	return mt, nil
}

func (s *Service) DeleteMedicineType(ctx context.Context, id int64) error {
	if err := s.typeRepo.Delete(ctx, id); err != nil {
		return apperrors.NotFound("medicine type", err)
	}
	return nil
}

func (s *Service) ListManufacturers(ctx context.Context) ([]*model.Manufacturer, error) {
	manufacturers, err := s.manufacturerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list manufacturers: %w", err)
	}
	return manufacturers, nil
}

func (s *Service) CreateManufacturer(ctx context.Context, req *model.SaveManufacturerRequest) (*model.Manufacturer, error) {
	if _, err := s.manufacturerRepo.GetByName(ctx, req.Name); err == nil {
		return nil, apperrors.Conflict("manufacturer already exists", nil)
	}

	m := &model.Manufacturer{Name: req.Name}
	if err := s.manufacturerRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create manufacturer: %w", err)
	}
	return m, nil
}

func (s *Service) UpdateManufacturer(ctx context.Context, id int64, req *model.SaveManufacturerRequest) (*model.Manufacturer, error) {
	m, err := s.manufacturerRepo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("manufacturer", err)
	}

	m.Name = req.Name
	if err := s.manufacturerRepo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update manufacturer: %w", err)
	}
	return m, nil
}

func (s *Service) DeleteManufacturer(ctx context.Context, id int64) error {
	if err := s.manufacturerRepo.Delete(ctx, id); err != nil {
		return apperrors.NotFound("manufacturer", err)
	}
	return nil
}

func (s *Service) CreateCustomer(ctx context.Context, req *model.CreatePharmacyCustomerRequest) (*model.PharmacyCustomer, error) {
	if _, err := s.customerRepo.GetByPhone(ctx, req.Phone); err == nil {
		return nil, apperrors.Conflict("customer with this phone already exists", nil)
	}

	customer := &model.PharmacyCustomer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

func (s *Service) GetCustomerByPhone(ctx context.Context, phone string) (*model.PharmacyCustomer, error) {
	customer, err := s.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, apperrors.NotFound("customer", err)
	}
	return customer, nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]*model.PharmacyCustomer, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// CreateSale prices a POS invoice and persists it. Unit prices and names are
// snapshotted from the catalogue at sale time; stock is decremented in the
// same transaction as the insert and an insufficiently stocked line rejects
// the whole sale.
func (s *Service) CreateSale(ctx context.Context, req *model.CreatePharmacySaleRequest) (*model.PharmacySale, error) {
	customer, err := s.customerRepo.GetByPhone(ctx, req.CustomerPhone)
	if err != nil {
		return nil, apperrors.NotFound("customer", err)
	}

	var subtotal float64
	items := make([]model.PharmacySaleItem, 0, len(req.Items))
	for _, line := range req.Items {
		medicine, err := s.medicineRepo.Get(ctx, line.MedicineID)
		if err != nil {
			return nil, apperrors.NotFound("medicine", err)
		}
		if medicine.Stock < line.Quantity {
			return nil, apperrors.Conflict(fmt.Sprintf("insufficient stock for %s", medicine.Name), nil)
		}

		lineTotal := round2(medicine.Price * float64(line.Quantity))
		subtotal += lineTotal
		items = append(items, model.PharmacySaleItem{
			MedicineID:   medicine.ID,
			MedicineName: medicine.Name,
			Quantity:     line.Quantity,
			UnitPrice:    medicine.Price,
			TotalPrice:   lineTotal,
		})
	}

	subtotal = round2(subtotal)
	sgst := round2(subtotal * gstRate)
	cgst := round2(subtotal * gstRate)
	total := round2(subtotal + sgst + cgst - req.Discount)
	if total < 0 {
		return nil, apperrors.BadRequest("discount exceeds invoice total", nil)
	}

	sale := &model.PharmacySale{
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		CustomerPhone: customer.Phone,
		Items:         items,
		Subtotal:      subtotal,
		SGST:          sgst,
		CGST:          cgst,
		Discount:      req.Discount,
		Total:         total,
	}
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, apperrors.Conflict("failed to create sale", err)
	}

	// Stock is already decremented; failing the invoice now would make
	// the operator ring it up twice.
	if err := s.emitter.Emit(ctx, event.TypePharmacySaleCreated, sale.ID, sale); err != nil {
		log.Error().Err(err).Int64("sale_id", sale.ID).Msg("failed to record sale event")
	}
	return sale, nil
}

func (s *Service) GetSale(ctx context.Context, id int64) (*model.PharmacySale, error) {
	sale, err := s.saleRepo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("sale", err)
	}
	return sale, nil
}

func (s *Service) ListSales(ctx context.Context) ([]*model.PharmacySale, error) {
	sales, err := s.saleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
