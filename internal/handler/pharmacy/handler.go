package pharmacy

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clinicware/admin-api/internal/model"
	"github.com/clinicware/admin-api/internal/service/pharmacy"
	"github.com/clinicware/admin-api/pkg/httputil"
	"github.com/clinicware/admin-api/pkg/validator"
)

type Handler struct {
	service   *pharmacy.Service
	validator *validator.Validator
}

func NewHandler(service *pharmacy.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

func (h *Handler) CreateMedicine(c *gin.Context) {
	var req model.CreateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	medicine, err := h.service.CreateMedicine(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, medicine)
}

func (h *Handler) GetMedicine(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid medicine ID")
		return
	}

	medicine, err := h.service.GetMedicine(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, medicine)
}

func (h *Handler) UpdateMedicine(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid medicine ID")
		return
	}

	var req model.UpdateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	medicine, err := h.service.UpdateMedicine(c.Request.Context(), id, &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, medicine)
}

func (h *Handler) DeleteMedicine(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid medicine ID")
		return
	}

	if err := h.service.DeleteMedicine(c.Request.Context(), id); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, gin.H{"deleted": id})
}

func (h *Handler) ListMedicines(c *gin.Context) {
	medicines, err := h.service.ListMedicines(c.Request.Context(), c.Query("search"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, medicines)
}

func (h *Handler) ListMedicineTypes(c *gin.Context) {
	types, err := h.service.ListMedicineTypes(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, types)
}

func (h *Handler) CreateMedicineType(c *gin.Context) {
	var req model.SaveMedicineTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	mt, err := h.service.CreateMedicineType(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, mt)
}

func (h *Handler) UpdateMedicineType(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid medicine type ID")
		return
	}

	var req model.SaveMedicineTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	mt, err := h.service.UpdateMedicineType(c.Request.Context(), id, &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, mt)
}

func (h *Handler) DeleteMedicineType(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid medicine type ID")
		return
	}

	if err := h.service.DeleteMedicineType(c.Request.Context(), id); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, gin.H{"deleted": id})
}

func (h *Handler) ListManufacturers(c *gin.Context) {
	manufacturers, err := h.service.ListManufacturers(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, manufacturers)
}

func (h *Handler) CreateManufacturer(c *gin.Context) {
	var req model.SaveManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	m, err := h.service.CreateManufacturer(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, m)
}

func (h *Handler) UpdateManufacturer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid manufacturer ID")
		return
	}

	var req model.SaveManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	m, err := h.service.UpdateManufacturer(c.Request.Context(), id, &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, m)
}

func (h *Handler) DeleteManufacturer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid manufacturer ID")
		return
	}

	if err := h.service.DeleteManufacturer(c.Request.Context(), id); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, gin.H{"deleted": id})
}

func (h *Handler) CreateCustomer(c *gin.Context) {
	var req model.CreatePharmacyCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	customer, err := h.service.CreateCustomer(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, customer)
}

// GetCustomerByPhone powers the POS customer lookup as the operator keys a
// phone number.
func (h *Handler) GetCustomerByPhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		httputil.BadRequest(c, "phone is required")
		return
	}

	customer, err := h.service.GetCustomerByPhone(c.Request.Context(), phone)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, customer)
}

func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.service.ListCustomers(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, customers)
}

func (h *Handler) CreateSale(c *gin.Context) {
	var req model.CreatePharmacySaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	sale, err := h.service.CreateSale(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, sale)
}

func (h *Handler) GetSale(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid sale ID")
		return
	}

	sale, err := h.service.GetSale(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, sale)
}

func (h *Handler) ListSales(c *gin.Context) {
	sales, err := h.service.ListSales(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, sales)
}
