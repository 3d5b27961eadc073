package patient

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clinicware/admin-api/internal/model"
	"github.com/clinicware/admin-api/internal/service/patient"
	"github.com/clinicware/admin-api/pkg/httputil"
	"github.com/clinicware/admin-api/pkg/validator"
)

type Handler struct {
	service   *patient.Service
	validator *validator.Validator
}

func NewHandler(service *patient.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	patient, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, patient)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid patient ID")
		return
	}

	patient, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, patient)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid patient ID")
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	patient, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, patient)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid patient ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, gin.H{"deleted": id})
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.PatientFilters{Search: c.Query("search")}
	if err := c.ShouldBindQuery(&filters.Pagination); err != nil {
		httputil.BadRequest(c, "invalid pagination parameters")
		return
	}
	filters.Normalize()

	patients, total, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Paginated(c, patients, filters.Page, filters.PageSize, total)
}
