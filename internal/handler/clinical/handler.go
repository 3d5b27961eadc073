package clinical

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clinicware/admin-api/internal/model"
	"github.com/clinicware/admin-api/internal/service/clinical"
	"github.com/clinicware/admin-api/pkg/httputil"
	"github.com/clinicware/admin-api/pkg/validator"
)

type Handler struct {
	service   *clinical.Service
	validator *validator.Validator
}

func NewHandler(service *clinical.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

func (h *Handler) CreateTreatment(c *gin.Context) {
	var req model.CreateTreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	treatment, err := h.service.CreateTreatment(c.Request.Context(), c.GetInt64("user_id"), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, treatment)
}

func (h *Handler) ListTreatmentsByAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid appointment ID")
		return
	}

	treatments, err := h.service.ListTreatmentsByAppointment(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, treatments)
}

func (h *Handler) ListTreatmentsByPatient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid patient ID")
		return
	}

	treatments, err := h.service.ListTreatmentsByPatient(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, treatments)
}

func (h *Handler) CreatePrescription(c *gin.Context) {
	var req model.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	prescription, err := h.service.CreatePrescription(c.Request.Context(), c.GetInt64("user_id"), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, prescription)
}

func (h *Handler) GetPrescription(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid prescription ID")
		return
	}

	prescription, err := h.service.GetPrescription(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, prescription)
}

func (h *Handler) ListPrescriptionsByAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid appointment ID")
		return
	}

	prescriptions, err := h.service.ListPrescriptionsByAppointment(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, prescriptions)
}

func (h *Handler) ListPrescriptionsByPatient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid patient ID")
		return
	}

	prescriptions, err := h.service.ListPrescriptionsByPatient(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, prescriptions)
}
