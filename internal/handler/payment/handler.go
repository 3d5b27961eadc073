package payment

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clinicware/admin-api/internal/model"
	"github.com/clinicware/admin-api/internal/service/payment"
	"github.com/clinicware/admin-api/pkg/httputil"
	"github.com/clinicware/admin-api/pkg/validator"
)

type Handler struct {
	service   *payment.Service
	validator *validator.Validator
}

func NewHandler(service *payment.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

// Record appends a payment entry to an appointment's ledger. There is no
// update endpoint; corrections are recorded as further entries.
func (h *Handler) Record(c *gin.Context) {
	var req model.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	entry, err := h.service.Record(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, entry)
}

func (h *Handler) ListByAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid appointment ID")
		return
	}

	entries, err := h.service.ListByAppointment(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, entries)
}

func (h *Handler) Summary(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid appointment ID")
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, summary)
}

func (h *Handler) ListByPatient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid patient ID")
		return
	}

	entries, err := h.service.ListByPatient(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, entries)
}
