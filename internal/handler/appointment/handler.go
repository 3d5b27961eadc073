package appointment

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clinicware/admin-api/internal/model"
	"github.com/clinicware/admin-api/internal/scheduling"
	"github.com/clinicware/admin-api/internal/service/appointment"
	"github.com/clinicware/admin-api/pkg/httputil"
	"github.com/clinicware/admin-api/pkg/validator"
)

type Handler struct {
	service   *appointment.Service
	validator *validator.Validator
}

func NewHandler(service *appointment.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	appt, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, appt)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid appointment ID")
		return
	}

	appt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, appt)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid appointment ID")
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	appt, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, appt)
}

type transitionRequest struct {
	Action string `json:"action" binding:"required"`
}

// Transition applies confirm, complete or cancel to an appointment.
func (h *Handler) Transition(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid appointment ID")
		return
	}

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "action is required")
		return
	}

	action := scheduling.Action(req.Action)
	switch action {
	case scheduling.ActionConfirm, scheduling.ActionComplete, scheduling.ActionCancel:
	default:
		httputil.BadRequest(c, "action must be one of [confirm complete cancel]")
		return
	}

	appt, err := h.service.Transition(c.Request.Context(), id, action)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, appt)
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.AppointmentFilters{
		Status:    model.AppointmentStatus(c.Query("status")),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
	if v := c.Query("patient_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httputil.BadRequest(c, "invalid patient ID")
			return
		}
		filters.PatientID = id
	}
	if v := c.Query("dentist_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httputil.BadRequest(c, "invalid dentist ID")
			return
		}
		filters.DentistID = id
	}

	appointments, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, appointments)
}

// AllowedTypes returns the appointment type vocabulary for a treatment
// type, defaulting to dental when none is given.
func (h *Handler) AllowedTypes(c *gin.Context) {
	treatment := model.TreatmentType(c.Query("treatment_type"))
	httputil.OK(c, h.service.AllowedTypes(treatment))
}
