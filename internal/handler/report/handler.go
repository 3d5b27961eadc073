package report

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicware/admin-api/internal/model"
	"github.com/clinicware/admin-api/internal/service/report"
	"github.com/clinicware/admin-api/pkg/httputil"
	"github.com/clinicware/admin-api/pkg/validator"
)

type Handler struct {
	service   *report.Service
	validator *validator.Validator
}

func NewHandler(service *report.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

func (h *Handler) bindRange(c *gin.Context) (*model.ReportRange, bool) {
	var r model.ReportRange
	if err := c.ShouldBindQuery(&r); err != nil {
		httputil.BadRequest(c, "invalid report range")
		return nil, false
	}
	if err := h.validator.Validate(&r); err != nil {
		httputil.BadRequest(c, err.Error())
		return nil, false
	}
	return &r, true
}

func (h *Handler) PatientStatistics(c *gin.Context) {
	r, ok := h.bindRange(c)
	if !ok {
		return
	}
	stats, err := h.service.PatientStatistics(c.Request.Context(), r)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, stats)
}

func (h *Handler) AppointmentStatistics(c *gin.Context) {
	r, ok := h.bindRange(c)
	if !ok {
		return
	}
	stats, err := h.service.AppointmentStatistics(c.Request.Context(), r)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, stats)
}

func (h *Handler) FinancialStatistics(c *gin.Context) {
	r, ok := h.bindRange(c)
	if !ok {
		return
	}
	stats, err := h.service.FinancialStatistics(c.Request.Context(), r)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, stats)
}

func (h *Handler) PharmacyStatistics(c *gin.Context) {
	r, ok := h.bindRange(c)
	if !ok {
		return
	}
	stats, err := h.service.PharmacyStatistics(c.Request.Context(), r)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, stats)
}

func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, stats)
}
