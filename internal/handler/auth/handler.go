package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicware/admin-api/internal/model"
	"github.com/clinicware/admin-api/internal/service/auth"
	"github.com/clinicware/admin-api/pkg/httputil"
	"github.com/clinicware/admin-api/pkg/validator"
)

type Handler struct {
	service   *auth.Service
	validator *validator.Validator
}

func NewHandler(service *auth.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, resp)
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, user)
}
