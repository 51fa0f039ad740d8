package settings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/williandsn10/asbarberpro/internal/api"
	"github.com/williandsn10/asbarberpro/internal/logger"
	"github.com/williandsn10/asbarberpro/internal/schedule"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Get working hours
// @Description  Effective business hours; defaults apply until an admin saves them
// @Tags         schedule,admin
// @Produce      json
// @Success      200 {object} settings.WorkingHoursResponse
// @Failure      422 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /schedule/working-hours [get]
// @Router       /admin/settings/working-hours [get]
func (h *Handler) GetWorkingHours(c *gin.Context) {
	hours, isDefault, err := h.service.EffectiveWorkingHours(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load working hours")
		return
	}

	c.JSON(http.StatusOK, toWorkingHoursResponse(hours, isDefault))
}

// @Summary      Update working hours
// @Tags         admin,settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body settings.UpdateWorkingHoursRequest true "Working hours"
// @Success      200 {object} settings.WorkingHoursResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/settings/working-hours [put]
func (h *Handler) UpdateWorkingHours(c *gin.Context) {
	var req UpdateWorkingHoursRequest
	if !api.BindStrictJSON(c, &req) {
		return
	}

	hours, err := h.service.UpdateWorkingHours(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to save working hours")
		return
	}

	c.JSON(http.StatusOK, toWorkingHoursResponse(hours, false))
}

// @Summary      Get closed weekdays
// @Description  Weekdays the shop never opens, 0 = Sunday
// @Tags         schedule,admin
// @Produce      json
// @Success      200 {object} settings.ClosedDaysResponse
// @Failure      422 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /schedule/closed-days [get]
// @Router       /admin/settings/closed-days [get]
func (h *Handler) GetClosedDays(c *gin.Context) {
	days, err := h.service.ClosedDays(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load closed days")
		return
	}

	c.JSON(http.StatusOK, ClosedDaysResponse{Days: days.Ints()})
}

// @Summary      Update closed weekdays
// @Tags         admin,settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body settings.UpdateClosedDaysRequest true "Closed weekdays"
// @Success      200 {object} settings.ClosedDaysResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/settings/closed-days [put]
func (h *Handler) UpdateClosedDays(c *gin.Context) {
	var req UpdateClosedDaysRequest
	if !api.BindStrictJSON(c, &req) {
		return
	}

	days, err := h.service.UpdateClosedDays(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to save closed days")
		return
	}

	c.JSON(http.StatusOK, ClosedDaysResponse{Days: days.Ints()})
}

func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidSettings):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, schedule.ErrConfiguration):
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}

func toWorkingHoursResponse(h schedule.WorkingHours, isDefault bool) WorkingHoursResponse {
	return WorkingHoursResponse{
		OpeningTime:  h.OpeningTime.String(),
		ClosingTime:  h.ClosingTime.String(),
		SlotInterval: h.SlotInterval,
		IsDefault:    isDefault,
	}
}
