package appointment

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/williandsn10/asbarberpro/internal/api"
	"github.com/williandsn10/asbarberpro/internal/auth"
	"github.com/williandsn10/asbarberpro/internal/catalog"
	"github.com/williandsn10/asbarberpro/internal/logger"
	"github.com/williandsn10/asbarberpro/internal/schedule"
	"github.com/williandsn10/asbarberpro/internal/user"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetAvailability godoc
// @Summary      Available slots for a date
// @Description  Start times still open on the date, after closed weekdays, blocked times and live appointments are removed.
// @Tags         schedule
// @Produce      json
// @Param        date query string true "Date (YYYY-MM-DD)"
// @Success      200 {object} appointment.AvailabilityResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      422 {object} api.ErrorResponse
// @Failure      503 {object} api.ErrorResponse
// @Router       /availability [get]
func (h *Handler) GetAvailability(c *gin.Context) {
	date, ok := requiredDate(c)
	if !ok {
		return
	}

	slots, err := h.service.Availability(c.Request.Context(), date)
	if err != nil {
		respondError(c, err, "Failed to compute availability")
		return
	}

	c.JSON(http.StatusOK, AvailabilityResponse{Date: date.String(), Slots: slots})
}

// Book godoc
// @Summary      Book an appointment
// @Description  Requests a slot for the authenticated client. The appointment starts as pending.
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appointment.BookRequest true "Booking"
// @Success      201 {object} appointment.Appointment
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      422 {object} api.ErrorResponse
// @Failure      503 {object} api.ErrorResponse
// @Router       /appointments [post]
func (h *Handler) Book(c *gin.Context) {
	clientID, ok := currentUser(c)
	if !ok {
		return
	}

	var req BookRequest
	if !api.BindJSON(c, &req) {
		return
	}

	a, err := h.service.Book(c.Request.Context(), clientID, req)
	if err != nil {
		respondError(c, err, "Failed to book appointment")
		return
	}

	c.JSON(http.StatusCreated, a)
}

// ListMine godoc
// @Summary      My appointments
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} appointment.AppointmentWithDetails
// @Failure      401 {object} api.ErrorResponse
// @Router       /appointments [get]
func (h *Handler) ListMine(c *gin.Context) {
	clientID, ok := currentUser(c)
	if !ok {
		return
	}

	list, err := h.service.ListForClient(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err, "Failed to fetch appointments")
		return
	}

	c.JSON(http.StatusOK, list)
}

// CancelMine godoc
// @Summary      Cancel my appointment
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Appointment ID"
// @Success      200 {object} appointment.Appointment
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /appointments/{id}/cancel [post]
func (h *Handler) CancelMine(c *gin.Context) {
	clientID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	a, err := h.service.ClientCancel(c.Request.Context(), clientID, id)
	if err != nil {
		respondError(c, err, "Failed to cancel appointment")
		return
	}

	c.JSON(http.StatusOK, a)
}

// @Summary      Appointments on a date
// @Tags         admin,appointments
// @Produce      json
// @Security     BearerAuth
// @Param        date query string true "Date (YYYY-MM-DD)"
// @Success      200 {array} appointment.AppointmentWithDetails
// @Failure      400 {object} api.ErrorResponse
// @Router       /admin/appointments [get]
func (h *Handler) ListByDate(c *gin.Context) {
	date, ok := requiredDate(c)
	if !ok {
		return
	}

	list, err := h.service.ListByDate(c.Request.Context(), date)
	if err != nil {
		respondError(c, err, "Failed to fetch appointments")
		return
	}

	c.JSON(http.StatusOK, list)
}

// @Summary      Book on behalf of a client
// @Tags         admin,appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appointment.AdminBookRequest true "Booking"
// @Success      201 {object} appointment.Appointment
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/appointments [post]
func (h *Handler) AdminBook(c *gin.Context) {
	var req AdminBookRequest
	if !api.BindJSON(c, &req) {
		return
	}

	a, err := h.service.AdminBook(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to book appointment")
		return
	}

	c.JSON(http.StatusCreated, a)
}

// @Summary      Accept a pending appointment
// @Tags         admin,appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Appointment ID"
// @Success      200 {object} appointment.Appointment
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/appointments/{id}/accept [post]
func (h *Handler) Accept(c *gin.Context) {
	h.changeStatus(c, h.service.Accept)
}

// @Summary      Mark a scheduled appointment completed
// @Tags         admin,appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Appointment ID"
// @Success      200 {object} appointment.Appointment
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/appointments/{id}/complete [post]
func (h *Handler) Complete(c *gin.Context) {
	h.changeStatus(c, h.service.Complete)
}

// @Summary      Reject a pending appointment
// @Tags         admin,appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Appointment ID"
// @Success      200 {object} appointment.Appointment
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/appointments/{id}/reject [post]
func (h *Handler) Reject(c *gin.Context) {
	h.changeStatus(c, h.service.Reject)
}

// @Summary      Cancel an appointment
// @Tags         admin,appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Appointment ID"
// @Success      200 {object} appointment.Appointment
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/appointments/{id}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	h.changeStatus(c, h.service.Cancel)
}

// @Summary      Delete all appointments
// @Tags         admin,settings
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} api.DeletedResponse
// @Router       /admin/appointments [delete]
func (h *Handler) DeleteAll(c *gin.Context) {
	n, err := h.service.DeleteAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to delete appointments")
		return
	}

	c.JSON(http.StatusOK, api.DeletedResponse{Deleted: n})
}

type statusChange func(ctx context.Context, id uuid.UUID) (*Appointment, error)

func (h *Handler) changeStatus(c *gin.Context, change statusChange) {
	id, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	a, err := change(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to update appointment")
		return
	}

	c.JSON(http.StatusOK, a)
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
	}
	return id, ok
}

func requiredDate(c *gin.Context) (schedule.Date, bool) {
	d, err := schedule.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "date query parameter must be YYYY-MM-DD"})
		return schedule.Date{}, false
	}
	return d, true
}

func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidSlot), errors.Is(err, ErrSlotInPast), errors.Is(err, ErrNotAClient):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Appointment belongs to another client"})
	case errors.Is(err, ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Appointment not found"})
	case errors.Is(err, catalog.ErrServiceNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Service not found"})
	case errors.Is(err, user.ErrUserNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Client not found"})
	case errors.Is(err, ErrSlotNoLongerAvailable):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "This time is no longer available, please pick another slot"})
	case errors.Is(err, ErrInvalidTransition):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, schedule.ErrConfiguration):
		logger.Warn(fallback, "error", err)
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "Business hours are misconfigured"})
	case errors.Is(err, ErrDataUnavailable):
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "Schedule temporarily unavailable, please try again"})
	default:
		logger.Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}
