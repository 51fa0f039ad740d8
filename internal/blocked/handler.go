package blocked

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

// @Summary      Block time
// @Description  Admin-only: block a whole day or a time range
// @Tags         admin,blocked-times
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body blocked.BlockedTimeRequest true "Blocked time"
// @Success      201 {object} blocked.BlockedTime
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/blocked-times [post]
func (h *Handler) Create(c *gin.Context) {
	var req BlockedTimeRequest
	if !api.BindJSON(c, &req) {
		return
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create blocked time")
		return
	}

	c.JSON(http.StatusCreated, b)
}

// @Summary      Update blocked time
// @Tags         admin,blocked-times
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Blocked time ID"
// @Param        request body blocked.BlockedTimeRequest true "Blocked time"
// @Success      200 {object} blocked.BlockedTime
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/blocked-times/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req BlockedTimeRequest
	if !api.BindJSON(c, &req) {
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Failed to update blocked time")
		return
	}

	c.JSON(http.StatusOK, b)
}

// @Summary      Delete blocked time
// @Tags         admin,blocked-times
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Blocked time ID"
// @Success      204
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/blocked-times/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete blocked time")
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary      Delete all blocked times
// @Tags         admin,blocked-times
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} api.DeletedResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/blocked-times [delete]
func (h *Handler) DeleteAll(c *gin.Context) {
	n, err := h.service.DeleteAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to delete blocked times")
		return
	}

	c.JSON(http.StatusOK, api.DeletedResponse{Deleted: n})
}

// @Summary      List blocked times
// @Tags         admin,blocked-times
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "First date (YYYY-MM-DD)"
// @Param        to   query string false "Last date (YYYY-MM-DD)"
// @Success      200 {array} blocked.BlockedTime
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/blocked-times [get]
func (h *Handler) List(c *gin.Context) {
	from, ok := queryDate(c, "from")
	if !ok {
		return
	}
	to, ok := queryDate(c, "to")
	if !ok {
		return
	}

	list, err := h.service.List(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err, "Failed to fetch blocked times")
		return
	}

	c.JSON(http.StatusOK, list)
}

func queryDate(c *gin.Context, name string) (*schedule.Date, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	d, err := schedule.ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid " + name + " date, expected YYYY-MM-DD"})
		return nil, false
	}
	return &d, true
}

func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidBlockedTime), errors.Is(err, ErrInvalidRange):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrBlockedTimeNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Blocked time not found"})
	default:
		logger.Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}
