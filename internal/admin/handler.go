package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/williandsn10/asbarberpro/internal/api"
	"github.com/williandsn10/asbarberpro/internal/auth"
	"github.com/williandsn10/asbarberpro/internal/logger"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Reset shop data
// @Description  Admin-only: deletes every appointment, blocked time and service in one transaction. Users and settings are kept.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} admin.ResetResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/reset [post]
func (h *Handler) Reset(c *gin.Context) {
	actorID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	out, err := h.service.Reset(c.Request.Context(), actorID)
	if err != nil {
		logger.Error("Failed to reset data", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to reset data"})
		return
	}

	c.JSON(http.StatusOK, out)
}
