package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/williandsn10/asbarberpro/internal/api"
	"github.com/williandsn10/asbarberpro/internal/logger"
)

type Handler struct {
	catalog Catalog
}

func NewHandler(catalog Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// @Summary      List services
// @Tags         services
// @Produce      json
// @Success      200 {array} catalog.Service
// @Failure      500 {object} api.ErrorResponse
// @Router       /services [get]
func (h *Handler) List(c *gin.Context) {
	services, err := h.catalog.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// @Summary      Get a service
// @Tags         services
// @Produce      json
// @Param        id path string true "Service ID"
// @Success      200 {object} catalog.Service
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /services/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	s, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch service")
		return
	}

	c.JSON(http.StatusOK, s)
}

// @Summary      Create a service
// @Description  Admin-only: add a service to the catalogue
// @Tags         admin,services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body catalog.ServiceRequest true "Service payload"
// @Success      201 {object} catalog.Service
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/services [post]
func (h *Handler) Create(c *gin.Context) {
	var req ServiceRequest
	if !api.BindJSON(c, &req) {
		return
	}

	s, err := h.catalog.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, s)
}

// @Summary      Update a service
// @Tags         admin,services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Service ID"
// @Param        request body catalog.ServiceRequest true "Service payload"
// @Success      200 {object} catalog.Service
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/services/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req ServiceRequest
	if !api.BindJSON(c, &req) {
		return
	}

	s, err := h.catalog.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, s)
}

// @Summary      Delete a service
// @Tags         admin,services
// @Security     BearerAuth
// @Param        id path string true "Service ID"
// @Success      204
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/services/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete service")
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary      Delete all services
// @Tags         admin,services
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} api.DeletedResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/services [delete]
func (h *Handler) DeleteAll(c *gin.Context) {
	n, err := h.catalog.DeleteAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to delete services")
		return
	}

	c.JSON(http.StatusOK, api.DeletedResponse{Deleted: n})
}

func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrServiceInvalid):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrServiceNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Service not found"})
	case errors.Is(err, ErrServiceInUse):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Service has appointments and cannot be deleted"})
	default:
		logger.Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}
