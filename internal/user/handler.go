package user

import (
	"errors"
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

// Register godoc
// @Summary      Register new user
// @Description  Creates a client account and returns access & refresh tokens.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      user.RegisterRequest  true  "User registration data"
// @Success      201      {object}  user.LoginResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !api.BindJSON(c, &req) {
		return
	}

	u, accessToken, refreshToken, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *u,
	})
}

// Login godoc
// @Summary      Login user
// @Description  Authenticates user by email and password.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      user.LoginRequest  true  "User credentials"
// @Success      200      {object}  user.LoginResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !api.BindJSON(c, &req) {
		return
	}

	u, accessToken, refreshToken, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to login")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *u,
	})
}

// RefreshToken godoc
// @Summary      Refresh access token
// @Description  Returns new access token using a valid refresh token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      user.RefreshRequest  true  "Refresh token payload"
// @Success      200      {object}  user.RefreshResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /auth/refresh [post]
func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if !api.BindJSON(c, &req) {
		return
	}

	accessToken, u, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	switch {
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenExpired), errors.Is(err, auth.ErrInvalidTokenType):
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid or expired refresh token"})
		return
	case err != nil:
		respondError(c, err, "Failed to refresh token")
		return
	}

	c.JSON(http.StatusOK, RefreshResponse{AccessToken: accessToken, User: *u})
}

// GetMe godoc
// @Summary      Get current user
// @Description  Returns profile of the authenticated user.
// @Tags         user
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  user.User
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /me [get]
func (h *Handler) GetMe(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, u)
}

// @Summary      List users
// @Tags         admin,users
// @Security     BearerAuth
// @Produce      json
// @Param        role query string false "admin or client"
// @Success      200 {array} user.User
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.List(c.Request.Context(), c.Query("role"))
	if err != nil {
		respondError(c, err, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, users)
}

// @Summary      Change a user's role
// @Description  Admin-only: promote a client to staff or demote an admin
// @Tags         admin,users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        request body user.UpdateRoleRequest true "New role"
// @Success      200 {object} user.User
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/users/{id}/role [put]
func (h *Handler) UpdateRole(c *gin.Context) {
	id, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if !api.BindJSON(c, &req) {
		return
	}

	actorID, _ := auth.GetUserID(c)
	u, err := h.service.UpdateRole(c.Request.Context(), actorID, id, req.Role)
	if err != nil {
		respondError(c, err, "Failed to update role")
		return
	}

	c.JSON(http.StatusOK, u)
}

// @Summary      Create a client
// @Description  Admin-only: register a client without a login, e.g. a walk-in
// @Tags         admin,clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body user.ClientRequest true "Client payload"
// @Success      201 {object} user.User
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/clients [post]
func (h *Handler) CreateClient(c *gin.Context) {
	var req ClientRequest
	if !api.BindJSON(c, &req) {
		return
	}

	u, err := h.service.CreateClient(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, u)
}

// @Summary      Update a client
// @Tags         admin,clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Client ID"
// @Param        request body user.ClientRequest true "Client payload"
// @Success      200 {object} user.User
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/clients/{id} [put]
func (h *Handler) UpdateClient(c *gin.Context) {
	id, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req ClientRequest
	if !api.BindJSON(c, &req) {
		return
	}

	u, err := h.service.UpdateClient(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, u)
}

// @Summary      Delete a client
// @Tags         admin,clients
// @Security     BearerAuth
// @Param        id path string true "Client ID"
// @Success      204
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/clients/{id} [delete]
func (h *Handler) DeleteClient(c *gin.Context) {
	id, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteClient(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete client")
		return
	}

	c.Status(http.StatusNoContent)
}

func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid email or password"})
	case errors.Is(err, ErrEmailExists):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Email already registered"})
	case errors.Is(err, ErrUserNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found"})
	case errors.Is(err, ErrInvalidRole), errors.Is(err, ErrCannotChangeOwnRole), errors.Is(err, ErrNotAClient):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}
