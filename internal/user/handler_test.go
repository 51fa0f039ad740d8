package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/williandsn10/asbarberpro/internal/auth"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, req RegisterRequest) (*User, string, string, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(0).(*User)
	return u, args.String(1), args.String(2), args.Error(3)
}

func (m *MockService) Login(ctx context.Context, req LoginRequest) (*User, string, string, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(0).(*User)
	return u, args.String(1), args.String(2), args.Error(3)
}

func (m *MockService) GetByID(ctx context.Context, userID uuid.UUID) (*User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *MockService) RefreshToken(ctx context.Context, refreshToken string) (string, *User, error) {
	args := m.Called(ctx, refreshToken)
	u, _ := args.Get(1).(*User)
	return args.String(0), u, args.Error(2)
}

func (m *MockService) List(ctx context.Context, role string) ([]User, error) {
	args := m.Called(ctx, role)
	users, _ := args.Get(0).([]User)
	return users, args.Error(1)
}

func (m *MockService) Admins(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]User)
	return users, args.Error(1)
}

func (m *MockService) UpdateRole(ctx context.Context, actorID, userID uuid.UUID, role string) (*User, error) {
	args := m.Called(ctx, actorID, userID, role)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *MockService) CreateClient(ctx context.Context, req ClientRequest) (*User, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *MockService) UpdateClient(ctx context.Context, id uuid.UUID, req ClientRequest) (*User, error) {
	args := m.Called(ctx, id, req)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *MockService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func setupRouter(svc Service, actor *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if actor != nil {
		r.Use(func(c *gin.Context) {
			auth.SetIdentity(c, *actor, auth.RoleAdmin)
			c.Next()
		})
	}

	h := NewHandler(svc)
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.RefreshToken)
	r.GET("/me", h.GetMe)
	r.GET("/admin/users", h.ListUsers)
	r.PUT("/admin/users/:id/role", h.UpdateRole)
	r.POST("/admin/clients", h.CreateClient)
	r.DELETE("/admin/clients/:id", h.DeleteClient)
	return r
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockService)
		req := RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret123"}
		svc.On("Register", mock.Anything, req).Return(&User{ID: uuid.New(), Name: "Ana"}, "access", "refresh", nil)

		w := doJSON(setupRouter(svc, nil), http.MethodPost, "/auth/register", req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "access", resp.AccessToken)
		assert.Equal(t, "Ana", resp.User.Name)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, "", "", ErrEmailExists)

		w := doJSON(setupRouter(svc, nil), http.MethodPost, "/auth/register",
			RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret123"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid payload", func(t *testing.T) {
		svc := new(MockService)
		w := doJSON(setupRouter(svc, nil), http.MethodPost, "/auth/register", map[string]string{"email": "nope"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}

func TestHandler_Login(t *testing.T) {
	svc := new(MockService)
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, "", "", ErrInvalidCredentials)

	w := doJSON(setupRouter(svc, nil), http.MethodPost, "/auth/login",
		LoginRequest{Email: "ana@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_Refresh(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrTokenExpired, http.StatusUnauthorized},
		{"access token", auth.ErrInvalidTokenType, http.StatusUnauthorized},
		{"user gone", ErrUserNotFound, http.StatusNotFound},
		{"database down", errDB, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("RefreshToken", mock.Anything, "tok").Return("", nil, tt.err)

			w := doJSON(setupRouter(svc, nil), http.MethodPost, "/auth/refresh", RefreshRequest{RefreshToken: "tok"})
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandler_GetMe(t *testing.T) {
	id := uuid.New()

	t.Run("unauthenticated", func(t *testing.T) {
		w := doJSON(setupRouter(new(MockService), nil), http.MethodGet, "/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("returns profile", func(t *testing.T) {
		svc := new(MockService)
		svc.On("GetByID", mock.Anything, id).Return(&User{ID: id, Name: "Ana", Role: auth.RoleAdmin}, nil)

		w := doJSON(setupRouter(svc, &id), http.MethodGet, "/me", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Ana"`)
		assert.NotContains(t, w.Body.String(), "password")
	})
}

func TestHandler_AdminUsers(t *testing.T) {
	actor := uuid.New()
	target := uuid.New()

	t.Run("invalid role filter", func(t *testing.T) {
		svc := new(MockService)
		svc.On("List", mock.Anything, "owner").Return(nil, ErrInvalidRole)

		w := doJSON(setupRouter(svc, &actor), http.MethodGet, "/admin/users?role=owner", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("own role", func(t *testing.T) {
		svc := new(MockService)
		svc.On("UpdateRole", mock.Anything, actor, actor, auth.RoleClient).Return(nil, ErrCannotChangeOwnRole)

		w := doJSON(setupRouter(svc, &actor), http.MethodPut, "/admin/users/"+actor.String()+"/role",
			UpdateRoleRequest{Role: auth.RoleClient})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("promote", func(t *testing.T) {
		svc := new(MockService)
		svc.On("UpdateRole", mock.Anything, actor, target, auth.RoleAdmin).Return(&User{ID: target, Role: auth.RoleAdmin}, nil)

		w := doJSON(setupRouter(svc, &actor), http.MethodPut, "/admin/users/"+target.String()+"/role",
			UpdateRoleRequest{Role: auth.RoleAdmin})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		w := doJSON(setupRouter(new(MockService), &actor), http.MethodPut, "/admin/users/42/role",
			UpdateRoleRequest{Role: auth.RoleAdmin})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Clients(t *testing.T) {
	actor := uuid.New()
	id := uuid.New()

	t.Run("create", func(t *testing.T) {
		svc := new(MockService)
		svc.On("CreateClient", mock.Anything, mock.MatchedBy(func(r ClientRequest) bool { return r.Name == "Carlos" })).
			Return(&User{ID: id, Name: "Carlos", Role: auth.RoleClient}, nil)

		w := doJSON(setupRouter(svc, &actor), http.MethodPost, "/admin/clients", map[string]string{"name": "Carlos"})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("delete missing", func(t *testing.T) {
		svc := new(MockService)
		svc.On("DeleteClient", mock.Anything, id).Return(ErrUserNotFound)

		w := doJSON(setupRouter(svc, &actor), http.MethodDelete, "/admin/clients/"+id.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		svc := new(MockService)
		svc.On("DeleteClient", mock.Anything, id).Return(nil)

		w := doJSON(setupRouter(svc, &actor), http.MethodDelete, "/admin/clients/"+id.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
