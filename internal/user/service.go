package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/williandsn10/asbarberpro/internal/auth"
	"github.com/williandsn10/asbarberpro/internal/logger"
)

var (
	ErrEmailExists         = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRole         = errors.New("invalid role")
	ErrCannotChangeOwnRole = errors.New("cannot change own role")
	ErrNotAClient          = errors.New("user is not a client")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, string, string, error)
	Login(ctx context.Context, req LoginRequest) (*User, string, string, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, *User, error)

	List(ctx context.Context, role string) ([]User, error)
	Admins(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, actorID, userID uuid.UUID, role string) (*User, error)
	CreateClient(ctx context.Context, req ClientRequest) (*User, error)
	UpdateClient(ctx context.Context, id uuid.UUID, req ClientRequest) (*User, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{
		repo:      repo,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, string, string, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, "", "", err
	}
	if exists {
		return nil, "", "", ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", "", err
	}

	u, err := s.repo.Create(ctx, &User{
		Name:         strings.TrimSpace(req.Name),
		Email:        &email,
		Phone:        optional(req.Phone),
		PasswordHash: &passwordHash,
		Role:         auth.RoleClient,
	})
	if err != nil {
		return nil, "", "", err
	}

	pair, err := auth.IssuePair(u.Identity(), s.jwtSecret)
	if err != nil {
		return nil, "", "", err
	}

	logger.Info("user registered", "user_id", u.ID.String())
	return u, pair.Access, pair.Refresh, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*User, string, string, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, ErrUserNotFound) {
		return nil, "", "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", "", err
	}

	if u.PasswordHash == nil || !auth.CheckPassword(*u.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}

	pair, err := auth.IssuePair(u.Identity(), s.jwtSecret)
	if err != nil {
		return nil, "", "", err
	}

	return u, pair.Access, pair.Refresh, nil
}

func (s *service) GetByID(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

// RefreshToken reissues an access token carrying the user's current role.
func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *User, error) {
	claims, err := auth.Parse(refreshToken, auth.RefreshToken, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	u, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", nil, err
	}

	newAccessToken, err := auth.Issue(u.Identity(), auth.AccessToken, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return newAccessToken, u, nil
}

func (s *service) List(ctx context.Context, role string) ([]User, error) {
	if role != "" && !validRole(role) {
		return nil, ErrInvalidRole
	}
	return s.repo.List(ctx, role)
}

func (s *service) Admins(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx, auth.RoleAdmin)
}

func (s *service) UpdateRole(ctx context.Context, actorID, userID uuid.UUID, role string) (*User, error) {
	if !validRole(role) {
		return nil, ErrInvalidRole
	}
	if actorID == userID {
		return nil, ErrCannotChangeOwnRole
	}

	u, err := s.repo.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	logger.Info("user role changed", "user_id", userID.String(), "role", role, "by", actorID.String())
	return u, nil
}

func (s *service) CreateClient(ctx context.Context, req ClientRequest) (*User, error) {
	email := optional(req.Email)
	if email != nil {
		e := normalizeEmail(*email)
		email = &e
	}

	return s.repo.Create(ctx, &User{
		Name:  strings.TrimSpace(req.Name),
		Email: email,
		Phone: optional(req.Phone),
		Role:  auth.RoleClient,
	})
}

func (s *service) UpdateClient(ctx context.Context, id uuid.UUID, req ClientRequest) (*User, error) {
	if err := s.requireClient(ctx, id); err != nil {
		return nil, err
	}

	email := optional(req.Email)
	if email != nil {
		e := normalizeEmail(*email)
		email = &e
	}
	return s.repo.UpdateProfile(ctx, id, strings.TrimSpace(req.Name), email, optional(req.Phone))
}

func (s *service) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if err := s.requireClient(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) requireClient(ctx context.Context, id uuid.UUID) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u.Role != auth.RoleClient {
		return ErrNotAClient
	}
	return nil
}

func validRole(role string) bool {
	return role == auth.RoleAdmin || role == auth.RoleClient
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
