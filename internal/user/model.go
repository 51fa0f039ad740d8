package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/williandsn10/asbarberpro/internal/auth"
	"github.com/williandsn10/asbarberpro/internal/schedule"
)

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        *string   `db:"email" json:"email,omitempty"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	PasswordHash *string   `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`

	// LastVisit is the day of the latest completed appointment. Only the
	// admin listing fills it.
	LastVisit *schedule.Date `db:"last_visit" json:"last_visit,omitempty"`
}

// Identity is what tokens issued for u carry.
func (u User) Identity() auth.Identity {
	return auth.Identity{UserID: u.ID, Email: u.EmailAddress(), Role: u.Role}
}

// EmailAddress returns the email or "" for clients registered without one.
func (u User) EmailAddress() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

type RegisterRequest struct {
	Name     string  `json:"name" binding:"required,max=255" example:"João Silva"`
	Email    string  `json:"email" binding:"required,email" example:"joao@example.com"`
	Phone    *string `json:"phone" binding:"omitempty,max=50" example:"+55 11 91234-5678"`
	Password string  `json:"password" binding:"required,min=6" example:"secret123"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"joao@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin client" example:"admin"`
}

// ClientRequest creates or edits a client profile kept by the shop, such as a walk-in.
type ClientRequest struct {
	Name  string  `json:"name" binding:"required,max=255" example:"Carlos"`
	Email *string `json:"email" binding:"omitempty,email" example:"carlos@example.com"`
	Phone *string `json:"phone" binding:"omitempty,max=50" example:"+55 11 99876-5432"`
}
