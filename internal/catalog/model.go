package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Service is a bookable barbershop service such as a haircut or a beard trim.
type Service struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Description     *string   `db:"description" json:"description,omitempty"`
	PriceCents      int64     `db:"price_cents" json:"price_cents"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

type ServiceRequest struct {
	Name            string  `json:"name" binding:"required,max=255" example:"Corte masculino"`
	Description     *string `json:"description" example:"Tesoura e máquina"`
	PriceCents      int64   `json:"price_cents" binding:"gte=0" example:"4500"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0" example:"30"`
}
