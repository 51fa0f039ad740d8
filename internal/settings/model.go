package settings

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

const (
	KeyWorkingHours = "working_hours"
	KeyClosedDays   = "closed_days"
)

// AllowedSlotIntervals are the intervals an admin may choose, in minutes.
var AllowedSlotIntervals = []int{15, 30, 45, 60}

type Setting struct {
	Key       string         `db:"key" json:"key"`
	Value     types.JSONText `db:"value" json:"value"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// workingHoursDoc is the stored shape of the working_hours setting.
type workingHoursDoc struct {
	OpeningTime  *string `json:"opening_time" validate:"required"`
	ClosingTime  *string `json:"closing_time" validate:"required"`
	SlotInterval *int    `json:"slot_interval" validate:"required"`
}

type UpdateWorkingHoursRequest struct {
	OpeningTime  string `json:"opening_time" binding:"required" example:"08:00"`
	ClosingTime  string `json:"closing_time" binding:"required" example:"19:00"`
	SlotInterval int    `json:"slot_interval" binding:"required,oneof=15 30 45 60" example:"30"`
}

type UpdateClosedDaysRequest struct {
	Days []int `json:"days" binding:"omitempty,dive,gte=0,lte=6" example:"0"`
}

type WorkingHoursResponse struct {
	OpeningTime  string `json:"opening_time" example:"08:00"`
	ClosingTime  string `json:"closing_time" example:"19:00"`
	SlotInterval int    `json:"slot_interval" example:"30"`
	IsDefault    bool   `json:"is_default" example:"false"`
}

type ClosedDaysResponse struct {
	Days []int `json:"days" example:"0"`
}
