package blocked

import (
	"time"

	"github.com/google/uuid"

	"github.com/williandsn10/asbarberpro/internal/schedule"
)

// BlockedTime is an admin-declared unavailability, either a whole day or a time range.
type BlockedTime struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	BlockedDate schedule.Date   `db:"date" json:"date" swaggertype:"string" example:"2025-06-02"`
	IsFullDay   bool            `db:"is_full_day" json:"is_full_day"`
	StartTime   *schedule.Clock `db:"start_time" json:"start_time,omitempty" swaggertype:"string" example:"12:00"`
	EndTime     *schedule.Clock `db:"end_time" json:"end_time,omitempty" swaggertype:"string" example:"13:30"`
	Reason      *string         `db:"reason" json:"reason,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

func (b BlockedTime) Block() schedule.Block {
	return schedule.Block{
		IsFullDay: b.IsFullDay,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}

type BlockedTimeRequest struct {
	Date      string  `json:"date" binding:"required" example:"2025-06-02"`
	IsFullDay bool    `json:"is_full_day" example:"false"`
	StartTime *string `json:"start_time" example:"12:00"`
	EndTime   *string `json:"end_time" example:"13:30"`
	Reason    *string `json:"reason" binding:"omitempty,max=255" example:"Lunch"`
}
