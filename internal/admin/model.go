package admin

// ResetResponse counts the rows each table lost in a reset.
type ResetResponse struct {
	Appointments int64 `json:"appointments" example:"12"`
	BlockedTimes int64 `json:"blocked_times" example:"3"`
	Services     int64 `json:"services" example:"5"`
}
