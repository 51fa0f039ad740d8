package api

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database,omitempty" example:"ok"`
	Redis    string `json:"redis,omitempty" example:"ok"`
}

type DeletedResponse struct {
	Deleted int64 `json:"deleted" example:"3"`
}
