package request

type CreateFixedReservationRequest struct {
	Weekday   *int   `json:"weekday" validate:"required,min=0,max=6"`
	StartTime string `json:"start_time" validate:"required,len=5"`
	EndTime   string `json:"end_time" validate:"required,len=5"`
	CourtID   string `json:"court_id" validate:"required,uuid4"`
	UserID    string `json:"user_id" validate:"required,uuid4"`
	RateID    string `json:"rate_id" validate:"required,uuid4"`
}

type SetFixedActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
