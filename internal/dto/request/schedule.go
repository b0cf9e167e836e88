package request

type CreateUnavailableDayRequest struct {
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	CourtID string `json:"court_id" validate:"omitempty,uuid4"`
	Reason  string `json:"reason" validate:"max=255"`
}
