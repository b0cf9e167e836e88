package request

type CreateReservationRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,len=5"`
	EndTime   string `json:"end_time" validate:"required,len=5"`
	CourtID   string `json:"court_id" validate:"required,uuid4"`
	UserID    string `json:"user_id" validate:"required,uuid4"`
	RateID    string `json:"rate_id" validate:"required,uuid4"`
}

type UpdateReservationRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,len=5"`
	EndTime   string `json:"end_time" validate:"required,len=5"`
	CourtID   string `json:"court_id" validate:"required,uuid4"`
	RateID    string `json:"rate_id" validate:"required,uuid4"`
}

// PaymentWebhookRequest is the payload the payment provider posts back.
// ExternalReference carries the reservation id handed out at
// preference-creation time.
type PaymentWebhookRequest struct {
	PaymentID         string `json:"payment_id" validate:"required"`
	ExternalReference string `json:"external_reference" validate:"required,uuid4"`
	Status            string `json:"status" validate:"required,oneof=approved rejected pending"`
}
