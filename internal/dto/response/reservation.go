package response

import (
	"time"

	"court-booking/internal/data/entity"
)

type ReservationResponse struct {
	ID            string                   `json:"id"`
	Date          string                   `json:"date"`
	Slot          string                   `json:"slot"`
	CourtID       string                   `json:"court_id"`
	CourtName     string                   `json:"court_name,omitempty"`
	UserID        string                   `json:"user_id"`
	Price         float64                  `json:"price"`
	DepositAmount float64                  `json:"deposit_amount"`
	Status        entity.ReservationStatus `json:"status"`
	ExpiresAt     *time.Time               `json:"expires_at,omitempty"`
	PaymentURL    string                   `json:"payment_url,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
}

func ReservationToResponse(res *entity.Reservation, courtName string) ReservationResponse {
	resp := ReservationResponse{
		ID:            res.ID.String(),
		Date:          res.Date.Format("2006-01-02"),
		Slot:          res.StartTime + "-" + res.EndTime,
		CourtID:       res.CourtID.String(),
		CourtName:     courtName,
		UserID:        res.UserID.String(),
		Price:         res.Price,
		DepositAmount: res.DepositAmount,
		Status:        res.Status,
		ExpiresAt:     res.ExpiresAt,
		CreatedAt:     res.CreatedAt,
	}

	if res.PaymentURL != nil {
		resp.PaymentURL = *res.PaymentURL
	}

	return resp
}
