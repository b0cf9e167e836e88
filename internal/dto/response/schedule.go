package response

import "court-booking/internal/data/entity"

type OperatingWindowResponse struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	SportTypeID string `json:"sport_type_id"`
}

type BlackoutResponse struct {
	Date     string   `json:"date"`
	WholeDay bool     `json:"whole_day"`
	CourtIDs []string `json:"court_ids"`
}

type ScheduleDayResponse struct {
	ID       string `json:"id"`
	Weekday  int    `json:"weekday"`
	IsActive bool   `json:"is_active"`
}

type UnavailableDayResponse struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	CourtID string `json:"court_id,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

func ScheduleDayToResponse(day *entity.ScheduleDay) ScheduleDayResponse {
	return ScheduleDayResponse{
		ID:       day.ID.String(),
		Weekday:  day.Weekday,
		IsActive: day.IsActive,
	}
}

func UnavailableDayToResponse(day *entity.UnavailableDay) UnavailableDayResponse {
	resp := UnavailableDayResponse{
		ID:     day.ID.String(),
		Date:   day.Date.Format("2006-01-02"),
		Reason: day.Reason,
	}

	if day.CourtID != nil {
		resp.CourtID = day.CourtID.String()
	}

	return resp
}
