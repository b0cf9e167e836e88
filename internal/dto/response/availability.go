package response

// CourtRef names one court inside an availability listing.
type CourtRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SlotAvailability pairs one slot with the courts still free in it.
// Courts is never nil so an empty slot serializes as [].
type SlotAvailability struct {
	Slot   string     `json:"slot"`
	Start  string     `json:"start"`
	End    string     `json:"end"`
	Courts []CourtRef `json:"courts"`
}

// SlotOccupancy is the inverse view: the courts taken in one slot.
type SlotOccupancy struct {
	Slot   string     `json:"slot"`
	Start  string     `json:"start"`
	End    string     `json:"end"`
	Courts []CourtRef `json:"courts"`
}
