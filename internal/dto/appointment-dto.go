package dto

type BookAppointmentRequest struct {
	RequestID uint   `json:"request_id" validate:"required"`
	Date      string `json:"date" validate:"required" example:"2026-09-15"`
	TimeSlot  string `json:"time_slot" validate:"required" example:"9:00 AM - 9:30 AM"`
	Notes     string `json:"notes,omitempty"`
}

// UpdateAppointmentRequest is a PATCH-style body: nil means "leave as is".
type UpdateAppointmentRequest struct {
	Date     *string `json:"date,omitempty"`
	TimeSlot *string `json:"time_slot,omitempty"`
	Status   *string `json:"status,omitempty"` // Completed | No-Show | Cancelled
	Notes    *string `json:"notes,omitempty"`
}

type SlotsResponse struct {
	Date           string   `json:"date"`
	AllSlots       []string `json:"all_slots"`
	BookedSlots    []string `json:"booked_slots"`
	AvailableSlots []string `json:"available_slots"`
}
