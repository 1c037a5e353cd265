package models

// Reason codes returned with an empty availability result. An empty slot list
// with one of these set is a successful response, not an error.
const (
	AvailabilityReasonPastDate    = "past_date"
	AvailabilityReasonNoSchedule  = "no_schedule"
	AvailabilityReasonUnavailable = "unavailable"
)

// Slot is one bookable time window within a doctor's working hours.
type Slot struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`   // "HH:MM"
}

// AvailabilityResult is the ordered free-slot sequence for one doctor/date.
// Reason is set only when Slots is empty for a structural cause; a fully
// booked day leaves it blank.
type AvailabilityResult struct {
	DoctorID string `json:"doctorId"`
	Date     string `json:"date"`
	Slots    []Slot `json:"slots"`
	Reason   string `json:"reason,omitempty"`
}
