package models

// ReserveInput is the patient's reservation request for one slot.
type ReserveInput struct {
	DoctorID    string `json:"doctorId" binding:"required,uuid"`
	Date        string `json:"date" binding:"required"`      // "YYYY-MM-DD"
	StartTime   string `json:"startTime" binding:"required"` // "HH:MM"
	Description string `json:"description"`

	// Patient contact info kept on the appointment record.
	PatientEmail  string `json:"patientEmail" binding:"required,email"`
	PatientName   string `json:"patientName"`
	PatientGender string `json:"patientGender"`
}

// ConfirmInput carries the checkout session reference back from the payment
// redirect. The session status is always re-verified against the gateway.
type ConfirmInput struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// ScheduleInput is a doctor's weekly working window for one weekday.
type ScheduleInput struct {
	Weekday     int    `json:"weekday" binding:"min=0,max=6"`
	StartTime   string `json:"startTime" binding:"required"` // "HH:MM"
	EndTime     string `json:"endTime" binding:"required"`   // "HH:MM"
	SlotMinutes int    `json:"slotMinutes" binding:"required,gt=0"`
	Available   *bool  `json:"available"`
}
