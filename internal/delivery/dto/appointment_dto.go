package dto

// Request DTOs

// CreateAppointmentRequest carries the raw form fields; validation belongs to
// the appointment writer.
type CreateAppointmentRequest struct {
	ProfessionalID int    `json:"professional_id"`
	PatientID      int    `json:"patient_id"`
	Date           string `json:"date"`   // Format: YYYY-MM-DD
	Time           string `json:"time"`   // Format: HH:MM
	Status         string `json:"status"` // free text, e.g. "confirmado"
}

// Response DTOs

type AppointmentOutcomeResponse struct {
	State         string `json:"state"`
	Reason        string `json:"reason,omitempty"`
	Message       string `json:"message"`
	AppointmentID int    `json:"appointment_id,omitempty"`
	ScheduledAt   string `json:"scheduled_at,omitempty"`
}
