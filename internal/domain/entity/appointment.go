package entity

import "time"

// TimestampLayout is the textual form of a persisted appointment timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// Appointment is only ever inserted by the appointment writer. It carries no
// specialty of its own; the professional's specialty is the join key.
type Appointment struct {
	ID             int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfessionalID int       `gorm:"column:profesional_id;not null;index" json:"professional_id"`
	PatientID      int       `gorm:"column:paciente_id;not null;index" json:"patient_id"`
	ScheduledAt    time.Time `gorm:"column:fecha_hora;not null" json:"scheduled_at"`
	Status         string    `gorm:"column:estado;not null" json:"status"`

	// Relationships
	Professional Professional `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
	Patient      Patient      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "hospital.turnos"
}

// DraftAppointment lives for a single submission and is discarded afterwards.
// Whitespace-only text counts as missing.
type DraftAppointment struct {
	ProfessionalID int    `validate:"required"`
	PatientID      int    `validate:"required"`
	Date           string `validate:"required,notblank"` // YYYY-MM-DD
	Time           string `validate:"required,notblank,hhmm"`
	Status         string `validate:"required,notblank"`
}

// Timestamp composes "<date> <time>:00".
func (d DraftAppointment) Timestamp() string {
	return d.Date + " " + d.Time + ":00"
}

// SubmitState is the terminal state of one submission.
type SubmitState string

const (
	SubmitStateRejected  SubmitState = "rejected"
	SubmitStatePersisted SubmitState = "persisted"
	SubmitStateFailed    SubmitState = "failed"
)

// Rejection reasons.
const (
	ReasonMissingFields     = "missing_fields"
	ReasonInvalidTimeFormat = "invalid_time_format"
)

// SubmitOutcome is what the writer reports back to the UI.
type SubmitOutcome struct {
	State         SubmitState
	Reason        string
	Message       string
	AppointmentID int
	ScheduledAt   string
}

func (o SubmitOutcome) IsPersisted() bool {
	return o.State == SubmitStatePersisted
}
