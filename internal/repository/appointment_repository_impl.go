package repository

import (
	"hospital-dashboard/internal/domain/entity"
	domainRepo "hospital-dashboard/internal/domain/repository"

	"gorm.io/gorm"
)

const insertAppointmentSQL = `INSERT INTO hospital.turnos (profesional_id, paciente_id, fecha_hora, estado)
VALUES (@professional_id, @patient_id, @scheduled_at, @status)
RETURNING id`

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

// Create inserts the appointment with a static statement and fills in its id.
// It runs on whatever transaction the caller passes in.
func (r *appointmentRepository) Create(tx *gorm.DB, appointment *entity.Appointment) error {
	var id int
	err := tx.Raw(insertAppointmentSQL, map[string]interface{}{
		"professional_id": appointment.ProfessionalID,
		"patient_id":      appointment.PatientID,
		"scheduled_at":    appointment.ScheduledAt,
		"status":          appointment.Status,
	}).Scan(&id).Error
	if err != nil {
		return err
	}
	appointment.ID = id
	return nil
}
