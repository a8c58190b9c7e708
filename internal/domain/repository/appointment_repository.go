package repository

import (
	"hospital-dashboard/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(tx *gorm.DB, appointment *entity.Appointment) error
}
