package repository

import (
	"hospital-dashboard/internal/domain/entity"

	"gorm.io/gorm"
)

type CatalogRepository interface {
	FindSpecialties(db *gorm.DB) ([]entity.Specialty, error)
	FindProfessionals(db *gorm.DB) ([]entity.CatalogItem, error)
	FindPatients(db *gorm.DB) ([]entity.CatalogItem, error)
	SpecialtyExists(db *gorm.DB, id int) (bool, error)
}
