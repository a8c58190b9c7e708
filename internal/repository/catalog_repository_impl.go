package repository

import (
	"hospital-dashboard/internal/domain/entity"
	domainRepo "hospital-dashboard/internal/domain/repository"

	"gorm.io/gorm"
)

type catalogRepository struct{}

func NewCatalogRepository() domainRepo.CatalogRepository {
	return &catalogRepository{}
}

func (r *catalogRepository) FindSpecialties(db *gorm.DB) ([]entity.Specialty, error) {
	var specialties []entity.Specialty
	err := db.Order("nombre ASC, id ASC").Find(&specialties).Error
	if err != nil {
		return nil, err
	}
	return specialties, nil
}

func (r *catalogRepository) FindProfessionals(db *gorm.DB) ([]entity.CatalogItem, error) {
	var items []entity.CatalogItem
	err := db.Model(&entity.Professional{}).
		Select("id, (apellido || ', ' || nombre) AS display_name").
		Order("apellido ASC, nombre ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *catalogRepository) FindPatients(db *gorm.DB) ([]entity.CatalogItem, error) {
	var items []entity.CatalogItem
	err := db.Model(&entity.Patient{}).
		Select("id, (apellido || ', ' || nombre) AS display_name").
		Order("apellido ASC, nombre ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *catalogRepository) SpecialtyExists(db *gorm.DB, id int) (bool, error) {
	var count int64
	err := db.Model(&entity.Specialty{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
