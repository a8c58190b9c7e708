package entity

import "fmt"

// Professional is a care provider attached to exactly one specialty.
type Professional struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	FirstName   string `gorm:"column:nombre;not null" json:"first_name"`
	LastName    string `gorm:"column:apellido;not null" json:"last_name"`
	SpecialtyID int    `gorm:"column:especialidad_id;not null;index" json:"specialty_id"`

	// Relationships
	Specialty Specialty `gorm:"foreignKey:SpecialtyID" json:"specialty,omitempty"`
}

func (Professional) TableName() string {
	return "hospital.profesionales"
}

// DisplayName renders the professional as "last, first".
func (p *Professional) DisplayName() string {
	return displayName(p.LastName, p.FirstName)
}

func displayName(last, first string) string {
	return fmt.Sprintf("%s, %s", last, first)
}

// CatalogItem is the projection used by the UI selectors.
type CatalogItem struct {
	ID          int    `gorm:"column:id" json:"id"`
	DisplayName string `gorm:"column:display_name" json:"display_name"`
}
