package entity

// Specialty is a medical department grouping professionals. Read-only here.
type Specialty struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"column:nombre;not null" json:"name"`
}

func (Specialty) TableName() string {
	return "hospital.especialidades"
}
