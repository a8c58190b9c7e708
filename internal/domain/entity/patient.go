package entity

// Patient is read-only from the dashboard's perspective.
type Patient struct {
	ID        int    `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"column:nombre;not null" json:"first_name"`
	LastName  string `gorm:"column:apellido;not null" json:"last_name"`
}

func (Patient) TableName() string {
	return "hospital.pacientes"
}

// DisplayName renders the patient as "last, first".
func (p *Patient) DisplayName() string {
	return displayName(p.LastName, p.FirstName)
}
