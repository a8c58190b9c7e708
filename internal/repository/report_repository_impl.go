package repository

import (
	"hospital-dashboard/internal/domain/entity"
	domainRepo "hospital-dashboard/internal/domain/repository"
	"hospital-dashboard/internal/query"

	"gorm.io/gorm"
)

type reportRepository struct{}

func NewReportRepository() domainRepo.ReportRepository {
	return &reportRepository{}
}

// Aggregate runs one composed aggregate query. Values are bound through the
// spec's named parameters only.
func (r *reportRepository) Aggregate(db *gorm.DB, spec query.Spec) ([]entity.AggregateRow, error) {
	rows := make([]entity.AggregateRow, 0)
	err := db.Raw(spec.SQL, spec.Params).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
