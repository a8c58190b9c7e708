package repository

import (
	"hospital-dashboard/internal/domain/entity"
	"hospital-dashboard/internal/query"

	"gorm.io/gorm"
)

type ReportRepository interface {
	Aggregate(db *gorm.DB, spec query.Spec) ([]entity.AggregateRow, error)
}
