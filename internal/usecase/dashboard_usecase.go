package usecase

import (
	"context"
	"fmt"
	"time"

	"hospital-dashboard/internal/converter"
	"hospital-dashboard/internal/domain/entity"
	"hospital-dashboard/internal/domain/repository"
	"hospital-dashboard/internal/infrastructure/metrics"
	"hospital-dashboard/internal/query"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DashboardUsecase interface {
	Recompute(ctx context.Context, filter entity.FilterState) (entity.ChartSet, error)
}

type dashboardUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	catalogRepo repository.CatalogRepository
	reportRepo  repository.ReportRepository
	metrics     *metrics.Metrics
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	catalogRepo repository.CatalogRepository,
	reportRepo repository.ReportRepository,
	m *metrics.Metrics,
) DashboardUsecase {
	return &dashboardUsecase{
		db:          db,
		log:         log,
		catalogRepo: catalogRepo,
		reportRepo:  reportRepo,
		metrics:     m,
	}
}

// Recompute derives the three charts for one filter snapshot.
//
// Flow:
// 1. Snapshot the filter; every query below is composed from this value only
// 2. No specialty (or an unknown one) -> three "no data" placeholders, no aggregate query
// 3. Compose the three aggregate specs and run them one after the other
// 4. Map each result set to its chart
//
// Results are never cached; each call hits the live store.
func (u *dashboardUsecase) Recompute(ctx context.Context, filter entity.FilterState) (entity.ChartSet, error) {
	snapshot := filter.Snapshot()
	if !snapshot.HasSpecialty() {
		u.metrics.ObserveRecompute(metrics.ResultEmpty)
		return converter.EmptyChartSet(), nil
	}

	exists, err := u.catalogRepo.SpecialtyExists(u.db.WithContext(ctx), *snapshot.SpecialtyID)
	if err != nil {
		u.log.Warnf("Failed to check specialty %d: %+v", *snapshot.SpecialtyID, err)
		u.metrics.ObserveRecompute(metrics.ResultError)
		return entity.ChartSet{}, fmt.Errorf("check specialty: %w", err)
	}
	if !exists {
		u.log.Debugf("Unknown specialty %d, rendering empty state", *snapshot.SpecialtyID)
		u.metrics.ObserveRecompute(metrics.ResultEmpty)
		return converter.EmptyChartSet(), nil
	}

	set, err := query.Compose(snapshot)
	if err != nil {
		u.metrics.ObserveRecompute(metrics.ResultError)
		return entity.ChartSet{}, err
	}

	results := make([][]entity.AggregateRow, 0, 3)
	for _, spec := range set.Specs() {
		started := time.Now()
		rows, err := u.reportRepo.Aggregate(u.db.WithContext(ctx), spec)
		u.metrics.ObserveQuery(spec.Name, started)
		if err != nil {
			u.log.Warnf("Failed to run %s for specialty %d: %+v", spec.Name, *snapshot.SpecialtyID, err)
			u.metrics.ObserveRecompute(metrics.ResultError)
			return entity.ChartSet{}, fmt.Errorf("run %s: %w", spec.Name, err)
		}
		results = append(results, rows)
	}

	u.metrics.ObserveRecompute(metrics.ResultOK)
	return entity.ChartSet{
		DailyCounts:        converter.DailyCountsChart(results[0]),
		TopProfessionals:   converter.TopProfessionalsChart(results[1]),
		StatusDistribution: converter.StatusDistributionChart(results[2]),
	}, nil
}
