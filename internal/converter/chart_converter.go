package converter

import (
	"hospital-dashboard/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Chart titles shown in each dashboard region.
const (
	TitleEmpty              = "Sin datos"
	TitleDailyCounts        = "Atenciones por día"
	TitleTopProfessionals   = "Top 5 médicos"
	TitleStatusDistribution = "Estados de turno"
)

var hundred = decimal.NewFromInt(100)

// EmptyChart is the explicit "no data" placeholder for one region.
func EmptyChart(id string) entity.ChartSpec {
	return entity.ChartSpec{
		ID:     id,
		Kind:   entity.ChartKindEmpty,
		Title:  TitleEmpty,
		Points: []entity.ChartPoint{},
	}
}

// EmptyChartSet returns the three placeholders rendered when no specialty is selected.
func EmptyChartSet() entity.ChartSet {
	return entity.ChartSet{
		DailyCounts:        EmptyChart(entity.ChartDailyCounts),
		TopProfessionals:   EmptyChart(entity.ChartTopProfessionals),
		StatusDistribution: EmptyChart(entity.ChartStatusDistribution),
	}
}

// DailyCountsChart renders date→count as a bar chart.
func DailyCountsChart(rows []entity.AggregateRow) entity.ChartSpec {
	return entity.ChartSpec{
		ID:     entity.ChartDailyCounts,
		Kind:   entity.ChartKindBar,
		Title:  TitleDailyCounts,
		XLabel: "dia",
		YLabel: "atenciones",
		Points: rowsToPoints(rows),
	}
}

// TopProfessionalsChart renders professional→count as a bar chart.
func TopProfessionalsChart(rows []entity.AggregateRow) entity.ChartSpec {
	return entity.ChartSpec{
		ID:     entity.ChartTopProfessionals,
		Kind:   entity.ChartKindBar,
		Title:  TitleTopProfessionals,
		XLabel: "medico",
		YLabel: "atenciones",
		Points: rowsToPoints(rows),
	}
}

// StatusDistributionChart renders status→count as a pie chart. Each slice
// carries its percentage of the total, rounded to two places.
func StatusDistributionChart(rows []entity.AggregateRow) entity.ChartSpec {
	points := rowsToPoints(rows)

	var total int64
	for _, row := range rows {
		total += row.Total
	}
	if total > 0 {
		sum := decimal.NewFromInt(total)
		for i := range points {
			share := decimal.NewFromInt(points[i].Value).Mul(hundred).Div(sum).Round(2)
			points[i].Share = &share
		}
	}

	return entity.ChartSpec{
		ID:     entity.ChartStatusDistribution,
		Kind:   entity.ChartKindPie,
		Title:  TitleStatusDistribution,
		XLabel: "estado",
		YLabel: "n",
		Points: points,
	}
}

func rowsToPoints(rows []entity.AggregateRow) []entity.ChartPoint {
	points := make([]entity.ChartPoint, len(rows))
	for i, row := range rows {
		points[i] = entity.ChartPoint{Label: row.Label, Value: row.Total}
	}
	return points
}
