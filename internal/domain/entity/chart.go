package entity

import "github.com/shopspring/decimal"

// ChartKind is the rendering hint for one chart region.
type ChartKind string

const (
	ChartKindBar   ChartKind = "bar"
	ChartKindPie   ChartKind = "pie"
	ChartKindEmpty ChartKind = "empty"
)

// Chart identifiers, one per region of the dashboard.
const (
	ChartDailyCounts        = "daily_counts"
	ChartTopProfessionals   = "top_professionals"
	ChartStatusDistribution = "status_distribution"
)

// AggregateRow is one grouped row returned by an aggregate query.
type AggregateRow struct {
	Label string `gorm:"column:label"`
	Total int64  `gorm:"column:total"`
}

// ChartPoint is one bar or one pie slice. Share is only set on pie charts.
type ChartPoint struct {
	Label string
	Value int64
	Share *decimal.Decimal
}

// ChartSpec describes a chart independently of the rendering library.
type ChartSpec struct {
	ID     string
	Kind   ChartKind
	Title  string
	XLabel string
	YLabel string
	Points []ChartPoint
}

func (c ChartSpec) IsEmpty() bool {
	return c.Kind == ChartKindEmpty
}

// ChartSet is the result of one recompute: always three charts in a fixed order.
type ChartSet struct {
	DailyCounts        ChartSpec
	TopProfessionals   ChartSpec
	StatusDistribution ChartSpec
}

// Charts returns the three charts in render order.
func (s ChartSet) Charts() []ChartSpec {
	return []ChartSpec{s.DailyCounts, s.TopProfessionals, s.StatusDistribution}
}

// DashboardView is a published recompute result tagged with the trigger that
// produced it.
type DashboardView struct {
	Generation uint64
	Filter     FilterState
	Charts     ChartSet
	Err        error
}
