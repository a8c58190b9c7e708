// Package query derives the dashboard's aggregate queries from a filter.
package query

import (
	"errors"
	"fmt"
	"time"

	"hospital-dashboard/internal/domain/entity"
)

// ErrNoSpecialty is returned when the filter has no specialty; callers must
// render the empty state instead of querying.
var ErrNoSpecialty = errors.New("no specialty selected")

// TopProfessionalsLimit caps the professionals ranking.
const TopProfessionalsLimit = 5

// Parameter names bound by the composed queries.
const (
	ParamSpecialtyID = "specialty_id"
	ParamStartDate   = "start_date"
	ParamEndDate     = "end_date"
)

const fromClause = `FROM hospital.turnos t
JOIN hospital.profesionales pr ON pr.id = t.profesional_id`

// Spec is one read-only aggregate query ready for execution.
type Spec struct {
	Name   string
	SQL    string
	Params map[string]any
}

// Set holds the three aggregate specs derived from one filter snapshot.
type Set struct {
	Filter             entity.FilterState
	Where              Where
	DailyCounts        Spec
	TopProfessionals   Spec
	StatusDistribution Spec
}

// Specs returns the specs in execution order.
func (s Set) Specs() []Spec {
	return []Spec{s.DailyCounts, s.TopProfessionals, s.StatusDistribution}
}

// BuildWhere declares the predicate list for a filter: the specialty equality
// always, each date bound only when set. Both bounds are inclusive on the
// calendar date of the appointment.
func BuildWhere(filter entity.FilterState) (Where, error) {
	if !filter.HasSpecialty() {
		return Where{}, ErrNoSpecialty
	}

	where := Where{Predicates: []Predicate{
		{
			Clause:  "pr.especialidad_id = @" + ParamSpecialtyID,
			Param:   ParamSpecialtyID,
			Value:   *filter.SpecialtyID,
			Present: true,
		},
		{
			Clause:  "date(t.fecha_hora) >= @" + ParamStartDate,
			Param:   ParamStartDate,
			Value:   formatDate(filter.StartDate),
			Present: filter.StartDate != nil,
		},
		{
			Clause:  "date(t.fecha_hora) <= @" + ParamEndDate,
			Param:   ParamEndDate,
			Value:   formatDate(filter.EndDate),
			Present: filter.EndDate != nil,
		},
	}}
	return where, nil
}

// Compose derives the three aggregate specs. It is a pure function of the
// filter; the filter is snapshotted so the specs cannot observe later changes.
func Compose(filter entity.FilterState) (Set, error) {
	snapshot := filter.Snapshot()

	where, err := BuildWhere(snapshot)
	if err != nil {
		return Set{}, err
	}
	clause := where.SQL()

	return Set{
		Filter: snapshot,
		Where:  where,
		DailyCounts: Spec{
			Name: entity.ChartDailyCounts,
			SQL: fmt.Sprintf(`SELECT to_char(date(t.fecha_hora), 'YYYY-MM-DD') AS label, COUNT(*) AS total
%s
WHERE %s
GROUP BY date(t.fecha_hora)
ORDER BY date(t.fecha_hora) ASC`, fromClause, clause),
			Params: where.Params(),
		},
		// Ties on count are broken by professional id so the ranking is reproducible.
		TopProfessionals: Spec{
			Name: entity.ChartTopProfessionals,
			SQL: fmt.Sprintf(`SELECT (pr.apellido || ', ' || pr.nombre) AS label, COUNT(*) AS total
%s
WHERE %s
GROUP BY pr.id, pr.apellido, pr.nombre
ORDER BY total DESC, pr.id ASC
LIMIT %d`, fromClause, clause, TopProfessionalsLimit),
			Params: where.Params(),
		},
		StatusDistribution: Spec{
			Name: entity.ChartStatusDistribution,
			SQL: fmt.Sprintf(`SELECT t.estado AS label, COUNT(*) AS total
%s
WHERE %s
GROUP BY t.estado
ORDER BY total DESC, t.estado ASC`, fromClause, clause),
			Params: where.Params(),
		},
	}, nil
}

func formatDate(d *time.Time) any {
	if d == nil {
		return nil
	}
	return d.Format(entity.DateLayout)
}
