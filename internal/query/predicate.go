package query

import "strings"

// Predicate is one WHERE condition with its bound parameter. Present decides
// whether the predicate takes part in the query at all; the value never
// reaches the SQL text.
type Predicate struct {
	Clause  string
	Param   string
	Value   any
	Present bool
}

// Where is the conjunction of the present predicates.
type Where struct {
	Predicates []Predicate
}

// Active returns the predicates that take part in the query, in declaration order.
func (w Where) Active() []Predicate {
	active := make([]Predicate, 0, len(w.Predicates))
	for _, p := range w.Predicates {
		if p.Present {
			active = append(active, p)
		}
	}
	return active
}

// SQL renders the clause body without the WHERE keyword.
func (w Where) SQL() string {
	active := w.Active()
	clauses := make([]string, len(active))
	for i, p := range active {
		clauses[i] = p.Clause
	}
	return strings.Join(clauses, " AND ")
}

// Params returns the named parameters of the active predicates.
func (w Where) Params() map[string]any {
	params := make(map[string]any, len(w.Predicates))
	for _, p := range w.Active() {
		params[p.Param] = p.Value
	}
	return params
}
