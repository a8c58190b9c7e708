package entity

import "time"

// DateLayout is the calendar date format used by the filter and the form.
const DateLayout = "2006-01-02"

// FilterState is the user-selected specialty and optional date bounds.
// A nil SpecialtyID means nothing is selected and no chart is rendered.
type FilterState struct {
	SpecialtyID *int
	StartDate   *time.Time
	EndDate     *time.Time
}

// HasSpecialty reports whether a specialty is selected.
func (f FilterState) HasSpecialty() bool {
	return f.SpecialtyID != nil
}

// Snapshot returns a copy that shares no pointers with f.
func (f FilterState) Snapshot() FilterState {
	var s FilterState
	if f.SpecialtyID != nil {
		id := *f.SpecialtyID
		s.SpecialtyID = &id
	}
	if f.StartDate != nil {
		d := truncateDate(*f.StartDate)
		s.StartDate = &d
	}
	if f.EndDate != nil {
		d := truncateDate(*f.EndDate)
		s.EndDate = &d
	}
	return s
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
