// Package isoweek buckets timestamps into ISO-8601 weeks. Weeks run Monday
// through Sunday and belong to the year that owns their Thursday, so the few
// days around New Year land in the neighboring year's first or last week.
package isoweek

import (
	"fmt"
	"time"
)

// Week identifies a single ISO week.
type Week struct {
	Year   int
	Number int
}

// Of returns the ISO week containing t, evaluated in t's location.
func Of(t time.Time) Week {
	// Shift to the Thursday of t's week; that Thursday's year is the ISO
	// year, and its ordinal day yields the week number.
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	thursday := t.AddDate(0, 0, 4-weekday)
	return Week{
		Year:   thursday.Year(),
		Number: (thursday.YearDay() + 6) / 7,
	}
}

// ID renders the canonical "<year>-<week>" identifier with a two-digit,
// zero-padded week number.
func (w Week) ID() string {
	return fmt.Sprintf("%d-%02d", w.Year, w.Number)
}

func (w Week) String() string {
	return w.ID()
}

// Monday returns the first day of the week at midnight in loc.
func (w Week) Monday(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	// January 4th is always in week 1.
	jan4 := time.Date(w.Year, time.January, 4, 0, 0, 0, 0, loc)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	week1Monday := jan4.AddDate(0, 0, 1-weekday)
	return week1Monday.AddDate(0, 0, (w.Number-1)*7)
}

// Sunday returns the last day of the week at midnight in loc.
func (w Week) Sunday(loc *time.Location) time.Time {
	return w.Monday(loc).AddDate(0, 0, 6)
}

// Parse reverses ID. It accepts both padded ("2025-03") and bare ("2025-3")
// week numbers since older records were written without padding.
func Parse(id string) (Week, error) {
	var year, number int
	if _, err := fmt.Sscanf(id, "%d-%d", &year, &number); err != nil {
		return Week{}, fmt.Errorf("invalid week id %q", id)
	}
	if year < 1 || number < 1 || number > 53 {
		return Week{}, fmt.Errorf("invalid week id %q", id)
	}
	return Week{Year: year, Number: number}, nil
}
