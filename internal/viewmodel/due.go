package viewmodel

import (
	"strings"
	"time"
)

// DueKind classifies a due date relative to the current day
type DueKind int

const (
	DueNone DueKind = iota
	DueToday
	DueTomorrow
	DueOverdue
	DueUpcoming
)

// String returns the kind name
func (k DueKind) String() string {
	switch k {
	case DueToday:
		return "today"
	case DueTomorrow:
		return "tomorrow"
	case DueOverdue:
		return "overdue"
	case DueUpcoming:
		return "upcoming"
	default:
		return "none"
	}
}

// DueLabel is the display form of a due date
type DueLabel struct {
	Kind DueKind
	Text string
}

// shortDateLayout renders dates as "Jan 2"
const shortDateLayout = "Jan 2"

// ParseDueDate reads a due date as a calendar day in loc.
// Plain dates (2006-01-02) are taken as that day in loc; timestamps are
// converted to loc first. Anything else reports ok=false.
func ParseDueDate(s string, loc *time.Location) (day time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if d, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return d, true
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return startOfDay(ts.In(loc)), true
	}
	return time.Time{}, false
}

// ClassifyDueDate labels a due date against now's calendar day.
// Today takes precedence over overdue, so a task due today is never overdue
// however late in the day it is.
func ClassifyDueDate(dueDate string, now time.Time) DueLabel {
	due, ok := ParseDueDate(dueDate, now.Location())
	if !ok {
		return DueLabel{Kind: DueNone}
	}
	today := startOfDay(now)
	switch {
	case due.Equal(today):
		return DueLabel{Kind: DueToday, Text: "Today"}
	case due.Equal(addDays(today, 1)):
		return DueLabel{Kind: DueTomorrow, Text: "Tomorrow"}
	case due.Before(today):
		return DueLabel{Kind: DueOverdue, Text: due.Format(shortDateLayout)}
	default:
		return DueLabel{Kind: DueUpcoming, Text: due.Format(shortDateLayout)}
	}
}

// IsOverdue reports whether dueDate lies before now's calendar day
func IsOverdue(dueDate string, now time.Time) bool {
	return ClassifyDueDate(dueDate, now).Kind == DueOverdue
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// addDays moves by calendar days, not 24h steps, so DST changes don't matter
func addDays(day time.Time, n int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day()+n, 0, 0, 0, 0, day.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
