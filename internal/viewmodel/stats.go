package viewmodel

import (
	"time"

	"github.com/apper-canvas/taskflow/internal/model"
)

// TodayStats summarizes progress for the current day
type TodayStats struct {
	CompletedToday int `json:"completedToday"`
	RemainingToday int `json:"remainingToday"`
}

// ComputeTodayStats counts tasks completed on now's calendar day and open
// tasks due today.
//
// Open tasks without a due date (or with an unparsable one) count as due
// today: undated work is treated as perpetually due.
func ComputeTodayStats(tasks []model.Task, now time.Time) TodayStats {
	var s TodayStats
	loc := now.Location()
	for _, t := range tasks {
		if t.Completed {
			if t.CompletedAt != nil && sameDay(t.CompletedAt.In(loc), now) {
				s.CompletedToday++
			}
			continue
		}
		due, ok := ParseDueDate(t.DueDate, loc)
		if !ok || sameDay(due, now) {
			s.RemainingToday++
		}
	}
	return s
}

// ProgressPercent returns today's completion ratio as a whole percentage
func ProgressPercent(s TodayStats) int {
	total := s.CompletedToday + s.RemainingToday
	if total == 0 {
		return 0
	}
	return s.CompletedToday * 100 / total
}
