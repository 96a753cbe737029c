package viewmodel

import (
	"time"

	"github.com/apper-canvas/taskflow/internal/model"
)

// Empty-state messages for the task list
const (
	EmptyNoTasks   = "No tasks yet"
	EmptyNoMatches = "No tasks match your filters"
)

// CategoryBadge is a category as shown in the filter bar
type CategoryBadge struct {
	Category    model.Category
	Color       string
	ActiveCount int
	Selected    bool
}

// ShowCount reports whether the badge count should be displayed
func (b CategoryBadge) ShowCount() bool {
	return b.ActiveCount > 0
}

// View is everything a screen needs for one render
type View struct {
	Tasks        []model.Task
	Stats        TodayStats
	Progress     int
	Categories   []CategoryBadge
	Filtered     bool
	EmptyMessage string
}

// Derive computes the full view from the snapshot and UI state
func Derive(tasks []model.Task, categories []model.Category, state State, now time.Time) View {
	f := state.Filter
	v := View{
		Tasks:    FilterTasks(tasks, f.Query, f.Category, f.Priority),
		Stats:    ComputeTodayStats(tasks, now),
		Filtered: state.HasActiveFilters(),
	}
	v.Progress = ProgressPercent(v.Stats)

	v.Categories = make([]CategoryBadge, 0, len(categories))
	for _, c := range categories {
		v.Categories = append(v.Categories, CategoryBadge{
			Category:    c,
			Color:       ResolveCategoryColor(categories, c.Name),
			ActiveCount: CategoryActiveCount(tasks, c.Name),
			Selected:    f.Category == c.Name,
		})
	}

	if len(v.Tasks) == 0 {
		v.EmptyMessage = EmptyNoTasks
		if v.Filtered {
			v.EmptyMessage = EmptyNoMatches
		}
	}
	return v
}
