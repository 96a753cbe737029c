// Package viewmodel derives what the task screens display from the raw
// task and category collections.
//
// Every function here is pure: it reads a snapshot, never mutates it, never
// performs I/O and never fails. Callers recompute after every change to the
// underlying collections or to the filter state.
package viewmodel

import (
	"strings"

	"github.com/apper-canvas/taskflow/internal/model"
)

// FilterTasks keeps the tasks matching all three filters, in input order.
// An empty filter matches everything. The query is matched as a
// case-insensitive substring of the title; category and priority must be
// equal exactly.
func FilterTasks(tasks []model.Task, query, category string, priority model.Priority) []model.Task {
	q := strings.ToLower(query)
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if q != "" && !strings.Contains(strings.ToLower(t.Title), q) {
			continue
		}
		if category != "" && t.Category != category {
			continue
		}
		if priority != "" && t.Priority != priority {
			continue
		}
		out = append(out, t)
	}
	return out
}

// CategoryActiveCount counts the open tasks in the named category
func CategoryActiveCount(tasks []model.Task, category string) int {
	n := 0
	for _, t := range tasks {
		if t.Category == category && !t.Completed {
			n++
		}
	}
	return n
}
