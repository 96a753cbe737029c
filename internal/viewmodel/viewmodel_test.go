package viewmodel

import (
	"reflect"
	"testing"
	"time"

	"github.com/apper-canvas/taskflow/internal/model"
)

var testNow = time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

func ptrTime(t time.Time) *time.Time { return &t }

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "1", Title: "Buy milk", Category: "Home", Priority: model.PriorityLow},
		{ID: "2", Title: "Quarterly report", Category: "Work", Priority: model.PriorityHigh},
		{ID: "3", Title: "Buy MILK powder", Category: "Work", Priority: model.PriorityLow},
		{ID: "4", Title: "Gym", Category: "Health", Priority: model.PriorityMedium, Completed: true, CompletedAt: ptrTime(testNow)},
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestFilterTasks(t *testing.T) {
	tasks := sampleTasks()
	tests := []struct {
		name     string
		query    string
		category string
		priority model.Priority
		want     []string
	}{
		{"no filters is identity", "", "", "", []string{"1", "2", "3", "4"}},
		{"query is case-insensitive", "mIlK", "", "", []string{"1", "3"}},
		{"category exact", "", "Work", "", []string{"2", "3"}},
		{"category is case-sensitive", "", "work", "", []string{}},
		{"priority exact", "", "", model.PriorityLow, []string{"1", "3"}},
		{"all filters combine", "milk", "Work", model.PriorityLow, []string{"3"}},
		{"no match", "bread", "", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterTasks(tasks, tt.query, tt.category, tt.priority))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterTasksEmptyInput(t *testing.T) {
	if got := FilterTasks(nil, "x", "", ""); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestFilterTasksIdempotent(t *testing.T) {
	tasks := sampleTasks()
	once := FilterTasks(tasks, "buy", "", model.PriorityLow)
	twice := FilterTasks(once, "buy", "", model.PriorityLow)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filter not idempotent: %v vs %v", ids(once), ids(twice))
	}
}

func TestFilterTasksScenario(t *testing.T) {
	tasks := []model.Task{{Title: "Buy milk", Category: "Home", Priority: model.PriorityLow}}
	if got := FilterTasks(tasks, "milk", "", ""); len(got) != 1 {
		t.Errorf("expected one task for milk, got %d", len(got))
	}
	if got := FilterTasks(tasks, "bread", "", ""); len(got) != 0 {
		t.Errorf("expected no task for bread, got %d", len(got))
	}
}

func TestCategoryActiveCount(t *testing.T) {
	tasks := []model.Task{
		{Category: "Work"},
		{Category: "Work", Completed: true, CompletedAt: ptrTime(testNow)},
		{Category: "Home"},
	}
	if got := CategoryActiveCount(tasks, "Work"); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := CategoryActiveCount(tasks, "Errands"); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestComputeTodayStats(t *testing.T) {
	yesterday := testNow.AddDate(0, 0, -1)
	tasks := []model.Task{
		{ID: "done-today", Completed: true, CompletedAt: ptrTime(testNow.Add(-time.Hour))},
		{ID: "done-yesterday", Completed: true, CompletedAt: ptrTime(yesterday)},
		{ID: "undated"},
		{ID: "due-today", DueDate: "2024-03-10"},
		{ID: "due-tomorrow", DueDate: "2024-03-11"},
		{ID: "overdue", DueDate: "2024-03-01"},
		{ID: "garbage-date", DueDate: "not a date"},
	}
	got := ComputeTodayStats(tasks, testNow)
	want := TodayStats{CompletedToday: 1, RemainingToday: 3}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestComputeTodayStatsScenario(t *testing.T) {
	tasks := []model.Task{
		{Completed: true, CompletedAt: ptrTime(testNow)},
		{},
	}
	got := ComputeTodayStats(tasks, testNow)
	if got != (TodayStats{CompletedToday: 1, RemainingToday: 1}) {
		t.Errorf("got %+v", got)
	}
}

func TestComputeTodayStatsUsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*3600)
	now := time.Date(2024, 3, 10, 20, 0, 0, 0, loc) // 04:00 UTC on the 11th
	completed := time.Date(2024, 3, 11, 1, 0, 0, 0, time.UTC)
	tasks := []model.Task{{Completed: true, CompletedAt: &completed}}

	if got := ComputeTodayStats(tasks, now); got.CompletedToday != 1 {
		t.Errorf("expected completion to count for local day, got %+v", got)
	}
}

func TestClassifyDueDate(t *testing.T) {
	tests := []struct {
		due  string
		kind DueKind
		text string
	}{
		{"", DueNone, ""},
		{"bogus", DueNone, ""},
		{"2024-03-10", DueToday, "Today"},
		{"2024-03-11", DueTomorrow, "Tomorrow"},
		{"2024-03-09", DueOverdue, "Mar 9"},
		{"2023-12-31", DueOverdue, "Dec 31"},
		{"2024-03-12", DueUpcoming, "Mar 12"},
		{"2024-04-01T08:00:00Z", DueUpcoming, "Apr 1"},
	}
	for _, tt := range tests {
		got := ClassifyDueDate(tt.due, testNow)
		if got.Kind != tt.kind || got.Text != tt.text {
			t.Errorf("ClassifyDueDate(%q) = {%v %q}, want {%v %q}", tt.due, got.Kind, got.Text, tt.kind, tt.text)
		}
	}
}

func TestClassifyDueDateTodayNeverOverdue(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{0, time.Minute, 12 * time.Hour, 23*time.Hour + 59*time.Minute + 59*time.Second} {
		now := day.Add(offset)
		if got := ClassifyDueDate("2024-03-10", now); got.Kind != DueToday {
			t.Errorf("at %v got %v, want today", now, got.Kind)
		}
		if IsOverdue("2024-03-10", now) {
			t.Errorf("at %v today's date reported overdue", now)
		}
	}
	if !IsOverdue("2024-03-09", day) {
		t.Error("yesterday should be overdue")
	}
}

func TestClassifyDueDateMonthBoundary(t *testing.T) {
	now := time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC)
	if got := ClassifyDueDate("2024-03-01", now); got.Kind != DueTomorrow {
		t.Errorf("expected tomorrow across month boundary, got %v", got.Kind)
	}
}

func TestResolveCategoryColor(t *testing.T) {
	cats := []model.Category{
		{Name: "Work", Color: "#5B4FCF"},
		{Name: "Blank"},
	}
	if got := ResolveCategoryColor(cats, "Work"); got != "#5B4FCF" {
		t.Errorf("expected work color, got %q", got)
	}
	if got := ResolveCategoryColor(cats, "Deleted"); got != FallbackCategoryColor {
		t.Errorf("expected fallback, got %q", got)
	}
	if got := ResolveCategoryColor(cats, "Blank"); got != FallbackCategoryColor {
		t.Errorf("expected fallback for blank color, got %q", got)
	}
	if got := ResolveCategoryColor(nil, ""); got != FallbackCategoryColor {
		t.Errorf("expected fallback for nil categories, got %q", got)
	}
}

func TestStateToggleCategory(t *testing.T) {
	var s State
	s.ToggleCategory("Work")
	if s.Filter.Category != "Work" {
		t.Fatalf("expected Work selected, got %q", s.Filter.Category)
	}
	s.ToggleCategory("Home")
	if s.Filter.Category != "Home" {
		t.Fatalf("expected Home selected, got %q", s.Filter.Category)
	}
	s.ToggleCategory("Home")
	if s.Filter.Category != "" {
		t.Errorf("expected selection cleared, got %q", s.Filter.Category)
	}
}

func TestStateCyclePriority(t *testing.T) {
	var s State
	want := []model.Priority{model.PriorityHigh, model.PriorityMedium, model.PriorityLow, ""}
	for i, w := range want {
		s.CyclePriority()
		if s.Filter.Priority != w {
			t.Errorf("step %d: got %q, want %q", i, s.Filter.Priority, w)
		}
	}
}

func TestStateEditing(t *testing.T) {
	var s State
	task := model.Task{ID: "7", Title: "Draft"}
	s.StartEditing(task)
	if !s.IsEditing("7") || s.Editing.Title != "Draft" {
		t.Fatalf("unexpected editing state: %+v", s.Editing)
	}
	s.CancelEdit()
	if s.IsEditing("7") {
		t.Error("edit should be cancelled")
	}
}

func TestDerive(t *testing.T) {
	tasks := sampleTasks()
	cats := []model.Category{
		{ID: "w", Name: "Work", Color: "#111111"},
		{ID: "h", Name: "Health", Color: "#222222"},
	}

	v := Derive(tasks, cats, State{}, testNow)
	if len(v.Tasks) != 4 || v.Filtered || v.EmptyMessage != "" {
		t.Errorf("unexpected unfiltered view: %+v", v)
	}
	if v.Stats != (TodayStats{CompletedToday: 1, RemainingToday: 3}) {
		t.Errorf("unexpected stats %+v", v.Stats)
	}
	if v.Progress != 25 {
		t.Errorf("expected 25%% progress, got %d", v.Progress)
	}
	if len(v.Categories) != 2 {
		t.Fatalf("expected 2 badges, got %d", len(v.Categories))
	}
	if b := v.Categories[0]; b.ActiveCount != 2 || !b.ShowCount() || b.Color != "#111111" {
		t.Errorf("unexpected work badge %+v", b)
	}
	if b := v.Categories[1]; b.ActiveCount != 0 || b.ShowCount() {
		t.Errorf("health badge should hide its count: %+v", b)
	}

	var s State
	s.ToggleCategory("Work")
	s.Filter.Query = "nothing matches"
	v = Derive(tasks, cats, s, testNow)
	if len(v.Tasks) != 0 || v.EmptyMessage != EmptyNoMatches {
		t.Errorf("expected no-match message, got %+v", v)
	}
	if !v.Categories[0].Selected {
		t.Error("work badge should be selected")
	}

	v = Derive(nil, nil, State{}, testNow)
	if v.EmptyMessage != EmptyNoTasks || v.Progress != 0 {
		t.Errorf("unexpected empty view %+v", v)
	}
}
