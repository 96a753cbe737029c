package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/apper-canvas/taskflow/internal/app"
	"github.com/apper-canvas/taskflow/internal/backend"
	"github.com/apper-canvas/taskflow/internal/logger"
	"github.com/apper-canvas/taskflow/internal/model"
	"github.com/apper-canvas/taskflow/internal/viewmodel"
	"github.com/spf13/cobra"
)

// openService opens the configured backend and loads the snapshot
func openService(cmd *cobra.Command) (*app.Service, error) {
	ctx := cmd.Context()
	st, err := backend.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open backend", logger.F("backend", cfg.Backend), logger.Err(err))
		return nil, fmt.Errorf("failed to open %s backend: %w", cfg.Backend, err)
	}

	svc := app.New(st, app.WithDefaults(app.Defaults{
		Category: cfg.DefaultCategory,
		Priority: model.Priority(cfg.DefaultPriority),
	}))
	if err := svc.Load(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return svc, nil
}

// resolveTask turns a task reference argument into a snapshot task
func resolveTask(svc *app.Service, ref string) (model.Task, error) {
	id, err := svc.ResolveTaskID(ref)
	if err != nil {
		return model.Task{}, fmt.Errorf("task not found: %w", err)
	}
	t, _ := svc.Task(id)
	return t, nil
}

// parseDue normalizes a --due value to YYYY-MM-DD. It accepts "today",
// "tomorrow" and any date ParseDueDate understands.
func parseDue(s string, now time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "today":
		return now.Format(time.DateOnly), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format(time.DateOnly), nil
	}
	day, ok := viewmodel.ParseDueDate(s, now.Location())
	if !ok {
		return "", fmt.Errorf("invalid due date %q (use YYYY-MM-DD, today or tomorrow)", s)
	}
	return day.Format(time.DateOnly), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
