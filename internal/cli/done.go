package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Toggle a task's completion",
	Long: `Mark an open task as completed, or reopen a completed one.
Task ids may be abbreviated to any unique prefix.

Examples:
  taskflow done abc123`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func runDone(cmd *cobra.Command, args []string) error {
	svc, err := openService(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	task, err := resolveTask(svc, args[0])
	if err != nil {
		return err
	}

	updated, err := svc.ToggleTask(cmd.Context(), task.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	if updated.Completed {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Completed: \"%s\"\n", updated.Title)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "○ Reopened: \"%s\"\n", updated.Title)
	}
	return nil
}
