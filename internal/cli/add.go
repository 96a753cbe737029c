package cli

import (
	"fmt"
	"strings"

	"github.com/apper-canvas/taskflow/internal/model"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task.

Examples:
  taskflow add "Buy groceries"
  taskflow add "Quarterly report" -c Work -p high
  taskflow add "Dentist" --category Health --due tomorrow`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addCategory string
	addPriority string
	addDue      string
)

func init() {
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category name (default from config)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Priority: high, medium, low (default from config)")
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "Due date (YYYY-MM-DD, today, tomorrow)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	svc, err := openService(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	draft := model.TaskDraft{
		Title:    strings.Join(args, " "),
		Category: addCategory,
	}
	if addPriority != "" {
		if draft.Priority, err = model.ParsePriority(addPriority); err != nil {
			return err
		}
	}
	if draft.DueDate, err = parseDue(addDue, svc.Now()); err != nil {
		return err
	}

	task, err := svc.AddTask(cmd.Context(), draft)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added to [%s]: \"%s\" (%s)\n", task.Category, task.Title, task.Priority)
	return nil
}
