package cli

import (
	"errors"
	"fmt"

	"github.com/apper-canvas/taskflow/internal/model"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [task-id]",
	Short: "Edit a task",
	Long: `Change the title, category, priority or due date of a task.

Examples:
  taskflow edit abc123 --title "Buy oat milk"
  taskflow edit abc123 -p low --due 2024-03-15
  taskflow edit abc123 --clear-due`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editTitle    string
	editCategory string
	editPriority string
	editDue      string
	editClearDue bool
)

func init() {
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "New category")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "New priority")
	editCmd.Flags().StringVarP(&editDue, "due", "d", "", "New due date")
	editCmd.Flags().BoolVar(&editClearDue, "clear-due", false, "Remove the due date")
}

func runEdit(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if !flags.Changed("title") && !flags.Changed("category") && !flags.Changed("priority") &&
		!flags.Changed("due") && !editClearDue {
		return errors.New("nothing to change: pass --title, --category, --priority, --due or --clear-due")
	}

	svc, err := openService(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	task, err := resolveTask(svc, args[0])
	if err != nil {
		return err
	}

	var patch model.TaskPatch
	if flags.Changed("title") {
		patch.Title = &editTitle
	}
	if flags.Changed("category") {
		patch.Category = &editCategory
	}
	if flags.Changed("priority") {
		p, err := model.ParsePriority(editPriority)
		if err != nil {
			return err
		}
		patch.Priority = &p
	}
	if flags.Changed("due") {
		due, err := parseDue(editDue, svc.Now())
		if err != nil {
			return err
		}
		patch.DueDate = &due
	}
	if editClearDue {
		empty := ""
		patch.DueDate = &empty
	}

	updated, err := svc.UpdateTask(cmd.Context(), task.ID, patch)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✎ Updated: \"%s\" [%s] (%s)\n", updated.Title, updated.Category, updated.Priority)
	return nil
}
