package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task by its ID or a unique ID prefix.

Examples:
  taskflow delete abc123
  taskflow rm abc123 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteYes bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	svc, err := openService(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	task, err := resolveTask(svc, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.ConfirmDelete && !deleteYes {
		fmt.Fprintf(out, "About to delete: \"%s\" (ID: %s)\n", task.Title, task.ID)
		fmt.Fprint(out, "Are you sure? [y/N]: ")
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		answer = strings.TrimSpace(answer)
		if answer != "y" && answer != "Y" {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if err := svc.DeleteTask(cmd.Context(), task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Fprintf(out, "🗑️  Deleted: \"%s\"\n", task.Title)
	return nil
}
