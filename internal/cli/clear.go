package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete completed tasks",
	Long: `Delete all completed tasks, or every task with --all.

Examples:
  taskflow clear
  taskflow clear --all --force`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

var (
	clearAll   bool
	clearForce bool
)

func init() {
	clearCmd.Flags().BoolVar(&clearAll, "all", false, "Delete every task, not only completed ones")
	clearCmd.Flags().BoolVar(&clearForce, "force", false, "Do not ask for confirmation")
}

func runClear(cmd *cobra.Command, args []string) error {
	svc, err := openService(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	what := "completed tasks"
	if clearAll {
		what = "all tasks"
	}

	out := cmd.OutOrStdout()
	if !clearForce {
		fmt.Fprintf(out, "Are you sure you want to delete %s? (y/N): ", what)
		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if strings.ToLower(strings.TrimSpace(response)) != "y" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	n, err := svc.ClearTasks(cmd.Context(), clearAll)
	if err != nil {
		return fmt.Errorf("cleared %d tasks before failing: %w", n, err)
	}

	fmt.Fprintf(out, "🗑️  Cleared %d tasks\n", n)
	return nil
}
