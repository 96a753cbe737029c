package cli

import (
	"fmt"
	"strings"

	"github.com/apper-canvas/taskflow/internal/viewmodel"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show today's progress",
	Long: `Show how many tasks were completed today and how many are still due
today. Tasks without a due date count as due today.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	svc, err := openService(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	view := svc.View(viewmodel.State{})
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Completed today: %d\n", view.Stats.CompletedToday)
	fmt.Fprintf(out, "Remaining today: %d\n", view.Stats.RemainingToday)
	fmt.Fprintf(out, "Progress: %s %d%%\n", progressBar(view.Progress, 20), view.Progress)

	overdue := 0
	for _, t := range svc.Tasks() {
		if !t.Completed && viewmodel.IsOverdue(t.DueDate, svc.Now()) {
			overdue++
		}
	}
	if overdue > 0 {
		fmt.Fprintf(out, "Overdue: %d\n", overdue)
	}
	return nil
}

func progressBar(percent, width int) string {
	filled := percent * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
