package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/apper-canvas/taskflow/internal/model"
	"github.com/apper-canvas/taskflow/internal/viewmodel"
	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks, optionally filtered by search text, category and priority.

Examples:
  taskflow list
  taskflow list --search milk
  taskflow list -c Work -p high
  taskflow list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listSearch   string
	listCategory string
	listPriority string
	listJSON     bool
)

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only tasks whose title contains this text")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Only tasks in this category")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "Only tasks with this priority")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print tasks as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	svc, err := openService(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	state := viewmodel.State{Filter: viewmodel.Filter{Query: listSearch, Category: listCategory}}
	if listPriority != "" {
		if state.Filter.Priority, err = model.ParsePriority(listPriority); err != nil {
			return err
		}
	}
	view := svc.View(state)
	out := cmd.OutOrStdout()

	if listJSON {
		data, err := sonic.ConfigStd.MarshalIndent(view.Tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode tasks: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(view.Tasks) == 0 {
		fmt.Fprintln(out, view.EmptyMessage)
		return nil
	}

	fmt.Fprintf(out, "\nToday: %d done, %d remaining (%d%%)\n", view.Stats.CompletedToday, view.Stats.RemainingToday, view.Progress)
	fmt.Fprintln(out, strings.Repeat("─", 78))
	for _, t := range view.Tasks {
		printTask(out, t, viewmodel.ClassifyDueDate(t.DueDate, svc.Now()))
	}
	fmt.Fprintln(out)
	return nil
}

func printTask(out io.Writer, t model.Task, due viewmodel.DueLabel) {
	icon := "[ ]"
	if t.Completed {
		icon = "[x]"
	}

	dueText := due.Text
	if due.Kind == viewmodel.DueOverdue && !t.Completed {
		dueText = "!" + dueText
	}

	fmt.Fprintf(out, "  %s  %-8s  %-36s  %-10s  %-6s  %s\n",
		icon, shortID(t.ID), truncate(t.Title, 36), dueText, t.Priority, t.Category)
}
