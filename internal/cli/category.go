package cli

import (
	"fmt"
	"strings"

	"github.com/apper-canvas/taskflow/internal/model"
	"github.com/apper-canvas/taskflow/internal/viewmodel"
	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "Manage categories",
	Long:    `Create, list and delete the categories tasks are grouped by.`,
}

var categoryNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new category",
	Long: `Create a new category.

Examples:
  taskflow category new "Errands"
  taskflow category new "Side project" --color "#FF6B6B"`,
	Args: cobra.ExactArgs(1),
	RunE: runCategoryNew,
}

var categoryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all categories",
	Args:    cobra.NoArgs,
	RunE:    runCategoryList,
}

var categoryDeleteCmd = &cobra.Command{
	Use:     "delete [name-or-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a category",
	Long: `Delete a category by name or id. Tasks in the category keep their
category text.`,
	Args: cobra.ExactArgs(1),
	RunE: runCategoryDelete,
}

var categoryColor string

func init() {
	categoryNewCmd.Flags().StringVar(&categoryColor, "color", model.DefaultCategoryColor, "Category color (hex)")

	categoryCmd.AddCommand(categoryNewCmd)
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)
}

func runCategoryNew(cmd *cobra.Command, args []string) error {
	svc, err := openService(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	c, err := svc.AddCategory(cmd.Context(), model.CategoryDraft{Name: args[0], Color: categoryColor})
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created category: %s (%s)\n", c.Name, c.Color)
	return nil
}

func runCategoryList(cmd *cobra.Command, args []string) error {
	svc, err := openService(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	out := cmd.OutOrStdout()
	view := svc.View(viewmodel.State{})
	if len(view.Categories) == 0 {
		fmt.Fprintln(out, "No categories found.")
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-20s  %-8s  %s\n", "Name", "Color", "Active")
	fmt.Fprintln(out, strings.Repeat("─", 44))

	totalActive := 0
	for _, b := range view.Categories {
		totalActive += b.ActiveCount
		fmt.Fprintf(out, "  %-20s  %-8s  %d\n", b.Category.Name, b.Color, b.ActiveCount)
	}

	fmt.Fprintln(out, strings.Repeat("─", 44))
	fmt.Fprintf(out, "  %d categories, %d active tasks\n\n", len(view.Categories), totalActive)
	return nil
}

func runCategoryDelete(cmd *cobra.Command, args []string) error {
	svc, err := openService(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.DeleteCategory(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted category: %s\n", args[0])
	return nil
}
