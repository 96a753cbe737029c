package cli

import (
	"fmt"

	"github.com/apper-canvas/taskflow/internal/config"
	"github.com/apper-canvas/taskflow/internal/logger"
	"github.com/apper-canvas/taskflow/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	backendName string
	logLevel    string
	logFile     string
	logConsole  bool

	// cfg is loaded once per invocation in PersistentPreRunE
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "taskflow",
	Short: "TaskFlow - tasks, categories and today's progress",
	Long: `TaskFlow is a to-do list with categories, priorities and due dates,
backed by a local database, a remote record API or an in-memory demo store.

Run 'taskflow' without arguments to launch the interactive TUI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// CLI flags win over file and environment
		if cmd.Flags().Changed("backend") {
			loaded.Backend = backendName
			if err := loaded.Validate(); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-file") {
			loaded.LogFile = logFile
		}
		if cmd.Flags().Changed("log-console") {
			loaded.LogConsole = logConsole
		}
		cfg = loaded

		logConfig := logger.Config{
			Level:      logger.ParseLevel(cfg.LogLevel),
			FilePath:   cfg.LogFile,
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxAge:     7,
			MaxBackups: 5,
			Console:    cfg.LogConsole,
		}
		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("TaskFlow started", logger.F("command", cmd.Name()), logger.F("backend", cfg.Backend))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		logger.Info("Launching TUI")
		p := tea.NewProgram(tui.NewModel(svc, cfg.ConfirmDelete), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.Err(err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("TaskFlow exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "", "Storage backend (memory, local, api)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(apikeyCmd)
}
