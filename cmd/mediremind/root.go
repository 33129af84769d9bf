package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/mediremind/internal/app"
	"github.com/nhle/mediremind/internal/model"
	"github.com/nhle/mediremind/internal/schedule"
	"github.com/nhle/mediremind/internal/store"
	"github.com/nhle/mediremind/internal/theme"
)

var (
	flagConfig string
	flagDB     string

	cfg     *model.AppConfig
	dbStore *store.SQLiteStore
)

var rootCmd = &cobra.Command{
	Use:   "mediremind",
	Short: "Medication reminders in your terminal",
	Long: `MediRemind tracks your medications and reminds you when doses are due.

Running with no arguments opens the interactive TUI. Subcommands offer
quick access from scripts or a plain shell:

  $ mediremind                               # open the TUI
  $ mediremind add Aspirin 100mg --time 08:00
  $ mediremind list                          # today's medications
  $ mediremind taken 3                       # record a dose for #3

Data lives in a local SQLite database; nothing leaves your machine.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = model.LoadConfig(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		dbPath := cfg.DatabasePath
		if flagDB != "" {
			dbPath = flagDB
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}

		dbStore, err = store.NewSQLiteStore(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if dbStore != nil {
			return dbStore.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		theme.SetTheme(cfg.Display.Theme)

		var notifier schedule.Notifier = schedule.NoopNotifier{}
		if cfg.Reminders.Enabled {
			notifier = schedule.DesktopNotifier{}
		}
		sched := schedule.New(
			notifier,
			time.Duration(cfg.Reminders.TickSec)*time.Second,
		)

		p := tea.NewProgram(
			app.New(dbStore, sched, cfg),
			tea.WithAltScreen(),
		)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running program: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&flagConfig, "config", model.DefaultConfigPath(), "config file path",
	)
	rootCmd.PersistentFlags().StringVar(
		&flagDB, "db", "", "database path (overrides config)",
	)
}
