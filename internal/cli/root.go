// Package cli implements the mystery command line.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tatianab/mystery-game/internal/config"
	"github.com/tatianab/mystery-game/internal/logging"
	"github.com/tatianab/mystery-game/internal/story"
)

// app is the state shared by every command once the root pre-run has set it up.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd builds the `mystery` command tree. Running it without a
// subcommand plays the configured case.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:               "mystery",
		Short:             "A terminal mystery adventure",
		Long:              "Investigate a case level by level: talk to suspects, search the scene and solve each puzzle.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.logger.Sync() },
		RunE:              a.runPlay,
	}

	pf := root.PersistentFlags()
	pf.String("save", "", "Save file (default: $MYSTERY_SAVE_FILE or .saves/save_game.txt)")
	pf.String("case", "", "Embedded case to play (default: $MYSTERY_CASE or mansion)")
	pf.String("case-file", "", "Play a case from a YAML file instead of an embedded one")
	pf.String("log-file", "", "Log file (default: $MYSTERY_LOG_FILE or .saves/mystery.log)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	addPlayFlags(root)

	root.AddCommand(
		a.playCmd(),
		a.savesCmd(),
		a.showCmd(),
		a.casesCmd(),
		a.archiveCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	for name, dst := range map[string]*string{
		"save":      &cfg.SaveFile,
		"case":      &cfg.Case,
		"log-file":  &cfg.LogFile,
		"log-level": &cfg.LogLevel,
	} {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}

	logger, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.logger.Debug("configured", zap.String("command", cmd.Name()), zap.String("case", cfg.Case))
	return nil
}

// loadCase returns the case named by --case-file, or the configured embedded case.
func (a *app) loadCase(cmd *cobra.Command) (*story.Case, error) {
	if path, _ := cmd.Flags().GetString("case-file"); path != "" {
		return story.LoadFile(path)
	}
	return story.Load(a.cfg.Case)
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#3C3C3C"))).
		BorderHeader(true).
		BorderRow(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}
