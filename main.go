package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"geartrain/internal/logging"
	"geartrain/internal/scenario"
)

// rootOptions holds the persistent flags and what PersistentPreRunE builds from them.
type rootOptions struct {
	verbose    bool
	logFile    string
	configPath string

	config *Config
	logger *zap.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "geartrain [scenario.yaml]",
		Short: "Build and animate gear trains on a grid",
		Long: `geartrain is a terminal workbench for gear trains.

Place gears on a grid, pick a driver and watch the train turn. Meshed gears
are detected from their size and spacing; each gear's speed ratio and
direction follow from the driver. A scenario file can preload gears and set
a target ratio to reach.

Run without arguments for an empty workspace.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(opts, args)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug-level logging")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "write logs to this file (overrides log_file in the rc file)")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "rc file to read instead of ~/.geartrainrc")

	cmd.AddCommand(newEvalCommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newPlayCommand(opts))

	return cmd
}

func (o *rootOptions) setup() error {
	if o.configPath != "" {
		o.config = loadConfigFrom(o.configPath)
	} else {
		o.config = loadConfig()
	}

	logFile := o.logFile
	if logFile == "" {
		logFile = o.config.LogFile
	}
	logger, err := logging.New(logFile, o.verbose)
	if err != nil {
		return err
	}
	o.logger = logger
	return nil
}

func loadScenario(args []string) (*scenario.Scenario, error) {
	if len(args) == 0 {
		return &scenario.Scenario{}, nil
	}
	return scenario.Load(args[0])
}

func runInteractive(opts *rootOptions, args []string) error {
	sc, err := loadScenario(args)
	if err != nil {
		return err
	}
	opts.logger.Info("workbench started",
		zap.String("scenario", sc.Name),
		zap.Int("gears", len(sc.Gears)),
		zap.String("theme", opts.config.Theme))

	p := tea.NewProgram(
		newModel(sc, opts.config, opts.logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run workbench: %w", err)
	}
	return nil
}
