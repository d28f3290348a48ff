package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"geartrain/internal/anim"
	"geartrain/internal/gear"
	"geartrain/internal/report"
	"geartrain/internal/scenario"
)

var validFormats = []string{"text", "json"}

type evalOptions struct {
	angle  float64
	format string
	watch  bool
}

func newEvalCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &evalOptions{}

	cmd := &cobra.Command{
		Use:   "eval <scenario.yaml>",
		Short: "Print the gear chain of a scenario without starting the workbench",
		Long: `Evaluate a scenario file and print each gear's speed ratio, direction and
angle, the overall ratio, the target check, loops whose meshes disagree and
groups of gears that are not meshed with each other.

With --watch the scenario is evaluated again every time the file changes.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.format, validFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if err := runEval(out, args[0], opts, rootOpts.config.MaxGears); err != nil {
				return err
			}
			if !opts.watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			w, err := newScenarioWatcher(args[0], rootOpts.logger)
			if err != nil {
				return err
			}
			return w.Run(ctx, func() {
				fmt.Fprintln(out)
				if err := runEval(out, args[0], opts, rootOpts.config.MaxGears); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
				}
			})
		},
	}

	cmd.Flags().Float64Var(&opts.angle, "angle", 0, "driver angle in degrees")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format (text|json)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-evaluate when the file changes")

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range validFormats {
		if f == format {
			return true
		}
	}
	return false
}

func runEval(w io.Writer, path string, opts *evalOptions, maxGears int) error {
	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}
	r := report.Build(sc.Name, sc.Workspace(maxGears), opts.angle, sc.TargetRatio, sc.TargetGearID())

	if opts.format == "json" {
		data, err := r.JSON()
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	_, err = fmt.Fprint(w, r.Text())
	return err
}

type exportOptions struct {
	output string
	angle  float64
}

func newExportCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export <scenario.yaml>",
		Short: "Render a scenario to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			output := opts.output
			if output == "" {
				output, err = rootOpts.config.GetSavePath(trimExt(filepath.Base(args[0])) + ".png")
				if err != nil {
					return err
				}
			}

			m := newModel(sc, rootOpts.config, rootOpts.logger)
			m.driver.SetAngle(opts.angle)
			if err := m.exportPNG(output); err != nil {
				return fmt.Errorf("export %s: %w", output, err)
			}
			rootOpts.logger.Info("png exported", zap.String("scenario", args[0]), zap.String("path", output))
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "PNG file to write (default <scenario>.png)")
	cmd.Flags().Float64Var(&opts.angle, "angle", 0, "driver angle in degrees")

	return cmd
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}

type playOptions struct {
	duration time.Duration
	frameMS  int
}

func newPlayCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &playOptions{}

	cmd := &cobra.Command{
		Use:   "play <scenario.yaml>",
		Short: "Animate a scenario headlessly, printing every gear's angle per frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			frameMS := opts.frameMS
			if frameMS <= 0 {
				frameMS = rootOpts.config.FrameMS
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runPlay(ctx, cmd.OutOrStdout(), sc.Workspace(rootOpts.config.MaxGears).Chain(),
				opts.duration, time.Duration(frameMS)*time.Millisecond, rootOpts.config.StepDegrees)
		},
	}

	cmd.Flags().DurationVar(&opts.duration, "duration", 2*time.Second, "how long to play")
	cmd.Flags().IntVar(&opts.frameMS, "frame-ms", 0, "milliseconds per frame (default frame_ms from the rc file)")

	return cmd
}

// runPlay drives the chain with an anim.Loop until duration elapses or ctx is done.
func runPlay(ctx context.Context, w io.Writer, chain gear.Chain, duration, interval time.Duration, step float64) error {
	if chain.Len() == 0 {
		return fmt.Errorf("nothing to play: the scenario has no driver")
	}
	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	loop := anim.NewLoop(anim.NewDriver(step), interval, func(angle float64) {
		fmt.Fprintln(w, frameLine(chain, angle))
	})
	loop.Start(ctx)
	<-ctx.Done()
	loop.Stop()
	return nil
}

// frameLine is one frame of play output: the driver angle, then each driven gear in
// chain order.
func frameLine(chain gear.Chain, driverAngle float64) string {
	angles := gear.ComputeAngles(chain, driverAngle)
	var b strings.Builder
	fmt.Fprintf(&b, "%6.1f°", driverAngle)
	for _, id := range chain.Order() {
		fmt.Fprintf(&b, "  #%d %7.1f", id, gear.NormalizeDegrees(angles[id]))
	}
	return b.String()
}

// scenarioWatcher re-runs a callback when one scenario file changes. It watches the
// parent directory because editors often save by renaming a temp file over the original.
type scenarioWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	logger   *zap.Logger
}

func newScenarioWatcher(path string, logger *zap.Logger) (*scenarioWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &scenarioWatcher{
		watcher:  watcher,
		path:     abs,
		debounce: 200 * time.Millisecond,
		logger:   logger,
	}, nil
}

// Run blocks until ctx is cancelled or the watcher fails. Bursts of events within the
// debounce window produce one reload.
func (w *scenarioWatcher) Run(ctx context.Context, reload func()) error {
	defer w.watcher.Close()

	var settle *time.Timer
	var settleC <-chan time.Time
	defer func() {
		if settle != nil {
			settle.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("scenario changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if settle != nil {
				settle.Stop()
			}
			settle = time.NewTimer(w.debounce)
			settleC = settle.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-settleC:
			settleC = nil
			w.logger.Info("reloading scenario", zap.String("path", w.path))
			reload()
		}
	}
}
