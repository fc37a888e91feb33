// Package main provides the CLI entrypoint for tuigral.
package main

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuigral/internal/config"
	"github.com/verte-zerg/tuigral/internal/model"
	"github.com/verte-zerg/tuigral/internal/session"
	"github.com/verte-zerg/tuigral/internal/store"
	"github.com/verte-zerg/tuigral/internal/tui"
)

const (
	defaultFunction = "x"
	defaultXMin     = -5.0
	defaultXMax     = 5.0
	defaultYMin     = -10.0
	defaultYMax     = 10.0
	defaultLower    = 0.0
	defaultUpper    = 0.0
	defaultStep     = 0.001
	defaultLast     = 20

	logEnvVar = "TUIGRAL_LOG"
)

// plotFlags holds the startup function, window and bounds shared by the
// root and eval commands.
type plotFlags struct {
	function  string
	xMin      float64
	xMax      float64
	yMin      float64
	yMax      float64
	lower     float64
	upper     float64
	step      float64
	noHistory bool
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &plotFlags{}
	rootCmd := &cobra.Command{
		Use:           "tuigral",
		Short:         "TUI numerical integration calculator",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalculatorCmd(cmd, flags)
		},
	}
	addPlotFlags(rootCmd, flags)
	rootCmd.Flags().BoolVar(&flags.noHistory, "no-history", false, "do not record computations")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newEvalCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func addPlotFlags(cmd *cobra.Command, flags *plotFlags) {
	cmd.Flags().StringVar(&flags.function, "function", defaultFunction, "function of x to integrate")
	cmd.Flags().Float64Var(&flags.xMin, "x-min", defaultXMin, "left edge of the plot window")
	cmd.Flags().Float64Var(&flags.xMax, "x-max", defaultXMax, "right edge of the plot window")
	cmd.Flags().Float64Var(&flags.yMin, "y-min", defaultYMin, "bottom edge of the plot window")
	cmd.Flags().Float64Var(&flags.yMax, "y-max", defaultYMax, "top edge of the plot window")
	cmd.Flags().Float64Var(&flags.lower, "lower", defaultLower, "lower limit of integration")
	cmd.Flags().Float64Var(&flags.upper, "upper", defaultUpper, "upper limit of integration")
	cmd.Flags().Float64Var(&flags.step, "step", defaultStep, "sampling step")
}

// resolveConfig merges the config file into flags that were not set
// explicitly and validates the result.
func resolveConfig(cmd *cobra.Command, flags *plotFlags) (model.Config, config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	plot := fileCfg.Plot
	applyStringConfig(cmd, "function", &flags.function, plot.Function)
	applyFloatConfig(cmd, "x-min", &flags.xMin, plot.XMin)
	applyFloatConfig(cmd, "x-max", &flags.xMax, plot.XMax)
	applyFloatConfig(cmd, "y-min", &flags.yMin, plot.YMin)
	applyFloatConfig(cmd, "y-max", &flags.yMax, plot.YMax)
	applyFloatConfig(cmd, "lower", &flags.lower, plot.Lower)
	applyFloatConfig(cmd, "upper", &flags.upper, plot.Upper)
	applyFloatConfig(cmd, "step", &flags.step, plot.Step)

	cfg := model.Config{
		Function: flags.function,
		Window: model.PlotWindow{
			XMin: flags.xMin,
			XMax: flags.xMax,
			YMin: flags.yMin,
			YMax: flags.yMax,
		},
		Bounds: model.Bounds{Lower: flags.lower, Upper: flags.upper},
		Step:   flags.step,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, config.FileConfig{}, err
	}
	return cfg, fileCfg, nil
}

func runCalculatorCmd(cmd *cobra.Command, flags *plotFlags) error {
	cfg, fileCfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	var opts []session.Option
	if historyEnabled(flags.noHistory, fileCfg.History.Enabled) {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			logErrln("history disabled:", fmt.Errorf("failed to open db: %w", err))
		} else {
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logErrf("failed to close db: %v\n", cerr)
				}
			}()
			opts = append(opts, session.WithRecorder(st))
		}
	}

	s, err := session.New(cfg, opts...)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	program := tea.NewProgram(tui.NewModel(s), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// setupLogging sends the std logger to the file named by TUIGRAL_LOG, or
// discards it, so nothing is written over the TUI.
func setupLogging() (func(), error) {
	path := strings.TrimSpace(os.Getenv(logEnvVar))
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "tuigral")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}, nil
}

func historyEnabled(noHistory bool, enabled *bool) bool {
	if noHistory {
		return false
	}
	if enabled != nil {
		return *enabled
	}
	return true
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	var last int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded computations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryCmd(cmd, last)
		},
	}
	cmd.Flags().IntVar(&last, "last", defaultLast, "limit to last N computations (0 for all)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, last int) error {
	if last < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	return printHistory(cmd.Context(), cmd.OutOrStdout(), st, last)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuigral configuration
# Uncomment a value to enable it. CLI flags override config values.

[plot]
# function = %q           # Function of x to integrate
# x-min = %g              # Left edge of the plot window
# x-max = %g               # Right edge of the plot window
# y-min = %g             # Bottom edge of the plot window
# y-max = %g              # Top edge of the plot window
# lower = %g               # Lower limit of integration
# upper = %g               # Upper limit of integration
# step = %g            # Sampling step

[history]
# enabled = true          # Record computed areas
`,
		defaultFunction,
		defaultXMin,
		defaultXMax,
		defaultYMin,
		defaultYMax,
		defaultLower,
		defaultUpper,
		defaultStep,
	)
}

func validateConfig(cfg model.Config) error {
	if strings.TrimSpace(cfg.Function) == "" {
		return fmt.Errorf("--function must not be empty")
	}
	if !(cfg.Step > 0) || math.IsInf(cfg.Step, 0) {
		return fmt.Errorf("--step must be > 0")
	}
	for name, v := range map[string]float64{
		"--x-min": cfg.Window.XMin,
		"--x-max": cfg.Window.XMax,
		"--y-min": cfg.Window.YMin,
		"--y-max": cfg.Window.YMax,
		"--lower": cfg.Bounds.Lower,
		"--upper": cfg.Bounds.Upper,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be a finite number", name)
		}
	}
	if cfg.Window.XMin >= cfg.Window.XMax {
		return fmt.Errorf("--x-min must be < --x-max")
	}
	if cfg.Window.YMin >= cfg.Window.YMax {
		return fmt.Errorf("--y-min must be < --y-max")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
