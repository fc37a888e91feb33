package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuigral/internal/chart"
	"github.com/verte-zerg/tuigral/internal/model"
	"github.com/verte-zerg/tuigral/internal/report"
	"github.com/verte-zerg/tuigral/internal/session"
)

const defaultEvalHeight = 16

type evalOptions struct {
	noPlot bool
	width  int
	height int
	plain  bool
}

func newEvalCmd() *cobra.Command {
	flags := &plotFlags{}
	opts := &evalOptions{}
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Print the area and chart without starting the TUI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !opts.plain {
				opts.plain = !chart.ShouldUseColor(out)
			}
			return runEval(out, cfg, *opts)
		},
	}
	addPlotFlags(cmd, flags)
	cmd.Flags().BoolVar(&opts.noPlot, "no-plot", false, "print only the area")
	cmd.Flags().IntVar(&opts.width, "width", 0, "plot width in cells (0 fits the terminal)")
	cmd.Flags().IntVar(&opts.height, "height", defaultEvalHeight, "plot height in cells")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "disable colors")
	return cmd
}

func runEval(w io.Writer, cfg model.Config, opts evalOptions) error {
	if opts.width < 0 || opts.height < 0 {
		return fmt.Errorf("--width and --height must be >= 0")
	}
	s, err := session.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to evaluate: %w", err)
	}
	v := s.View()
	if err := report.RenderComputation(w, v.Function, v.Bounds, v.Area); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if opts.noPlot {
		return nil
	}
	width := opts.width
	if width == 0 {
		width = chart.PlotWidthFor(chart.TerminalWidth(), v.Window, opts.height)
	}
	datasets := []chart.Dataset{
		{Name: "f(x)", Points: v.Samples, Color: "#FF4D4F", Connect: true},
		{Name: "bounds", Points: v.LowerLine, Color: "#C89A3A", Connect: true},
		{Name: "", Points: v.UpperLine, Color: "#C89A3A", Connect: true},
		{Name: "y = 0", Points: v.ZeroLine, Color: "#C05BD6", Connect: true},
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := chart.Write(w, "", datasets, v.Window, chart.Options{Width: width, Height: opts.height, Plain: opts.plain}); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}

type historyLister interface {
	ListHistory(ctx context.Context, last int) ([]model.HistoryEntry, error)
}

func printHistory(ctx context.Context, w io.Writer, src historyLister, last int) error {
	entries, err := src.ListHistory(ctx, last)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if err := report.RenderHistory(w, entries); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
