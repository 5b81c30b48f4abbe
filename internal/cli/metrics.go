package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/breathe/internal/config"
	"github.com/mrz1836/breathe/internal/domain"
	"github.com/mrz1836/breathe/internal/geometry"
	"github.com/mrz1836/breathe/internal/library"
	"github.com/mrz1836/breathe/internal/logging"
	"github.com/mrz1836/breathe/internal/tui"
)

// MetricsFlags holds flags specific to the metrics command.
type MetricsFlags struct {
	// Pattern is the catalog name of the pattern.
	Pattern string
	// File is a pattern file used instead of a catalog entry.
	File string
	// Geometry overrides the configured geometry where non-zero.
	Geometry config.GeometryConfig
	// Ball anchors the indicator when the ball flag was given; zero is the
	// left edge.
	Ball float64
}

// metricsReport is the JSON form of the metrics command output.
type metricsReport struct {
	Pattern  domain.Pattern           `json:"pattern"`
	Fallback bool                     `json:"fallback"`
	Geometry domain.GeometryConfig    `json:"geometry"`
	Phases   []domain.Phase           `json:"phases"`
	Metrics  domain.Metrics           `json:"metrics"`
	Problems *domain.ValidationResult `json:"validation,omitempty"`
}

// AddMetricsCommand adds the metrics command to the root command.
func AddMetricsCommand(root *cobra.Command, globals *GlobalFlags) {
	root.AddCommand(newMetricsCmd(globals, &MetricsFlags{}))
}

func newMetricsCmd(globals *GlobalFlags, flags *MetricsFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show the path geometry of a pattern",
		Long: `Show the segment lengths, ball speeds and alignment of a pattern's path.

Geometry comes from the configuration and can be overridden per call.
Values that cannot be computed are replaced by safe defaults and listed.

Examples:
  breathe metrics --pattern "Relaxing 4-7-8"
  breathe metrics --file calm.yaml --viewport 1200 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("ball") {
				flags.Geometry.FixedBallPosition = domain.BallAt(flags.Ball)
			}
			return runMetrics(cmd.Context(), cmd.OutOrStdout(), globals.Output, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Pattern, "pattern", "p", "", "name of the pattern (default: display.default_pattern)")
	cmd.Flags().StringVarP(&flags.File, "file", "f", "", "path to a YAML pattern file")
	cmd.Flags().Float64Var(&flags.Geometry.DiagonalLength, "diagonal", 0, "diagonal segment length in pixels")
	cmd.Flags().Float64Var(&flags.Geometry.MaxHorizontalLength, "max-hold", 0, "maximum hold segment length in pixels")
	cmd.Flags().Float64Var(&flags.Geometry.ViewportWidth, "viewport", 0, "viewport width in pixels")
	cmd.Flags().Float64Var(&flags.Ball, "ball", 0, "ball position in pixels (default: centre of the viewport)")
	cmd.Flags().Float64Var(&flags.Geometry.DiagonalAngleDegrees, "angle", 0, "diagonal angle in degrees")
	cmd.MarkFlagsMutuallyExclusive("pattern", "file")
	registerPatternFlagCompletion(cmd)

	return cmd
}

func runMetrics(ctx context.Context, w io.Writer, format string, flags *MetricsFlags) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cfg, err := config.LoadWithOverrides(ctx, &config.Config{Geometry: flags.Geometry})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := GetLogger()

	var entry library.Entry
	if flags.File != "" {
		entry, err = library.LoadFile(flags.File)
	} else {
		var cat *library.Catalog
		if cat, err = loadCatalog(ctx, cfg, logger); err == nil {
			entry, err = resolveEntry(cat, flags.Pattern, "", cfg.Display.DefaultPattern)
		}
	}
	if err != nil {
		return err
	}

	calc := geometry.NewCalculator(
		geometry.WithCacheSize(cfg.Engine.CacheSize),
		geometry.WithLogger(logger),
	)
	usable := entry.Usable()
	phases, metrics, err := calc.Phases(&usable, cfg.PathGeometry())
	if err != nil {
		return err
	}

	report := metricsReport{
		Pattern:  usable,
		Fallback: !entry.Validation.Valid,
		Geometry: cfg.PathGeometry(),
		Phases:   phases,
		Metrics:  metrics,
	}
	if !entry.Validation.Valid {
		report.Problems = &entry.Validation
	}

	if format == OutputJSON {
		return tui.NewJSONOutput(w).JSON(report)
	}

	tui.CheckNoColor()
	printMetrics(w, report)
	return nil
}

func printMetrics(w io.Writer, r metricsReport) {
	out := tui.NewTTYOutput(w)
	styles := tui.NewOutputStyles()

	_, _ = fmt.Fprintf(w, "%s  %s\n", tui.StyleBold.Render(logging.SafeValue(r.Pattern.Name)), tui.Timing(r.Pattern))
	if r.Fallback {
		out.Warning("the requested pattern is invalid; showing its safe replacement")
	}
	_, _ = fmt.Fprintln(w)

	table := tui.NewTable(w, []tui.TableColumn{
		{Name: "PHASE", Width: 12},
		{Name: "SECONDS", Width: 8, Align: tui.AlignRight},
		{Name: "LENGTH px", Width: 10, Align: tui.AlignRight},
		{Name: "SPEED px/ms", Width: 12, Align: tui.AlignRight},
	})
	table.WriteHeader()
	for _, p := range r.Phases {
		table.WriteRow(
			tui.PhaseLabel(p.Name),
			strconv.FormatFloat(p.Duration, 'g', -1, 64),
			fmt.Sprintf("%.1f", p.SegmentLength),
			fmt.Sprintf("%.4f", p.BallSpeed),
		)
	}
	_, _ = fmt.Fprintln(w)

	m := r.Metrics
	ext := m.InfiniteExtension
	_, _ = fmt.Fprintf(w, "bottom %.1fpx  top %.1fpx  diagonal %.1fpx (%.1f × %.1f)\n",
		m.BottomHorizontalLength, m.TopHorizontalLength, m.DiagonalLength, m.DiagonalHorizontal, m.DiagonalVertical)
	_, _ = fmt.Fprintf(w, "ball at %.1fpx  offset %.1fpx  cycle width %.1fpx  tiles %d\n",
		m.BallPosition, m.HorizontalOffset, ext.CycleWidth, ext.TilesRequired)
	_, _ = fmt.Fprintf(w, "covers %.1f … %.1f  no gaps: %t\n",
		ext.LeftBoundary, ext.RightBoundary, ext.HasNoGaps)

	if !m.Valid {
		_, _ = fmt.Fprintln(w, styles.Warning.Render("substituted values:"))
		for _, issue := range m.Errors {
			out.Issue(issue)
		}
	}
}
