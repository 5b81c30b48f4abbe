package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mrz1836/breathe/internal/config"
	"github.com/mrz1836/breathe/internal/errors"
	"github.com/mrz1836/breathe/internal/geometry"
	"github.com/mrz1836/breathe/internal/library"
	"github.com/mrz1836/breathe/internal/logging"
	"github.com/mrz1836/breathe/internal/phase"
	"github.com/mrz1836/breathe/internal/tui"
)

// RunFlags holds flags specific to the run command.
type RunFlags struct {
	// Pattern is the catalog name of the pattern to run.
	Pattern string
	// File is a pattern file to run instead of a catalog entry.
	File string
	// Cycles quits after this many cycles. Zero runs until quit.
	Cycles int
	// NoProgress hides the cycle progress bar.
	NoProgress bool
}

// pickFunc presents the pattern picker. It is swapped out in tests.
type pickFunc func(title string, options []tui.Option) (string, error)

// sessionSummary is printed when a session ends.
type sessionSummary struct {
	Pattern   string `json:"pattern"`
	SessionID string `json:"sessionId"`
	Cycles    int    `json:"cycles"`
	Completed bool   `json:"completed"`
	Warnings  int64  `json:"warnings"`
	Fallback  bool   `json:"fallback"`
}

// AddRunCommand adds the run command to the root command.
func AddRunCommand(root *cobra.Command, globals *GlobalFlags) {
	root.AddCommand(newRunCmd(globals, &RunFlags{}, tui.Select))
}

func newRunCmd(globals *GlobalFlags, flags *RunFlags, pick pickFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start a guided breathing session",
		Long: `Start a full-screen breathing session.

Without --pattern or --file an interactive picker lists every known pattern.
When no terminal is attached the configured default pattern is used.

An invalid pattern is never refused: it is replaced by a safe version of
itself and the problems are printed before the session starts.

Keys: space pauses and resumes, r restarts the cycle, q quits.

Examples:
  breathe run
  breathe run --pattern "Box Breathing"
  breathe run --file ./my-pattern.yaml --cycles 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSession(cmd.Context(), cmd, globals, flags, pick)
		},
	}

	cmd.Flags().StringVarP(&flags.Pattern, "pattern", "p", "", "name of the pattern to run")
	cmd.Flags().StringVarP(&flags.File, "file", "f", "", "path to a YAML pattern file")
	cmd.Flags().IntVarP(&flags.Cycles, "cycles", "n", 0, "stop after this many cycles (0 runs until quit)")
	cmd.Flags().BoolVar(&flags.NoProgress, "no-progress", false, "hide the cycle progress bar")
	cmd.MarkFlagsMutuallyExclusive("pattern", "file")
	registerPatternFlagCompletion(cmd)

	return cmd
}

// runSession resolves the pattern, runs the session and prints a summary.
func runSession(ctx context.Context, cmd *cobra.Command, globals *GlobalFlags, flags *RunFlags, pick pickFunc) error {
	model, manager, err := prepareSession(ctx, cmd, globals, flags, pick)
	if err != nil {
		return err
	}

	if err := tui.Run(ctx, model, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return err
	}

	summary := sessionSummary{
		Pattern:   manager.Pattern().Name,
		SessionID: manager.SessionID(),
		Cycles:    model.Snapshot().CycleNumber,
		Completed: model.Finished(),
		Warnings:  LogCounter().Warnings(),
		Fallback:  !manager.Validation().Valid,
	}
	return printSummary(cmd.OutOrStdout(), globals.Output, summary)
}

// prepareSession builds the phase manager and the model without taking over
// the terminal.
func prepareSession(ctx context.Context, cmd *cobra.Command, globals *GlobalFlags, flags *RunFlags, pick pickFunc) (*tui.BreatheModel, *phase.Manager, error) {
	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	default:
	}

	if flags.Cycles < 0 {
		return nil, nil, fmt.Errorf("%w: --cycles must not be negative, got %d", errors.ErrInvalidArgument, flags.Cycles)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := GetLogger()

	entry, err := chooseEntry(ctx, cmd, cfg, flags, pick, logger)
	if err != nil {
		return nil, nil, err
	}

	slog := sessionLogger(logger)

	calc := geometry.NewCalculator(
		geometry.WithCacheSize(cfg.Engine.CacheSize),
		geometry.WithLogger(slog),
	)
	manager := phase.NewManager(entry.Pattern, cfg.PathGeometry(),
		phase.WithCalculator(calc),
		phase.WithMaxTransitions(cfg.Engine.MaxTransitionsPerUpdate),
		phase.WithLogger(slog),
	)

	if v := manager.Validation(); !v.Valid {
		out := tui.NewOutput(cmd.ErrOrStderr(), globals.Output)
		out.Warning(fmt.Sprintf("%s is not a valid pattern, running %s instead",
			logging.SafeValue(entry.Pattern.Name), manager.Pattern().Name))
		for _, issue := range v.Errors {
			out.Issue(issue)
		}
		logger.Warn().
			Str("pattern", logging.SafeValue(entry.Pattern.Name)).
			Str("fallback", manager.Pattern().Name).
			Int("errors", len(v.Errors)).
			Msg("running fallback pattern")
	}

	model := tui.NewBreatheModel(manager, tui.ModelConfig{
		FrameInterval: cfg.Display.FrameInterval,
		ShowProgress:  cfg.Display.ShowProgress && !flags.NoProgress,
		CanvasHeight:  cfg.Display.CanvasHeight,
		MaxCycles:     flags.Cycles,
		ViewportWidth: cfg.Geometry.ViewportWidth,
	},
		tui.WithCounter(LogCounter()),
		tui.WithLogger(slog),
	)
	return model, manager, nil
}

// chooseEntry resolves the pattern from flags, the picker or the configured default.
func chooseEntry(ctx context.Context, cmd *cobra.Command, cfg *config.Config, flags *RunFlags, pick pickFunc, logger zerolog.Logger) (library.Entry, error) {
	if flags.File != "" {
		return library.LoadFile(flags.File)
	}

	cat, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		return library.Entry{}, err
	}

	name := flags.Pattern
	if name == "" && isTerminal(cmd.InOrStdin()) {
		name, err = pick("Choose a breathing pattern", pickerOptions(cat))
		if err != nil {
			return library.Entry{}, err
		}
	}
	return resolveEntry(cat, name, "", cfg.Display.DefaultPattern)
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printSummary(w io.Writer, format string, s sessionSummary) error {
	if format == OutputJSON {
		return tui.NewJSONOutput(w).JSON(s)
	}

	out := tui.NewTTYOutput(w)
	cycles := "cycles"
	if s.Cycles == 1 {
		cycles = "cycle"
	}
	out.Success(fmt.Sprintf("%d %s of %s", s.Cycles, cycles, logging.SafeValue(s.Pattern)))
	if s.Warnings > 0 {
		out.Warning(fmt.Sprintf("%d warning(s) logged, see %s", s.Warnings, logPathHint()))
	}
	return nil
}

func logPathHint() string {
	path, err := LogFilePath()
	if err != nil {
		return "the log file"
	}
	return path
}
