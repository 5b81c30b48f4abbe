package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/mrz1836/breathe/internal/config"
	"github.com/mrz1836/breathe/internal/library"
	"github.com/mrz1836/breathe/internal/logging"
	"github.com/mrz1836/breathe/internal/tui"
)

var (
	glamourRenderer     *glamour.TermRenderer //nolint:gochecknoglobals // cached renderer
	glamourRendererOnce sync.Once             //nolint:gochecknoglobals // sync.Once for renderer initialization
)

// getGlamourRenderer returns a cached glamour renderer for pattern descriptions.
func getGlamourRenderer() *glamour.TermRenderer {
	glamourRendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err == nil {
			glamourRenderer = r
		}
	})
	return glamourRenderer
}

// patternRow is the JSON form of one listed pattern.
type patternRow struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Timing   string `json:"timing"`
	Level    string `json:"level"`
	Category string `json:"category"`
	Source   string `json:"source"`
	Valid    bool   `json:"valid"`
}

// AddPatternsCommand adds the patterns command and its subcommands.
func AddPatternsCommand(root *cobra.Command, globals *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List and inspect breathing patterns",
		Long: `List and inspect the built-in patterns and the pattern files in the
patterns directory (~/.breathe/patterns unless patterns.dir is set).

A file whose pattern has the same name as a built-in replaces it.`,
	}

	cmd.AddCommand(newPatternsListCmd(globals))
	cmd.AddCommand(newPatternsShowCmd(globals))
	root.AddCommand(cmd)
}

func newPatternsListCmd(globals *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available patterns",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPatternsList(cmd.Context(), cmd.OutOrStdout(), globals.Output)
		},
	}
}

func newPatternsShowCmd(globals *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show one pattern with its description",
		Long: `Show a pattern's timing, validation result and description.
Names are matched case-insensitively.

Examples:
  breathe patterns show "box breathing"
  breathe patterns show "Relaxing 4-7-8" --output json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completePatternNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatternsShow(cmd.Context(), cmd.OutOrStdout(), globals.Output, args[0])
		},
	}
}

func loadConfiguredCatalog(ctx context.Context) (*library.Catalog, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return loadCatalog(ctx, cfg, GetLogger())
}

func runPatternsList(ctx context.Context, w io.Writer, format string) error {
	cat, err := loadConfiguredCatalog(ctx)
	if err != nil {
		return err
	}

	entries := cat.Entries()
	rows := make([]patternRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, patternRow{
			Name:     e.Pattern.Name,
			Type:     string(e.Pattern.Type),
			Timing:   tui.Timing(e.Pattern),
			Level:    e.Pattern.Level,
			Category: e.Pattern.Category,
			Source:   e.Source,
			Valid:    e.Validation.Valid,
		})
	}

	if format == OutputJSON {
		return tui.NewJSONOutput(w).JSON(rows)
	}

	tui.CheckNoColor()
	table := tui.NewTable(w, []tui.TableColumn{
		{Name: "NAME", Width: 24},
		{Name: "TIMING", Width: 10},
		{Name: "LEVEL", Width: 12},
		{Name: "CATEGORY", Width: 12},
		{Name: "SOURCE", Width: 10},
	})
	table.WriteHeader()
	for _, r := range rows {
		name := logging.Sanitize(r.Name)
		if !r.Valid {
			name = "! " + name
		}
		table.WriteRow(name, r.Timing, logging.Sanitize(r.Level), logging.Sanitize(r.Category), sourceLabel(r.Source))
	}
	return nil
}

// sourceLabel shortens file sources to "file" for the table.
func sourceLabel(source string) string {
	if source == library.SourceBuiltin {
		return source
	}
	return "file"
}

func runPatternsShow(ctx context.Context, w io.Writer, format, name string) error {
	cat, err := loadConfiguredCatalog(ctx)
	if err != nil {
		return err
	}

	entry, err := cat.Lookup(name)
	if err != nil {
		return err
	}

	if format == OutputJSON {
		return tui.NewJSONOutput(w).JSON(entry)
	}

	tui.CheckNoColor()
	out := tui.NewTTYOutput(w)
	p := entry.Pattern

	_, _ = fmt.Fprintln(w, tui.StyleBold.Render(logging.Sanitize(p.Name)))
	_, _ = fmt.Fprintf(w, "%s · %s · %s · %s\n",
		tui.Timing(p), p.Type, logging.Sanitize(p.Level), logging.Sanitize(p.Category))
	_, _ = fmt.Fprintf(w, "source: %s\n", logging.SafeValue(entry.Source))
	_, _ = fmt.Fprintln(w)

	if entry.Validation.Valid {
		out.Success("valid")
	} else {
		out.Error(fmt.Errorf("invalid, runs as %s", entry.Usable().Name))
	}
	for _, issue := range entry.Validation.Errors {
		out.Issue(issue)
	}
	for _, issue := range entry.Validation.Warnings {
		out.Issue(issue)
	}

	if strings.TrimSpace(p.Description) != "" {
		_, _ = fmt.Fprintln(w)
		renderDescription(w, logging.Sanitize(p.Description))
	}
	return nil
}

// renderDescription renders a markdown description using glamour, falling
// back to indented plain text.
func renderDescription(w io.Writer, description string) {
	if tui.HasColorSupport() {
		if renderer := getGlamourRenderer(); renderer != nil {
			if rendered, err := renderer.Render(description); err == nil {
				_, _ = fmt.Fprint(w, rendered)
				return
			}
		}
	}
	for _, line := range strings.Split(description, "\n") {
		_, _ = fmt.Fprintf(w, "  %s\n", line)
	}
}
