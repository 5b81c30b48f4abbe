package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/breathe/internal/domain"
	"github.com/mrz1836/breathe/internal/errors"
	"github.com/mrz1836/breathe/internal/library"
	"github.com/mrz1836/breathe/internal/logging"
	"github.com/mrz1836/breathe/internal/tui"
)

// ValidateFlags holds flags specific to the validate command.
type ValidateFlags struct {
	// Strict treats performance warnings as failures.
	Strict bool
}

// fileReport is the JSON form of one validated file.
type fileReport struct {
	Path       string                   `json:"path"`
	Name       string                   `json:"name,omitempty"`
	Valid      bool                     `json:"valid"`
	Validation *domain.ValidationResult `json:"validation,omitempty"`
	Error      string                   `json:"error,omitempty"`
}

// AddValidateCommand adds the validate command to the root command.
func AddValidateCommand(root *cobra.Command, globals *GlobalFlags) {
	root.AddCommand(newValidateCmd(globals, &ValidateFlags{}))
}

func newValidateCmd(globals *GlobalFlags, flags *ValidateFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check pattern files for problems",
		Long: `Validate one or more YAML pattern files.

Every problem in a file is reported, not just the first one: durations out of
range, missing fields, and a type that does not match the phases. Phases longer
than 30 seconds are reported as warnings.

Exits with code 2 when any file is invalid.

Examples:
  breathe validate calm.yaml
  breathe validate ~/.breathe/patterns/*.yaml --output json
  breathe validate --strict long-holds.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), cmd.OutOrStdout(), globals.Output, flags, args)
		},
	}

	cmd.Flags().BoolVar(&flags.Strict, "strict", false, "treat warnings as failures")

	return cmd
}

func runValidate(ctx context.Context, w io.Writer, format string, flags *ValidateFlags, paths []string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	logger := GetLogger()

	results, err := library.LoadFiles(ctx, paths)
	if err != nil {
		return err
	}

	reports := make([]fileReport, 0, len(results))
	failed := 0
	for _, r := range results {
		report := buildFileReport(r, flags.Strict)
		if !report.Valid {
			failed++
		}
		reports = append(reports, report)
		logger.Debug().
			Str("path", logging.SafeValue(r.Path)).
			Bool("valid", report.Valid).
			Msg("pattern file validated")
	}

	if format == OutputJSON {
		if err := tui.NewJSONOutput(w).JSON(reports); err != nil {
			return err
		}
	} else {
		tui.CheckNoColor()
		printFileReports(tui.NewTTYOutput(w), results, reports)
	}

	if failed > 0 {
		return errors.NewExitCode2Error(fmt.Errorf("%w: %d of %d file(s) failed validation",
			errors.ErrInvalidPattern, failed, len(results)))
	}
	return nil
}

func buildFileReport(r library.FileResult, strict bool) fileReport {
	if r.Err != nil {
		return fileReport{Path: r.Path, Error: r.Err.Error()}
	}
	v := r.Entry.Validation
	return fileReport{
		Path:       r.Path,
		Name:       r.Entry.Pattern.Name,
		Valid:      v.Valid && (!strict || len(v.Warnings) == 0),
		Validation: &v,
	}
}

func printFileReports(out *tui.TTYOutput, results []library.FileResult, reports []fileReport) {
	for i, report := range reports {
		label := logging.SafeValue(report.Path)
		if report.Name != "" {
			label += " (" + logging.SafeValue(report.Name) + ")"
		}

		switch {
		case report.Error != "":
			out.Error(fmt.Errorf("%s: %s", label, logging.SafeValue(report.Error)))
			continue
		case report.Valid:
			out.Success(label)
		default:
			out.Error(stderrors.New(label))
		}

		v := results[i].Entry.Validation
		for _, issue := range v.Errors {
			out.Issue(issue)
		}
		for _, issue := range v.Warnings {
			out.Issue(issue)
		}
		if v.Fallback != nil {
			out.Info(fmt.Sprintf("  would run as %s (%s)", logging.SafeValue(v.Fallback.Name), tui.Timing(*v.Fallback)))
		}
	}
}
