package cli

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mrz1836/breathe/internal/config"
	"github.com/mrz1836/breathe/internal/library"
	"github.com/mrz1836/breathe/internal/logging"
	"github.com/mrz1836/breathe/internal/tui"
)

// loadCatalog returns the built-in patterns merged with the configured
// pattern directory. Files that cannot be read are logged and skipped.
func loadCatalog(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*library.Catalog, error) {
	dir := cfg.PatternDir()
	cat, warnings, err := library.Load(ctx, dir)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		logger.Warn().
			Str("component", "library").
			Str("dir", dir).
			Msg(logging.SafeValue(w))
	}
	logger.Debug().
		Str("component", "library").
		Int("patterns", cat.Len()).
		Msg("catalog loaded")
	return cat, nil
}

// resolveEntry finds the entry a command should work on. A file wins over a
// name; with neither, fallbackName is looked up.
func resolveEntry(cat *library.Catalog, name, file, fallbackName string) (library.Entry, error) {
	if file != "" {
		return library.LoadFile(file)
	}
	if name == "" {
		name = fallbackName
	}
	return cat.Lookup(name)
}

// pickerOptions lists catalog entries for the interactive picker, with the
// timing as description.
func pickerOptions(cat *library.Catalog) []tui.Option {
	entries := cat.Entries()
	opts := make([]tui.Option, 0, len(entries))
	for _, e := range entries {
		if e.Pattern.Name == "" {
			continue
		}
		desc := tui.Timing(e.Pattern)
		if !e.Validation.Valid {
			desc += " (invalid)"
		}
		opts = append(opts, tui.Option{
			Label:       tui.Truncate(logging.Sanitize(e.Pattern.Name), 40),
			Description: desc,
			Value:       e.Pattern.Name,
		})
	}
	return opts
}
