package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/breathe/internal/domain"
	breatheerrors "github.com/mrz1836/breathe/internal/errors"
	"github.com/mrz1836/breathe/internal/pattern"
)

const (
	// maxPatternFileSize guards against reading something that is clearly not a pattern.
	maxPatternFileSize = 64 * 1024

	// maxConcurrent bounds parallel file reads.
	maxConcurrent = 8
)

// Entry is a pattern together with where it came from and how it validated.
type Entry struct {
	// Pattern is the pattern as written, which may be invalid.
	Pattern domain.Pattern `json:"pattern" yaml:"pattern"`
	// Source is SourceBuiltin or the file path.
	Source string `json:"source" yaml:"source"`
	// Validation is the full validation report.
	Validation domain.ValidationResult `json:"validation" yaml:"validation"`
}

// Usable returns the pattern to run: the pattern itself when valid, otherwise
// its fallback.
func (e Entry) Usable() domain.Pattern {
	if e.Validation.Valid || e.Validation.Fallback == nil {
		return e.Pattern.Clone()
	}
	return e.Validation.Fallback.Clone()
}

// FileResult is the outcome of loading one pattern file.
type FileResult struct {
	Path  string
	Entry Entry
	// Err is set when the file could not be read or parsed at all.
	Err error
}

// ParseDocument decodes YAML (or JSON, which YAML accepts) and validates it.
// A document that decodes but fails validation is not an error; the report is
// in the returned entry.
func ParseDocument(data []byte, source string) (Entry, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Entry{}, fmt.Errorf("%w: %s: %w", breatheerrors.ErrPatternParse, source, err)
	}
	if doc == nil {
		return Entry{}, fmt.Errorf("%w: %s: document is empty", breatheerrors.ErrPatternParse, source)
	}

	p, result := pattern.ValidateDocument(doc)
	return Entry{Pattern: p, Source: source, Validation: result}, nil
}

// LoadFile reads and validates a single pattern file.
func LoadFile(path string) (Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %w", breatheerrors.ErrPatternLoadFailed, err)
	}
	if info.IsDir() {
		return Entry{}, fmt.Errorf("%w: %s is a directory", breatheerrors.ErrPatternLoadFailed, path)
	}
	if info.Size() > maxPatternFileSize {
		return Entry{}, fmt.Errorf("%w: %s is too large (%d > %d bytes)",
			breatheerrors.ErrPatternLoadFailed, path, info.Size(), maxPatternFileSize)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the user on purpose
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %w", breatheerrors.ErrPatternLoadFailed, err)
	}

	return ParseDocument(data, path)
}

// LoadFiles loads the given files concurrently. Results are in input order.
// It only fails when ctx is canceled.
func LoadFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			entry, err := LoadFile(path)
			// Each goroutine owns its own slot.
			results[i] = FileResult{Path: path, Entry: entry, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// LoadDir loads every .yaml and .yml file in dir. A missing directory yields
// no entries. Files that cannot be read or parsed are reported as warnings
// rather than failing the whole load.
func LoadDir(ctx context.Context, dir string) ([]Entry, []string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil, nil
		}
		return nil, nil, fmt.Errorf("%w: listing %s: %w", breatheerrors.ErrPatternLoadFailed, dir, err)
	}

	var paths []string
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		if isPatternFile(de.Name()) {
			paths = append(paths, filepath.Join(dir, de.Name()))
		}
	}
	sort.Strings(paths)

	results, err := LoadFiles(ctx, paths)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]Entry, 0, len(results))
	var warnings []string
	for _, r := range results {
		if r.Err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", filepath.Base(r.Path), r.Err))
			continue
		}
		entries = append(entries, r.Entry)
	}
	return entries, warnings, nil
}

func isPatternFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
