package library

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mrz1836/breathe/internal/domain"
	breatheerrors "github.com/mrz1836/breathe/internal/errors"
	"github.com/mrz1836/breathe/internal/pattern"
)

// Catalog is a set of patterns addressable by name, case-insensitively.
// Adding an entry with an existing name replaces it, so user files can
// override built-ins.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// NewCatalog returns a catalog holding the given entries in order.
func NewCatalog(entries ...Entry) *Catalog {
	c := &Catalog{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		c.Add(e)
	}
	return c
}

// Default returns a catalog of the validated built-in patterns.
func Default() *Catalog {
	builtin := Builtin()
	c := &Catalog{index: make(map[string]int, len(builtin))}
	for _, p := range builtin {
		c.Add(Entry{
			Pattern:    p,
			Source:     SourceBuiltin,
			Validation: pattern.ValidatePatternDetailed(&p),
		})
	}
	return c
}

// Load returns the built-in catalog extended with the pattern files in dir.
// An empty dir loads only the built-ins. Unreadable files are returned as
// warnings.
func Load(ctx context.Context, dir string) (*Catalog, []string, error) {
	c := Default()
	if dir == "" {
		return c, nil, nil
	}

	entries, warnings, err := LoadDir(ctx, dir)
	if err != nil {
		return nil, nil, err
	}
	for _, e := range entries {
		c.Add(e)
	}
	return c, warnings, nil
}

// Add inserts or replaces an entry. Entries without a name are keyed by source.
func (c *Catalog) Add(e Entry) {
	key := normalize(e.Pattern.Name)
	if key == "" {
		key = normalize(e.Source)
	}
	if i, ok := c.index[key]; ok {
		c.entries[i] = e
		return
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, e)
}

// Lookup finds an entry by name.
func (c *Catalog) Lookup(name string) (Entry, error) {
	i, ok := c.index[normalize(name)]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", breatheerrors.ErrPatternNotFound, name)
	}
	return c.entries[i], nil
}

// Pattern returns the usable pattern for a name, substituting the fallback
// for an invalid entry.
func (c *Catalog) Pattern(name string) (domain.Pattern, error) {
	e, err := c.Lookup(name)
	if err != nil {
		return domain.Pattern{}, err
	}
	return e.Usable(), nil
}

// Entries returns all entries in insertion order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Names returns the entry names sorted alphabetically.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		if e.Pattern.Name != "" {
			names = append(names, e.Pattern.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
