// Package keywords loads and validates the technology keyword dictionary.
// The dictionary is the static knowledge base behind README analysis: each
// entry maps a canonical technology term to a category, a set of
// case-insensitive recognition aliases, and a priority weight.
//
// Entries are immutable after Load. Scan order (file name order, then
// in-file order) is the order keywords appear in analysis results.
package keywords

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPriority is the weight assigned to entries that omit priority,
// and the rank substituted for subjects with no usable priority.
const DefaultPriority = 3

// Entry is a single dictionary record.
type Entry struct {
	Term     string   `yaml:"term"`
	Category string   `yaml:"category"`
	Aliases  []string `yaml:"aliases"`
	Priority int      `yaml:"priority"`
}

// Dictionary holds the loaded entry list plus derived lookup tables.
type Dictionary struct {
	Entries []Entry

	byTerm map[string]int // lowercased canonical term -> entry index
}

// Load reads all YAML dictionary files from an fs.FS directory.
// Files load in sorted name order for deterministic scan order.
// Returns an error on parse failure, duplicate terms, unknown categories,
// or entries without aliases.
func Load(fsys fs.FS, dir string) (*Dictionary, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read dictionary dir %q: %w", dir, err)
	}

	// Sort for deterministic load order
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var all []Entry
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := dir + "/" + entry.Name()
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		var batch []Entry
		if err := yaml.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		all = append(all, batch...)
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("dictionary is empty: no entries found in %q", dir)
	}

	byTerm := make(map[string]int, len(all))
	for i := range all {
		e := &all[i]
		if e.Term == "" {
			return nil, fmt.Errorf("entry %d has no term", i)
		}
		if !validCategory(e.Category) {
			return nil, fmt.Errorf("entry %q: unknown category %q", e.Term, e.Category)
		}
		if len(e.Aliases) == 0 {
			return nil, fmt.Errorf("entry %q has no aliases", e.Term)
		}
		if e.Priority == 0 {
			e.Priority = DefaultPriority
		}
		lower := strings.ToLower(e.Term)
		if prev, dup := byTerm[lower]; dup {
			return nil, fmt.Errorf("duplicate term %q (entries %d and %d)", e.Term, prev, i)
		}
		byTerm[lower] = i
	}

	return &Dictionary{Entries: all, byTerm: byTerm}, nil
}

// Find returns the entry for a canonical term (case-insensitive), or nil.
func (d *Dictionary) Find(term string) *Entry {
	if i, ok := d.byTerm[strings.ToLower(term)]; ok {
		return &d.Entries[i]
	}
	return nil
}

// TermsByCategory returns the canonical terms in a category, sorted.
func (d *Dictionary) TermsByCategory(category string) []string {
	var terms []string
	for i := range d.Entries {
		if d.Entries[i].Category == category {
			terms = append(terms, d.Entries[i].Term)
		}
	}
	sort.Strings(terms)
	return terms
}
