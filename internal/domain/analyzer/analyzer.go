// Package analyzer extracts technology keywords from free-text project
// documentation. It compiles every dictionary alias into a single
// Aho-Corasick automaton, scans the text once, then verifies each raw hit
// against whole-word boundaries before crediting the owning entry.
//
// Extraction is a pure function over the input text: no I/O, deterministic
// for identical input.
package analyzer

import (
	"strings"

	aho "github.com/petar-dambovaliev/aho-corasick"

	"github.com/corey/folio/internal/domain/keywords"
)

// Result is the outcome of analyzing one text.
//
// Keywords holds canonical terms in dictionary scan order, deduplicated.
// Categories groups the same terms by category; every keyword appears under
// exactly one category and vice versa. Priority is the arithmetic mean of
// the matched entries' weights, or 0 when nothing matched ("analyzed,
// nothing found", distinct from the unranked default applied at search
// time).
type Result struct {
	Keywords   []string            `json:"keywords"`
	Categories map[string][]string `json:"categories"`
	Priority   float64             `json:"priority"`
}

// Analyzer scans text for dictionary matches.
type Analyzer struct {
	dict      *keywords.Dictionary
	automaton aho.AhoCorasick
	owner     []int // pattern index -> dictionary entry index
}

// New compiles an analyzer from a loaded dictionary.
func New(dict *keywords.Dictionary) *Analyzer {
	var patterns []string
	var owner []int
	for i := range dict.Entries {
		for _, alias := range dict.Entries[i].Aliases {
			patterns = append(patterns, strings.ToLower(alias))
			owner = append(owner, i)
		}
	}

	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		DFA: true,
	})
	return &Analyzer{
		dict:      dict,
		automaton: builder.Build(patterns),
		owner:     owner,
	}
}

// Extract scans text and returns the matched keywords, their category
// index, and the aggregate priority. Empty text yields an empty result
// with priority 0.
func (a *Analyzer) Extract(text string) Result {
	result := Result{
		Keywords:   []string{},
		Categories: map[string][]string{},
	}
	if text == "" {
		return result
	}

	lower := strings.ToLower(text)

	// One automaton pass; whole-word verification per raw hit.
	// An entry is found if any of its aliases survives the boundary check.
	found := make(map[int]bool)
	iter := a.automaton.IterOverlapping(lower)
	for next := iter.Next(); next != nil; next = iter.Next() {
		m := *next
		entry := a.owner[m.Pattern()]
		if found[entry] {
			continue
		}
		if wholeWord(lower, m.Start(), m.End()) {
			found[entry] = true
		}
	}

	if len(found) == 0 {
		return result
	}

	// Assemble in dictionary scan order so output is deterministic.
	sum := 0
	for i := range a.dict.Entries {
		if !found[i] {
			continue
		}
		e := &a.dict.Entries[i]
		result.Keywords = append(result.Keywords, e.Term)
		result.Categories[e.Category] = append(result.Categories[e.Category], e.Term)
		sum += e.Priority
	}
	result.Priority = float64(sum) / float64(len(found))
	return result
}

// wholeWord reports whether text[start:end] sits on word boundaries.
//
// A boundary exists when the adjacent byte is absent or not word-like.
// This is deliberately not regexp \b semantics, for two reasons:
//
//   - Aliases ending in non-word characters ("c++", "c#", ".net") would
//     never match under \b, which requires a word character after them.
//   - \b would let "js" match inside "node.js". A dot joining two word
//     characters is word-internal here, so "node.js" is one word; a
//     trailing sentence period ("uses React.") still terminates a word.
func wholeWord(text string, start, end int) bool {
	if start > 0 && isWordByte(text[start-1]) {
		return false
	}
	if start > 1 && text[start-1] == '.' && isWordByte(text[start-2]) {
		return false
	}
	if end < len(text) && isWordByte(text[end]) {
		return false
	}
	if end+1 < len(text) && text[end] == '.' && isWordByte(text[end+1]) {
		return false
	}
	return true
}

// isWordByte matches ASCII letters, digits, and underscore.
func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
