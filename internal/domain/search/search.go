// Package search filters and ranks enriched repositories. It consumes the
// enrichment fields written by the orchestrator (keywords, categories,
// priority) plus the keyword dictionary for alias-based recall, so an
// informal query like "node" still finds Node.js projects.
package search

import (
	"sort"
	"strings"

	"github.com/corey/folio/internal/domain/keywords"
	"github.com/corey/folio/internal/ports"
)

// Ranker orders two repositories; reports whether a ranks before b.
// Relevance ranking is the default; callers may substitute any other key.
type Ranker func(a, b *ports.Repo) bool

// ByRelevance ranks by effective priority ascending (lower = more
// relevant), then by matched keyword count descending (richer analysis
// first), then by stars descending for stability.
func ByRelevance(a, b *ports.Repo) bool {
	pa, pb := effectivePriority(a), effectivePriority(b)
	if pa != pb {
		return pa < pb
	}
	if len(a.Keywords) != len(b.Keywords) {
		return len(a.Keywords) > len(b.Keywords)
	}
	return a.Stars > b.Stars
}

// ByStars ranks by stargazer count descending.
func ByStars(a, b *ports.Repo) bool {
	if a.Stars != b.Stars {
		return a.Stars > b.Stars
	}
	return a.Name < b.Name
}

// ByRecency ranks by push time descending. Timestamps are RFC 3339, so
// lexical comparison is chronological.
func ByRecency(a, b *ports.Repo) bool {
	if a.PushedAt != b.PushedAt {
		return a.PushedAt > b.PushedAt
	}
	return a.Name < b.Name
}

// ByName ranks alphabetically, case-insensitive.
func ByName(a, b *ports.Repo) bool {
	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}

// effectivePriority maps a repository's analysis priority to a ranking
// key. Priorities at or below zero mean "analyzed with no matches" or
// "never analyzed"; both rank with the neutral default rather than ahead
// of genuine priority-1 matches.
func effectivePriority(r *ports.Repo) float64 {
	if r.Priority <= 0 {
		return keywords.DefaultPriority
	}
	return r.Priority
}

// Search filters repos by query and selected categories, then orders the
// survivors with rank (ByRelevance when nil).
//
// Category filtering keeps repositories with at least one selected
// category (OR semantics). Text filtering keeps repositories whose name,
// matched keywords, or the dictionary aliases of those keywords contain
// the query substring, case-insensitively. Both filters compose with AND.
// The input slice is never mutated.
func Search(repos []ports.Repo, query string, selected []string, dict *keywords.Dictionary, rank Ranker) []ports.Repo {
	if rank == nil {
		rank = ByRelevance
	}
	q := strings.ToLower(strings.TrimSpace(query))

	var out []ports.Repo
	for i := range repos {
		r := &repos[i]
		if len(selected) > 0 && !hasAnyCategory(r, selected) {
			continue
		}
		if q != "" && !matchesQuery(r, q, dict) {
			continue
		}
		out = append(out, *r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return rank(&out[i], &out[j])
	})
	return out
}

func hasAnyCategory(r *ports.Repo, selected []string) bool {
	for _, cat := range selected {
		if len(r.Categories[cat]) > 0 {
			return true
		}
	}
	return false
}

func matchesQuery(r *ports.Repo, q string, dict *keywords.Dictionary) bool {
	if strings.Contains(strings.ToLower(r.Name), q) {
		return true
	}
	for _, kw := range r.Keywords {
		if strings.Contains(strings.ToLower(kw), q) {
			return true
		}
		// Alias recall: "node" should find Node.js.
		if dict == nil {
			continue
		}
		entry := dict.Find(kw)
		if entry == nil {
			continue
		}
		for _, alias := range entry.Aliases {
			if strings.Contains(strings.ToLower(alias), q) {
				return true
			}
		}
	}
	return false
}

// CategoryInfo summarizes one category across a repository set, shaped
// for filter UI construction.
type CategoryInfo struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Icon        string   `json:"icon"`
	Count       int      `json:"count"`
	Keywords    []string `json:"keywords"`
}

// ActiveCategories returns the categories that have at least one enriched
// repository, with per-category project counts and the union of matched
// keywords, ordered by project count descending.
func ActiveCategories(repos []ports.Repo) []CategoryInfo {
	counts := make(map[string]int)
	kwSets := make(map[string]map[string]bool)

	for i := range repos {
		for cat, terms := range repos[i].Categories {
			if len(terms) == 0 {
				continue
			}
			counts[cat]++
			if kwSets[cat] == nil {
				kwSets[cat] = make(map[string]bool)
			}
			for _, term := range terms {
				kwSets[cat][term] = true
			}
		}
	}

	var out []CategoryInfo
	for cat, count := range counts {
		display := keywords.Display(cat)
		var kws []string
		for kw := range kwSets[cat] {
			kws = append(kws, kw)
		}
		sort.Strings(kws)
		out = append(out, CategoryInfo{
			Name:        cat,
			DisplayName: display.Name,
			Icon:        display.Icon,
			Count:       count,
			Keywords:    kws,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// AllCategories returns every dictionary category with its full term
// list and a zero count, for building filter UIs before any data loads.
func AllCategories(dict *keywords.Dictionary) []CategoryInfo {
	var out []CategoryInfo
	for _, cat := range keywords.AllCategories() {
		display := keywords.Display(cat)
		out = append(out, CategoryInfo{
			Name:        cat,
			DisplayName: display.Name,
			Icon:        display.Icon,
			Keywords:    dict.TermsByCategory(cat),
		})
	}
	return out
}

// Suggestions returns keyword suggestions for a partial query. With an
// empty term it returns the 10 keywords matched by the most
// repositories; otherwise it returns case-insensitive substring matches,
// shortest first, capped at 8.
func Suggestions(repos []ports.Repo, term string) []string {
	freq := make(map[string]int)
	for i := range repos {
		for _, kw := range repos[i].Keywords {
			freq[kw]++
		}
	}

	all := make([]string, 0, len(freq))
	for kw := range freq {
		all = append(all, kw)
	}

	q := strings.ToLower(strings.TrimSpace(term))
	if q == "" {
		sort.Slice(all, func(i, j int) bool {
			if freq[all[i]] != freq[all[j]] {
				return freq[all[i]] > freq[all[j]]
			}
			return all[i] < all[j]
		})
		return cap10(all)
	}

	var hits []string
	for _, kw := range all {
		if strings.Contains(strings.ToLower(kw), q) {
			hits = append(hits, kw)
		}
	}
	// Prefer shorter matches: closer to the typed term.
	sort.Slice(hits, func(i, j int) bool {
		if len(hits[i]) != len(hits[j]) {
			return len(hits[i]) < len(hits[j])
		}
		return hits[i] < hits[j]
	})
	if len(hits) > 8 {
		hits = hits[:8]
	}
	return hits
}

func cap10(s []string) []string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
