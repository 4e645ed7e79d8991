package cache

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/corey/folio/internal/domain/analyzer"
	"github.com/corey/folio/internal/ports"
)

// ResultsWindow is the analysis cache freshness window.
const ResultsWindow = 7 * 24 * time.Hour

// resultsPrefix namespaces analysis records in the shared store.
const resultsPrefix = "readme_keywords_"

// StoredAnalysis is one cached analysis outcome for a repository.
type StoredAnalysis struct {
	RepoName   string              `json:"repo_name"`
	Keywords   []string            `json:"keywords"`
	Categories map[string][]string `json:"categories"`
	Priority   float64             `json:"priority"`
	AnalyzedAt int64               `json:"analyzed_at"` // unix milliseconds
}

// Results caches analysis outcomes per repository, independent of the
// network cache. A stale or missing record reads the same as "never
// analyzed": both trigger recomputation, so callers need not tell them
// apart.
type Results struct {
	store  ports.Storage
	window time.Duration
}

// NewResults creates a result cache over the given store.
// A window of 0 means ResultsWindow.
func NewResults(store ports.Storage, window time.Duration) *Results {
	if window <= 0 {
		window = ResultsWindow
	}
	return &Results{store: store, window: window}
}

// Get returns the cached analysis for repoName, or nil when no record
// exists, the record is older than the window, or it cannot be parsed.
func (r *Results) Get(repoName string) *StoredAnalysis {
	raw, err := r.store.Get(resultsPrefix + repoName)
	if err != nil || raw == nil {
		return nil
	}
	var rec StoredAnalysis
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil
	}
	if timeNow().Sub(time.UnixMilli(rec.AnalyzedAt)) >= r.window {
		return nil
	}
	return &rec
}

// Put stores a fresh analysis for repoName, overwriting any prior record.
func (r *Results) Put(repoName string, res analyzer.Result) error {
	rec := StoredAnalysis{
		RepoName:   repoName,
		Keywords:   res.Keywords,
		Categories: res.Categories,
		Priority:   res.Priority,
		AnalyzedAt: timeNow().UnixMilli(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return r.store.Put(resultsPrefix+repoName, data)
}

// EvictExpired deletes every analysis record older than the window, plus
// any record that no longer parses. Idempotent and safe to run at any
// time. Returns the number of deleted records.
func (r *Results) EvictExpired() (int, error) {
	keys, err := r.store.Keys(resultsPrefix)
	if err != nil {
		return 0, err
	}

	deleted := 0
	now := timeNow()
	for _, key := range keys {
		raw, err := r.store.Get(key)
		if err != nil || raw == nil {
			continue
		}

		evict := false
		var rec StoredAnalysis
		if err := json.Unmarshal(raw, &rec); err != nil {
			evict = true
		} else if now.Sub(time.UnixMilli(rec.AnalyzedAt)) >= r.window {
			evict = true
		}
		if !evict {
			continue
		}

		if err := r.store.Delete(key); err != nil {
			slog.Warn("result eviction failed", "key", key, "error", err)
			continue
		}
		deleted++
	}
	return deleted, nil
}

// RepoNameFromKey extracts the repository name from a result cache key.
// Returns empty string for keys outside the result namespace.
func RepoNameFromKey(key string) string {
	if !strings.HasPrefix(key, resultsPrefix) {
		return ""
	}
	return strings.TrimPrefix(key, resultsPrefix)
}
