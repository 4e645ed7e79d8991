package app

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/corey/folio/internal/cache"
	"github.com/corey/folio/internal/domain/analyzer"
	"github.com/corey/folio/internal/ports"
)

// Provider owns the profile/repository refresh triggers and exposes
// read-only snapshots to consumers (CLI commands, the JSON API). It is the
// explicit replacement for ambient shared state: all reads go through
// Snapshot, all writes through the Refresh methods.
type Provider struct {
	source      ports.Source
	store       ports.Storage
	analyzer    *analyzer.Analyzer
	results     *cache.Results
	username    string
	window      time.Duration
	concurrency int

	mu    sync.RWMutex
	state State
}

// State is a point-in-time snapshot of fetched data. Stale flags surface
// as non-blocking warnings; nil User or Repos means "unavailable", never
// an error condition.
type State struct {
	User        *ports.User `json:"user"`
	UserStale   bool        `json:"user_stale"`
	UserFetched time.Time   `json:"user_fetched"`

	Repos        []ports.Repo `json:"repos"`
	ReposStale   bool         `json:"repos_stale"`
	ReposFetched time.Time    `json:"repos_fetched"`
}

// NewProvider wires a provider. window bounds network cache freshness;
// concurrency bounds enrichment fan-out (minimum 1).
func NewProvider(source ports.Source, store ports.Storage, an *analyzer.Analyzer, results *cache.Results, username string, window time.Duration, concurrency int) *Provider {
	if window <= 0 {
		window = cache.DefaultWindow
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Provider{
		source:      source,
		store:       store,
		analyzer:    an,
		results:     results,
		username:    username,
		window:      window,
		concurrency: concurrency,
	}
}

// Snapshot returns the current state. The returned repo slice is shared;
// callers must not mutate it.
func (p *Provider) Snapshot() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// RefreshUser fetches the profile through the network cache and updates
// the snapshot. Failure with no cached profile leaves User nil.
func (p *Provider) RefreshUser(ctx context.Context) State {
	remote := cache.Fetch(ctx, p.store, "github_user_"+p.username, p.window, func(ctx context.Context) (ports.User, error) {
		u, err := p.source.GetUser(ctx, p.username)
		if err != nil {
			return ports.User{}, err
		}
		return *u, nil
	})

	p.mu.Lock()
	p.state.User = remote.Data
	p.state.UserStale = remote.Stale
	p.state.UserFetched = remote.FetchedAt
	snap := p.state
	p.mu.Unlock()
	return snap
}

// RefreshRepos fetches the repository list through the network cache,
// filters forks, orders by stars descending, enriches the set, and
// updates the snapshot.
func (p *Provider) RefreshRepos(ctx context.Context) State {
	remote := cache.Fetch(ctx, p.store, "github_repos_"+p.username, p.window, func(ctx context.Context) ([]ports.Repo, error) {
		return p.source.GetRepos(ctx, p.username)
	})

	var repos []ports.Repo
	if remote.Data != nil {
		for _, r := range *remote.Data {
			if r.Fork {
				continue
			}
			repos = append(repos, r)
		}
		sort.SliceStable(repos, func(i, j int) bool {
			return repos[i].Stars > repos[j].Stars
		})
		repos = p.EnrichRepositories(ctx, repos)
	}

	p.mu.Lock()
	if remote.Data != nil {
		p.state.Repos = repos
	} else {
		p.state.Repos = nil
	}
	p.state.ReposStale = remote.Stale
	p.state.ReposFetched = remote.FetchedAt
	snap := p.state
	p.mu.Unlock()
	return snap
}

// GetReadme is a cache-aware pass-through for a single repository README.
func (p *Provider) GetReadme(ctx context.Context, owner, repo string) cache.Remote[ports.Readme] {
	key := "github_readme_" + owner + "_" + repo
	return cache.Fetch(ctx, p.store, key, p.window, func(ctx context.Context) (ports.Readme, error) {
		r, err := p.source.GetReadme(ctx, owner, repo)
		if err != nil {
			return ports.Readme{}, err
		}
		return *r, nil
	})
}

// EnrichRepositories runs the two per-repository enrichment tasks (commit
// count, README analysis) concurrently across the whole set, bounded by
// the configured fan-out. Tasks complete in any order; the returned slice
// preserves input order. One repository's failure never blocks or fails
// the batch; failed repositories come back unenriched.
func (p *Provider) EnrichRepositories(ctx context.Context, repos []ports.Repo) []ports.Repo {
	out := make([]ports.Repo, len(repos))
	copy(out, repos)

	sem := make(chan struct{}, p.concurrency)
	var wg sync.WaitGroup

	for i := range out {
		wg.Add(2)

		go func(r *ports.Repo) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			p.enrichCommitCount(ctx, r)
		}(&out[i])

		go func(r *ports.Repo) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			p.enrichDocs(ctx, r)
		}(&out[i])
	}

	wg.Wait()
	return out
}

// enrichCommitCount attaches the cached or freshly fetched commit count.
// Unavailable counts leave the field nil.
func (p *Provider) enrichCommitCount(ctx context.Context, r *ports.Repo) {
	owner := r.Owner()
	if owner == "" {
		return
	}
	key := "github_commits_" + owner + "_" + r.Name
	remote := cache.Fetch(ctx, p.store, key, p.window, func(ctx context.Context) (int, error) {
		return p.source.GetCommitCount(ctx, owner, r.Name)
	})
	if remote.Data != nil {
		r.CommitCount = remote.Data
	}
}

// enrichDocs attaches keywords, categories, and priority mined from the
// repository README. The analysis result cache is consulted first so a
// fresh prior analysis skips the README fetch entirely.
func (p *Provider) enrichDocs(ctx context.Context, r *ports.Repo) {
	if cached := p.results.Get(r.Name); cached != nil {
		r.Keywords = cached.Keywords
		r.Categories = cached.Categories
		r.Priority = cached.Priority
		return
	}

	owner := r.Owner()
	if owner == "" {
		return
	}
	remote := p.GetReadme(ctx, owner, r.Name)
	if remote.Data == nil || remote.Data.Content == "" {
		// No README is not an error; the repo stays unenriched.
		return
	}

	text, err := decodeContent(remote.Data.Content)
	if err != nil {
		slog.Warn("readme decode failed", "repo", r.Name, "error", err)
		return
	}

	result := p.analyzer.Extract(text)
	r.Keywords = result.Keywords
	r.Categories = result.Categories
	r.Priority = result.Priority

	if err := p.results.Put(r.Name, result); err != nil {
		slog.Warn("result cache write failed", "repo", r.Name, "error", err)
	}
}

// decodeContent decodes the Base64 README payload into UTF-8 text.
// The API wraps Base64 at 60 columns, so whitespace is stripped first.
func decodeContent(content string) (string, error) {
	compact := strings.Map(func(c rune) rune {
		switch c {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return c
	}, content)

	raw, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", errInvalidUTF8
	}
	return string(raw), nil
}

var errInvalidUTF8 = errors.New("readme content is not valid utf-8")
