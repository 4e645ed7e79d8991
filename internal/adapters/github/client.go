// Package github implements the ports.Source interface against a
// GitHub-style REST API. The client attaches an optional bearer token and
// reports every transport problem (timeout, network error, non-2xx) as a
// single opaque error; the cache layer above decides how to degrade.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/corey/folio/internal/ports"
)

// DefaultBaseURL is the public GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com"

// Compile-time interface check
var _ ports.Source = (*Client)(nil)

// Client is a thin REST client over the source API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a client for baseURL (DefaultBaseURL when empty).
// token is attached as a bearer credential when non-empty.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// GetUser fetches the profile for a username.
func (c *Client) GetUser(ctx context.Context, username string) (*ports.User, error) {
	var user ports.User
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(username), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetRepos fetches the repository list for a username, most recently
// pushed first. Fork filtering and ordering happen downstream.
func (c *Client) GetRepos(ctx context.Context, username string) ([]ports.Repo, error) {
	path := "/users/" + url.PathEscape(username) + "/repos?sort=pushed&per_page=100"
	var repos []ports.Repo
	if err := c.getJSON(ctx, path, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// GetReadme fetches the raw README resource (Base64-encoded content).
func (c *Client) GetReadme(ctx context.Context, owner, repo string) (*ports.Readme, error) {
	path := "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo) + "/readme"
	var readme ports.Readme
	if err := c.getJSON(ctx, path, &readme); err != nil {
		return nil, err
	}
	return &readme, nil
}

// GetCommitCount fetches the total commit count for owner/repo.
//
// It requests a single commit per page and reads the page number from the
// Link header's rel="last" entry. Without a Link header (or without a last
// relation) the count is the length of the returned page, which covers
// repositories with at most one page of commits.
func (c *Client) GetCommitCount(ctx context.Context, owner, repo string) (int, error) {
	path := "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo) + "/commits?per_page=1"
	resp, err := c.get(ctx, path)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var commits []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&commits); err != nil {
		return 0, fmt.Errorf("decode commits: %w", err)
	}
	if len(commits) == 0 {
		return 0, nil
	}

	links := parseLinkHeader(resp.Header.Get("Link"))
	last, ok := links["last"]
	if !ok {
		return len(commits), nil
	}
	lastURL, err := url.Parse(last)
	if err != nil {
		return 0, fmt.Errorf("parse last-page url: %w", err)
	}
	page, err := strconv.Atoi(lastURL.Query().Get("page"))
	if err != nil {
		return 0, fmt.Errorf("parse last-page number: %w", err)
	}
	return page, nil
}

// getJSON performs a GET and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// get performs a GET with auth and content negotiation headers.
// Non-2xx statuses are errors; the body is drained and discarded.
func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("get %s: status %d", path, resp.StatusCode)
	}
	return resp, nil
}

// parseLinkHeader splits an RFC 5988 Link header into rel -> URL.
// Malformed sections are skipped.
func parseLinkHeader(header string) map[string]string {
	links := make(map[string]string)
	if header == "" {
		return links
	}
	for _, part := range strings.Split(header, ",") {
		section := strings.Split(part, ";")
		if len(section) != 2 {
			continue
		}
		u := strings.Trim(strings.TrimSpace(section[0]), "<>")
		rel := strings.TrimSpace(section[1])
		rel = strings.TrimPrefix(rel, `rel="`)
		rel = strings.TrimSuffix(rel, `"`)
		if u != "" && rel != "" {
			links[rel] = u
		}
	}
	return links
}
