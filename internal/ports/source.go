package ports

import "context"

// Source is the upstream profile/repository API. Implementations attach
// credentials and own transport concerns; callers treat any failure as a
// single opaque error regardless of cause (timeout, network, non-2xx).
//
// The network cache layer wraps these calls; domain code never invokes
// a Source directly.
type Source interface {
	// GetUser fetches the profile for a username.
	GetUser(ctx context.Context, username string) (*User, error)

	// GetRepos fetches the full repository list for a username.
	GetRepos(ctx context.Context, username string) ([]Repo, error)

	// GetReadme fetches the raw README resource for owner/repo.
	// The content is Base64-encoded as delivered by the API.
	GetReadme(ctx context.Context, owner, repo string) (*Readme, error)

	// GetCommitCount fetches the total commit count for owner/repo.
	GetCommitCount(ctx context.Context, owner, repo string) (int, error)
}

// User is an upstream profile record.
type User struct {
	Login       string `json:"login"`
	ID          int64  `json:"id"`
	AvatarURL   string `json:"avatar_url"`
	HTMLURL     string `json:"html_url"`
	Name        string `json:"name"`
	Company     string `json:"company"`
	Blog        string `json:"blog"`
	Location    string `json:"location"`
	Email       string `json:"email"`
	Bio         string `json:"bio"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
}

// License is a repository license record.
type License struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	SPDXID string `json:"spdx_id"`
	URL    string `json:"url"`
}

// Repo is an upstream repository record, enriched in place by the
// orchestrator. Enrichment fields are additive: their absence must never
// break downstream consumers, which degrade to "unknown" display.
type Repo struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	HTMLURL     string   `json:"html_url"`
	Description string   `json:"description"`
	Fork        bool     `json:"fork"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	PushedAt    string   `json:"pushed_at"`
	Homepage    string   `json:"homepage"`
	Stars       int      `json:"stargazers_count"`
	Watchers    int      `json:"watchers_count"`
	Forks       int      `json:"forks_count"`
	Language    string   `json:"language"`
	Topics      []string `json:"topics"`
	License     *License `json:"license,omitempty"`

	// Enrichment fields. Nil/zero when enrichment was skipped or failed.
	CommitCount *int                `json:"commit_count,omitempty"`
	Keywords    []string            `json:"keywords,omitempty"`
	Categories  map[string][]string `json:"categories_found,omitempty"`
	Priority    float64             `json:"priority,omitempty"`
}

// Owner returns the owner half of FullName ("owner/repo").
// Falls back to empty string when FullName has no slash.
func (r *Repo) Owner() string {
	for i := 0; i < len(r.FullName); i++ {
		if r.FullName[i] == '/' {
			return r.FullName[:i]
		}
	}
	return ""
}

// Readme is the raw documentation resource as delivered by the API.
type Readme struct {
	Content  string `json:"content"` // Base64-encoded
	Encoding string `json:"encoding"`
}
