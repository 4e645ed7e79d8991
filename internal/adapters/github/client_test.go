package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/alice", r.URL.Path)
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		fmt.Fprint(w, `{"login":"alice","name":"Alice","public_repos":12,"followers":34}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	user, err := client.GetUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Login)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, 12, user.PublicRepos)
	assert.Equal(t, 34, user.Followers)
}

func TestClient_TokenSentAsBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"login":"alice"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-token")
	_, err := client.GetUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestClient_NoTokenNoAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"login":"alice"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.GetUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_GetRepos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/alice/repos", r.URL.Path)
		assert.Equal(t, "pushed", r.URL.Query().Get("sort"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		fmt.Fprint(w, `[
			{"id":1,"name":"folio","full_name":"alice/folio","stargazers_count":42,"fork":false},
			{"id":2,"name":"dotfiles","full_name":"alice/dotfiles","stargazers_count":3,"fork":true}
		]`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	repos, err := client.GetRepos(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "folio", repos[0].Name)
	assert.Equal(t, 42, repos[0].Stars)
	assert.True(t, repos[1].Fork)
	assert.Equal(t, "alice", repos[0].Owner())
}

func TestClient_GetReadme(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/alice/folio/readme", r.URL.Path)
		fmt.Fprint(w, `{"content":"SGVsbG8=","encoding":"base64"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	readme, err := client.GetReadme(context.Background(), "alice", "folio")
	require.NoError(t, err)
	assert.Equal(t, "SGVsbG8=", readme.Content)
	assert.Equal(t, "base64", readme.Encoding)
}

func TestClient_GetCommitCount_LinkHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/alice/folio/commits", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("per_page"))
		w.Header().Set("Link",
			`<https://api.example.com/repos/alice/folio/commits?per_page=1&page=2>; rel="next", `+
				`<https://api.example.com/repos/alice/folio/commits?per_page=1&page=137>; rel="last"`)
		fmt.Fprint(w, `[{"sha":"abc"}]`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	count, err := client.GetCommitCount(context.Background(), "alice", "folio")
	require.NoError(t, err)
	assert.Equal(t, 137, count)
}

func TestClient_GetCommitCount_NoLinkHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"sha":"abc"}]`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	count, err := client.GetCommitCount(context.Background(), "alice", "folio")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "single page without a last link is its own count")
}

func TestClient_GetCommitCount_EmptyRepo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	count, err := client.GetCommitCount(context.Background(), "alice", "empty")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestClient_NonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.GetUser(context.Background(), "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestClient_EmptyBaseURLUsesDefault(t *testing.T) {
	client := NewClient("", "")
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}

func TestParseLinkHeader(t *testing.T) {
	links := parseLinkHeader(`<https://x/a?page=2>; rel="next", <https://x/a?page=9>; rel="last"`)
	assert.Equal(t, "https://x/a?page=2", links["next"])
	assert.Equal(t, "https://x/a?page=9", links["last"])

	assert.Empty(t, parseLinkHeader(""))
	assert.Empty(t, parseLinkHeader("malformed header with; too; many; parts"))
}
