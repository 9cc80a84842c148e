// Package updater implements the self-update loop: poll GitHub for a
// new commit on the tracked branch, back up the working tree, fast-
// forward it, and SIGTERM the dashboard process so the supervisor
// respawns it on the new code. The resolver and LED service are not
// signalled.
package updater

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// CommitInfo is the subset of GitHub's commits API response this
// updater cares about.
type CommitInfo struct {
	SHA     string `json:"sha"`
	Message string `json:"-"`
	Date    string `json:"-"`
	Commit  struct {
		Message   string `json:"message"`
		Committer struct {
			Date string `json:"date"`
		} `json:"committer"`
	} `json:"commit"`
}

// GitHubClient polls the commits endpoint for the tracked branch.
type GitHubClient struct {
	apiBase string
	owner   string
	repo    string
	branch  string
	token   string
	http    *http.Client
}

// NewGitHubClient builds a client. token may be empty for public repos.
func NewGitHubClient(apiBase, owner, repo, branch, token string, timeout time.Duration) *GitHubClient {
	return &GitHubClient{
		apiBase: apiBase,
		owner:   owner,
		repo:    repo,
		branch:  branch,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// LatestCommit fetches the HEAD commit of the tracked branch.
func (c *GitHubClient) LatestCommit(ctx context.Context) (CommitInfo, error) {
	endpoint := fmt.Sprintf("%s/%s/%s/commits/%s", c.apiBase, c.owner, c.repo, c.branch)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return CommitInfo{}, fmt.Errorf("build commits request: %w", err)
	}
	req.Header.Set("User-Agent", "wavealert360-updater")
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return CommitInfo{}, fmt.Errorf("commits request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return CommitInfo{}, fmt.Errorf("github returned %d: %s", resp.StatusCode, readBodyForError(resp.Body))
	}

	var info CommitInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return CommitInfo{}, fmt.Errorf("decode commit info: %w", err)
	}
	info.Message = info.Commit.Message
	info.Date = info.Commit.Committer.Date
	return info, nil
}
