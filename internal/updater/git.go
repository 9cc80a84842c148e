package updater

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// GitRepo wraps the git operations the updater needs against the
// working tree at dir: fetch, then a hard reset to the tracked remote
// branch (the original's "reset to remote branch handles binary files
// like audio clips properly" rationale carries over unchanged).
type GitRepo struct {
	dir    string
	branch string
	token  string
	owner  string
	repo   string
}

// NewGitRepo builds a repo handle rooted at dir.
func NewGitRepo(dir, branch, owner, repo, token string) *GitRepo {
	return &GitRepo{dir: dir, branch: branch, owner: owner, repo: repo, token: token}
}

func (g *GitRepo) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return strings.TrimSpace(string(out)), nil
}

// ConfigureRemote points origin at an authenticated URL when a GitHub
// token is configured, so private repos remain fetchable.
func (g *GitRepo) ConfigureRemote(ctx context.Context) error {
	if g.token == "" {
		return nil
	}
	url := fmt.Sprintf("https://%s@github.com/%s/%s.git", g.token, g.owner, g.repo)
	_, err := g.run(ctx, "remote", "set-url", "origin", url)
	return err
}

// FastForward fetches the tracked branch and hard-resets the working
// tree to it, then removes untracked files.
func (g *GitRepo) FastForward(ctx context.Context) error {
	if _, err := g.run(ctx, "fetch", "origin", g.branch); err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	if _, err := g.run(ctx, "reset", "--hard", "origin/"+g.branch); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if _, err := g.run(ctx, "clean", "-fd"); err != nil {
		return fmt.Errorf("clean: %w", err)
	}
	return nil
}

// HeadCommit returns the working tree's current commit SHA.
func (g *GitRepo) HeadCommit(ctx context.Context) (string, error) {
	return g.run(ctx, "rev-parse", "HEAD")
}

// ChangedFiles lists files touched between previousSHA and the current
// HEAD, or nil when previousSHA is empty.
func (g *GitRepo) ChangedFiles(ctx context.Context, previousSHA string) ([]string, error) {
	if previousSHA == "" {
		return nil, nil
	}
	out, err := g.run(ctx, "diff", "--name-only", previousSHA, "HEAD")
	if err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}
