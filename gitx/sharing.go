package gitx

import (
	"context"
	"fmt"
	"strings"
)

// Fetch retrieves updates from a remote without touching local
// branches. An empty update set is a successful "no updates" result.
func (r *Repo) Fetch(ctx context.Context, remote string) (string, error) {
	if remote == "" {
		remote = DefaultRemote
	}
	out, err := r.gitExec(ctx, "fetch", remote)
	if err != nil {
		return "", fmt.Errorf("git fetch: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return fmt.Sprintf("No updates from %s", remote), nil
	}
	return out, nil
}

// Pull fetches and merges. A current branch with no configured
// tracking (and no explicit branch) is surfaced as guidance text.
func (r *Repo) Pull(ctx context.Context, remote, branch string) (string, error) {
	if remote == "" {
		remote = DefaultRemote
	}
	args := []string{"pull", remote}
	if branch != "" {
		args = append(args, branch)
	}
	out, err := r.gitExec(ctx, args...)
	if err != nil {
		if msg, ok := recovered(opPull, err, branch); ok {
			return msg, nil
		}
		return "", fmt.Errorf("git pull: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return fmt.Sprintf("Already up to date with %s", remote), nil
	}
	return out, nil
}

// Push publishes local commits. With branch and setUpstream it
// configures tracking; with branch alone it pushes that branch; with
// neither it relies on already-configured tracking, and a missing
// upstream is surfaced as guidance text.
func (r *Repo) Push(ctx context.Context, remote, branch string, setUpstream bool) (string, error) {
	if remote == "" {
		remote = DefaultRemote
	}
	var args []string
	switch {
	case branch != "" && setUpstream:
		args = []string{"push", "--set-upstream", remote, branch}
	case branch != "":
		args = []string{"push", remote, branch}
	default:
		args = []string{"push"}
	}
	out, err := r.gitExec(ctx, args...)
	if err != nil {
		if msg, ok := recovered(opPush, err, branch); ok {
			return msg, nil
		}
		return "", fmt.Errorf("git push: %w", err)
	}
	return out, nil
}

// RemoteAdd registers a new named remote endpoint.
func (r *Repo) RemoteAdd(ctx context.Context, name, url string) (string, error) {
	if _, err := r.gitExec(ctx, "remote", "add", name, url); err != nil {
		return "", fmt.Errorf("git remote add: %w", err)
	}
	return fmt.Sprintf("Added remote '%s' with URL: %s", name, url), nil
}
