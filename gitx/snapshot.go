package gitx

import (
	"context"
	"fmt"
	"strings"
)

// Status returns the full working tree status as engine-native text.
func (r *Repo) Status(ctx context.Context) (string, error) {
	out, err := r.gitExec(ctx, "status")
	if err != nil {
		return "", fmt.Errorf("git status: %w", err)
	}
	return out, nil
}

// DiffUnstaged returns changes in the working directory that are not
// yet staged.
func (r *Repo) DiffUnstaged(ctx context.Context) (string, error) {
	out, err := r.gitExec(ctx, "diff")
	if err != nil {
		return "", fmt.Errorf("git diff: %w", err)
	}
	return out, nil
}

// DiffStaged returns changes staged for the next commit.
func (r *Repo) DiffStaged(ctx context.Context) (string, error) {
	out, err := r.gitExec(ctx, "diff", "--cached")
	if err != nil {
		return "", fmt.Errorf("git diff --cached: %w", err)
	}
	return out, nil
}

// Diff compares HEAD against another branch, tag, or commit. A revision
// that does not resolve is reported as informational text, not an
// error: bad user input on a read-only query should not fail the call.
func (r *Repo) Diff(ctx context.Context, other string) (string, error) {
	out, err := r.gitExec(ctx, "diff", "HEAD", other)
	if err != nil {
		if msg, ok := recovered(opDiff, err, other); ok {
			return msg, nil
		}
		return "", fmt.Errorf("git diff: %w", err)
	}
	return out, nil
}

// Commit records a commit from the current index state and returns a
// confirmation carrying the new commit hash.
func (r *Repo) Commit(ctx context.Context, message string) (string, error) {
	if _, err := r.gitExec(ctx, "commit", "-m", message); err != nil {
		return "", fmt.Errorf("git commit: %w", err)
	}
	sha, err := r.gitExec(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return fmt.Sprintf("Changes committed successfully with hash %s", strings.TrimSpace(sha)), nil
}

// Add stages the given paths. A path unknown to git propagates as a
// failure rather than being skipped.
func (r *Repo) Add(ctx context.Context, files []string) (string, error) {
	args := append([]string{"add", "--"}, files...)
	if _, err := r.gitExec(ctx, args...); err != nil {
		return "", fmt.Errorf("git add: %w", err)
	}
	return "Files staged successfully", nil
}

// Reset unstages all staged changes. It is not selective and is
// idempotent on an already-clean index.
func (r *Repo) Reset(ctx context.Context) (string, error) {
	if _, err := r.gitExec(ctx, "reset"); err != nil {
		return "", fmt.Errorf("git reset: %w", err)
	}
	return "All staged changes reset", nil
}
