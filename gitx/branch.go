package gitx

import (
	"context"
	"fmt"
	"strings"
)

const (
	logRecordSep = "\x1e"
	logFieldSep  = "\x1f"
)

// LogEntry is a single commit in the history listing.
type LogEntry struct {
	SHA     string
	Author  string
	Email   string
	Date    string
	Message string
}

// String renders the entry in the server's commit listing format.
func (e LogEntry) String() string {
	return fmt.Sprintf("Commit: %s\nAuthor: %s <%s>\nDate: %s\nMessage: %s\n",
		e.SHA, e.Author, e.Email, e.Date, e.Message)
}

// Log returns up to maxCount commits reachable from HEAD, newest first
// (the engine's native walk order).
func (r *Repo) Log(ctx context.Context, maxCount int) ([]LogEntry, error) {
	if maxCount <= 0 {
		maxCount = DefaultLogCount
	}
	format := fmt.Sprintf("--format=%s%%H%s%%an%s%%ae%s%%aI%s%%B",
		logRecordSep, logFieldSep, logFieldSep, logFieldSep, logFieldSep)
	out, err := r.gitExec(ctx, "log", fmt.Sprintf("--max-count=%d", maxCount), format)
	if err != nil {
		// A repo with no commits yet has an empty history, not an error.
		if strings.Contains(err.Error(), "does not have any commits") {
			return nil, nil
		}
		return nil, fmt.Errorf("git log: %w", err)
	}
	return parseLog(out), nil
}

func parseLog(raw string) []LogEntry {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), logRecordSep)
	if raw == "" {
		return nil
	}

	var entries []LogEntry
	for _, block := range strings.Split(raw, logRecordSep) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		parts := strings.SplitN(block, logFieldSep, 5)
		if len(parts) < 5 {
			continue
		}
		entries = append(entries, LogEntry{
			SHA:     parts[0],
			Author:  parts[1],
			Email:   parts[2],
			Date:    parts[3],
			Message: strings.TrimSpace(parts[4]),
		})
	}
	return entries
}

// CurrentBranch returns the checked-out branch name. symbolic-ref works
// even on an unborn branch (no commits yet).
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	if out, err := r.gitExec(ctx, "symbolic-ref", "--short", "HEAD"); err == nil {
		if name := strings.TrimSpace(out); name != "" {
			return name, nil
		}
	}
	out, err := r.gitExec(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git current branch: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// CreateBranch creates a new branch at base, or at the current branch
// when base is empty. An unresolvable base propagates as a failure.
func (r *Repo) CreateBranch(ctx context.Context, name, base string) (string, error) {
	if base == "" {
		current, err := r.CurrentBranch(ctx)
		if err != nil {
			return "", err
		}
		base = current
	}
	if _, err := r.gitExec(ctx, "branch", name, base); err != nil {
		return "", fmt.Errorf("git branch: %w", err)
	}
	return fmt.Sprintf("Created branch '%s' from '%s'", name, base), nil
}

// Switch checks out a branch. With create true it atomically creates
// and switches. Without it, a missing branch is reported as guidance
// text rather than a failure; any other engine failure propagates.
func (r *Repo) Switch(ctx context.Context, name string, create bool) (string, error) {
	if create {
		if _, err := r.gitExec(ctx, "switch", "-c", name); err != nil {
			return "", fmt.Errorf("git switch -c: %w", err)
		}
		return fmt.Sprintf("Created and switched to new branch '%s'", name), nil
	}
	if _, err := r.gitExec(ctx, "switch", name); err != nil {
		if msg, ok := recovered(opSwitch, err, name); ok {
			return msg, nil
		}
		return "", fmt.Errorf("git switch: %w", err)
	}
	return fmt.Sprintf("Switched to branch '%s'", name), nil
}
