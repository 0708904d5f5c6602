// Package gitx executes git operations against a repository on disk.
//
// The git binary owns the actual object model; this package only shapes
// arguments, classifies engine errors, and renders results as text.
package gitx

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned by Open when the path does not contain a
// valid git repository.
var ErrNotRepository = errors.New("not a git repository")

// Defaults shared between the executor and the tool schemas. The schema
// layer reads these so the advertised defaults can never drift from the
// behavior.
const (
	DefaultRemote   = "origin"
	DefaultLogCount = 10
)

// Repo is a handle to a validated git repository. Handles are opened
// fresh per call and carry no state beyond the directory path.
type Repo struct {
	dir string
}

// Open validates that path contains a git repository and returns a
// handle for it. Validation is independent of any prior discovery.
func Open(path string) (*Repo, error) {
	if _, err := gogit.PlainOpen(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotRepository, path)
	}
	return &Repo{dir: path}, nil
}

// IsRepository reports whether path contains a valid git repository.
func IsRepository(path string) bool {
	_, err := gogit.PlainOpen(path)
	return err == nil
}

// Dir returns the repository root path.
func (r *Repo) Dir() string {
	return r.dir
}

// Init creates a new empty git repository at path. The path may not
// exist yet; git creates it. This is the only operation that targets a
// non-repository path.
func Init(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "init", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git init: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return fmt.Sprintf("Initialized empty Git repository in %s", path), nil
}

// gitExec runs a git command in the repo directory and returns combined
// output. Engine failures carry the engine's text so callers can match
// recoverable conditions against it.
func (r *Repo) gitExec(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}
