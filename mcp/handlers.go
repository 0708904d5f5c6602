package mcp

import (
	"context"
	"fmt"
	"strconv"

	gomcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/cobaltgrid/gitserve/gitx"
)

func missingParamErr(param, example string) *gomcp.CallToolResult {
	return gomcp.NewToolResultError(fmt.Sprintf("missing required parameter %q. Example: %s", param, example))
}

// intArg reads an optional integer argument. JSON numbers arrive as
// float64; some clients send strings.
func intArg(req gomcp.CallToolRequest, key string, def int) int {
	switch v := req.GetArguments()[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func boolArg(req gomcp.CallToolRequest, key string, def bool) bool {
	switch v := req.GetArguments()[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func stringListArg(req gomcp.CallToolRequest, key string) ([]string, bool) {
	raw, ok := req.GetArguments()[key]
	if !ok {
		return nil, false
	}
	switch v := raw.(type) {
	case []string:
		return v, true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// withRepo handles the steps every operation except git_init shares:
// repo_path validation, per-path locking, opening the repository, and
// packaging the result. Operation-specific required arguments must be
// checked by the caller before this runs, so that validation failures
// never touch the repository.
func withRepo(req gomcp.CallToolRequest, locks *pathLocks, mode lockMode, fn func(repo *gitx.Repo) (string, error)) (*gomcp.CallToolResult, error) {
	repoPath := req.GetString("repo_path", "")
	if repoPath == "" {
		return missingParamErr("repo_path", `git_status(repo_path="/path/to/repo")`), nil
	}

	release := locks.acquire(repoPath, mode)
	defer release()

	repo, err := gitx.Open(repoPath)
	if err != nil {
		return gomcp.NewToolResultError(err.Error()), nil
	}

	text, err := fn(repo)
	if err != nil {
		return gomcp.NewToolResultError(err.Error()), nil
	}
	return gomcp.NewToolResultText(text), nil
}

// handleInit is the one handler that skips opening an existing
// repository: its target is expected not to be one yet.
func handleInit(locks *pathLocks) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		Log("tool call: git_init")
		repoPath := req.GetString("repo_path", "")
		if repoPath == "" {
			return missingParamErr("repo_path", `git_init(repo_path="/path/to/new/repo")`), nil
		}

		release := locks.acquire(repoPath, lockWrite)
		defer release()

		text, err := gitx.Init(ctx, repoPath)
		if err != nil {
			return gomcp.NewToolResultError(err.Error()), nil
		}
		return gomcp.NewToolResultText(text), nil
	}
}

func handleStatus(locks *pathLocks) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		Log("tool call: git_status")
		return withRepo(req, locks, lockRead, func(repo *gitx.Repo) (string, error) {
			out, err := repo.Status(ctx)
			if err != nil {
				return "", err
			}
			return "Repository status:\n" + out, nil
		})
	}
}

func handleDiffUnstaged(locks *pathLocks) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		Log("tool call: git_diff_unstaged")
		return withRepo(req, locks, lockRead, func(repo *gitx.Repo) (string, error) {
			out, err := repo.DiffUnstaged(ctx)
			if err != nil {
				return "", err
			}
			return "Unstaged changes:\n" + out, nil
		})
	}
}

func handleDiffStaged(locks *pathLocks) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		Log("tool call: git_diff_staged")
		return withRepo(req, locks, lockRead, func(repo *gitx.Repo) (string, error) {
			out, err := repo.DiffStaged(ctx)
			if err != nil {
				return "", err
			}
			return "Staged changes:\n" + out, nil
		})
	}
}

func handleDiff(locks *pathLocks) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		Log("tool call: git_diff")
		other := req.GetString("other", "")
		if other == "" {
			return missingParamErr("other", `git_diff(repo_path="/path/to/repo", other="main")`), nil
		}
		return withRepo(req, locks, lockRead, func(repo *gitx.Repo) (string, error) {
			return repo.Diff(ctx, other)
		})
	}
}

func handleCommit(locks *pathLocks) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		Log("tool call: git_commit")
		message := req.GetString("message", "")
		if message == "" {
			return missingParamErr("message", `git_commit(repo_path="/path/to/repo", message="fix parser")`), nil
		}
		return withRepo(req, locks, lockWrite, func(repo *gitx.Repo) (string, error) {
			return repo.Commit(ctx, message)
		})
	}
}

func handleAdd(locks *pathLocks) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		Log("tool call: git_add")
		files, ok := stringListArg(req, "files")
		if !ok || len(files) == 0 {
			return missingParamErr("files", `git_add(repo_path="/path/to/repo", files=["main.go"])`), nil
		}
		return withRepo(req, locks, lockWrite, func(repo *gitx.Repo) (string, error) {
			return repo.Add(ctx, files)
		})
	}
}

func handleReset(locks *pathLocks) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		Log("tool call: git_reset")
		return withRepo(req, locks, lockWrite, func(repo *gitx.Repo) (string, error) {
			return repo.Reset(ctx)
		})
	}
}

func handleLog(locks *pathLocks) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		Log("tool call: git_log")
		maxCount := intArg(req, "max_count", gitx.DefaultLogCount)
		return withRepo(req, locks, lockRead, func(repo *gitx.Repo) (string, error) {
			entries, err := repo.Log(ctx, maxCount)
			if err != nil {
				return "", err
			}
			text := "Commit history:"
			for _, e := range entries {
				text += "\n" + e.String()
			}
			return text, nil
		})
	}
}

func handleCreateBranch(locks *pathLocks) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		Log("tool call: git_create_branch")
		name := req.GetString("branch_name", "")
		if name == "" {
			return missingParamErr("branch_name", `git_create_branch(repo_path="/path/to/repo", branch_name="feature/x")`), nil
		}
		base := req.GetString("base_branch", "")
		return withRepo(req, locks, lockWrite, func(repo *gitx.Repo) (string, error) {
			return repo.CreateBranch(ctx, name, base)
		})
	}
}

func handleSwitch(locks *pathLocks) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		Log("tool call: git_switch")
		name := req.GetString("branch_name", "")
		if name == "" {
			return missingParamErr("branch_name", `git_switch(repo_path="/path/to/repo", branch_name="main")`), nil
		}
		create := boolArg(req, "create_branch", false)
		return withRepo(req, locks, lockWrite, func(repo *gitx.Repo) (string, error) {
			return repo.Switch(ctx, name, create)
		})
	}
}

func handleFetch(locks *pathLocks) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		Log("tool call: git_fetch")
		remote := req.GetString("remote", gitx.DefaultRemote)
		return withRepo(req, locks, lockWrite, func(repo *gitx.Repo) (string, error) {
			return repo.Fetch(ctx, remote)
		})
	}
}

func handlePull(locks *pathLocks) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		Log("tool call: git_pull")
		remote := req.GetString("remote", gitx.DefaultRemote)
		branch := req.GetString("branch", "")
		return withRepo(req, locks, lockWrite, func(repo *gitx.Repo) (string, error) {
			return repo.Pull(ctx, remote, branch)
		})
	}
}

func handlePush(locks *pathLocks) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		Log("tool call: git_push")
		remote := req.GetString("remote", gitx.DefaultRemote)
		branch := req.GetString("branch", "")
		setUpstream := boolArg(req, "set_upstream", false)
		return withRepo(req, locks, lockWrite, func(repo *gitx.Repo) (string, error) {
			return repo.Push(ctx, remote, branch, setUpstream)
		})
	}
}

func handleRemoteAdd(locks *pathLocks) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		Log("tool call: git_remote_add")
		name := req.GetString("name", "")
		if name == "" {
			return missingParamErr("name", `git_remote_add(repo_path="/path/to/repo", name="origin", url="git@host:repo.git")`), nil
		}
		url := req.GetString("url", "")
		if url == "" {
			return missingParamErr("url", `git_remote_add(repo_path="/path/to/repo", name="origin", url="git@host:repo.git")`), nil
		}
		return withRepo(req, locks, lockWrite, func(repo *gitx.Repo) (string, error) {
			return repo.RemoteAdd(ctx, name, url)
		})
	}
}
