package mcp

import (
	"context"
	"strings"
	"time"

	gomcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/cobaltgrid/gitserve/gitx"
)

// RootsClient asks the connected client for its filesystem roots.
// Implementations wrap whatever transport-level round-trip is
// available; a nil RootsClient means the capability is absent.
type RootsClient interface {
	// SupportsRoots reports whether the client advertises the roots
	// capability. Discovery skips the round-trip entirely when not.
	SupportsRoots() bool
	// ListRoots returns the client's roots as file URIs or plain paths.
	ListRoots(ctx context.Context) ([]string, error)
}

// rootPath strips the file URI scheme client roots usually carry.
func rootPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

// discoverRepos enumerates candidate repositories: client roots that
// hold valid repositories first (invalid ones dropped silently), then
// the configured path verbatim. No deduplication. A failed or timed
// out roots query degrades to an empty dynamic set, never an error —
// discovery is an aid, and any path can still be targeted directly.
func discoverRepos(ctx context.Context, repository string, roots RootsClient, timeout time.Duration) []string {
	var paths []string

	if roots != nil && roots.SupportsRoots() {
		rctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		listed, err := roots.ListRoots(rctx)
		if err != nil {
			Log("roots query failed, treating capability as unavailable: %v", err)
		} else {
			for _, root := range listed {
				p := rootPath(root)
				if gitx.IsRepository(p) {
					paths = append(paths, p)
				}
			}
		}
	}

	if repository != "" {
		paths = append(paths, repository)
	}
	return paths
}

func handleListRepos(repository string, roots RootsClient, timeout time.Duration) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		Log("tool call: git_list_repos")
		paths := discoverRepos(ctx, repository, roots, timeout)
		if len(paths) == 0 {
			return gomcp.NewToolResultText("No repositories found"), nil
		}
		return gomcp.NewToolResultText(strings.Join(paths, "\n")), nil
	}
}
