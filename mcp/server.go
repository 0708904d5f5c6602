// Package mcp exposes git operations as MCP tools over stdio.
//
// The package owns the dispatch layer: tool schemas, request
// validation, per-repository locking, and the envelope around engine
// results. The git work itself lives in gitx.
package mcp

import (
	"context"
	"sort"
	"time"

	gomcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const serverInstructions = "This server exposes git operations as tools for agents without shell access. " +
	"Every tool takes a repo_path pointing at the repository to operate on; " +
	"use git_list_repos to discover candidate repositories, and git_init to create a new one. " +
	"Recoverable conditions (unknown revision on git_diff, missing branch on git_switch, " +
	"missing upstream on git_pull/git_push) are returned as descriptive text, not errors — read the result."

// GitMCPServer wraps an MCP server with the git tool set.
type GitMCPServer struct {
	server       *mcpserver.MCPServer
	repository   string // statically configured repository path, may be empty
	roots        RootsClient
	rootsTimeout time.Duration
	locks        *pathLocks
}

// NewGitMCPServer creates the server and registers all tools in their
// fixed presentation order. repository is the optional statically
// configured path surfaced by discovery; roots may be nil when the
// client cannot be asked for filesystem roots.
func NewGitMCPServer(repository string, roots RootsClient, rootsTimeout time.Duration) *GitMCPServer {
	g := &GitMCPServer{
		repository:   repository,
		roots:        roots,
		rootsTimeout: rootsTimeout,
		locks:        newPathLocks(),
	}

	// Handlers are bound to their tools once, here. The protocol-level
	// tool name is not consulted again after registration.
	defs := g.toolDefs()

	// The underlying server stores tools in a map and lists them
	// alphabetically; restore the registry order before the listing
	// goes out to the client.
	rank := make(map[string]int, len(defs))
	for i, def := range defs {
		rank[def.tool.Name] = i
	}
	hooks := &mcpserver.Hooks{}
	hooks.AddAfterListTools(func(ctx context.Context, id any, message *gomcp.ListToolsRequest, result *gomcp.ListToolsResult) {
		sort.SliceStable(result.Tools, func(i, j int) bool {
			ri, ok := rank[result.Tools[i].Name]
			if !ok {
				ri = len(rank)
			}
			rj, ok := rank[result.Tools[j].Name]
			if !ok {
				rj = len(rank)
			}
			return ri < rj
		})
	})

	g.server = mcpserver.NewMCPServer(
		"gitserve",
		"0.1.0",
		mcpserver.WithInstructions(serverInstructions),
		mcpserver.WithHooks(hooks),
	)
	for _, def := range defs {
		g.server.AddTool(def.tool, def.handler)
	}

	Log("server created: %d tools registered", len(defs))
	return g
}

// Serve runs the MCP server on stdio until the client disconnects.
func (g *GitMCPServer) Serve() error {
	return mcpserver.ServeStdio(g.server)
}
