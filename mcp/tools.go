package mcp

import (
	gomcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/cobaltgrid/gitserve/gitx"
)

// toolDef pairs a tool schema with its handler. Definitions are built
// once at server construction; the slice order is the tool listing
// order and must stay stable.
type toolDef struct {
	tool    gomcp.Tool
	handler mcpserver.ToolHandlerFunc
}

// repoPathArg is the one argument shared by every tool. It is required
// everywhere, including git_init (where it names the creation target).
func repoPathArg(desc string) gomcp.ToolOption {
	return gomcp.WithString("repo_path",
		gomcp.Required(),
		gomcp.Description(desc),
	)
}

// toolDefs declares the complete tool set. Argument defaults reference
// gitx constants so the advertised schema and the executor cannot
// drift apart.
func (g *GitMCPServer) toolDefs() []toolDef {
	return []toolDef{
		{
			tool: gomcp.NewTool("git_init",
				gomcp.WithDescription("Initialize a new Git repository"),
				repoPathArg("Path at which to create the repository. May not exist yet."),
			),
			handler: handleInit(g.locks),
		},
		{
			tool: gomcp.NewTool("git_diff",
				gomcp.WithDescription("Show changes between current HEAD and another branch/commit/tag"),
				gomcp.WithReadOnlyHintAnnotation(true),
				repoPathArg("Path to the git repository."),
				gomcp.WithString("other",
					gomcp.Required(),
					gomcp.Description("The branch/commit/tag to compare against"),
				),
			),
			handler: handleDiff(g.locks),
		},
		{
			tool: gomcp.NewTool("git_fetch",
				gomcp.WithDescription("Fetch refs and objects from another repository"),
				repoPathArg("Path to the git repository."),
				gomcp.WithString("remote",
					gomcp.DefaultString(gitx.DefaultRemote),
					gomcp.Description("Remote name to fetch from"),
				),
			),
			handler: handleFetch(g.locks),
		},
		{
			tool: gomcp.NewTool("git_pull",
				gomcp.WithDescription("Fetch and integrate with another repository or branch"),
				repoPathArg("Path to the git repository."),
				gomcp.WithString("remote",
					gomcp.DefaultString(gitx.DefaultRemote),
					gomcp.Description("Remote to pull from"),
				),
				gomcp.WithString("branch",
					gomcp.Description("Branch to pull (default: current branch)"),
				),
			),
			handler: handlePull(g.locks),
		},
		{
			tool: gomcp.NewTool("git_push",
				gomcp.WithDescription("Update remote refs along with associated objects"),
				repoPathArg("Path to the git repository."),
				gomcp.WithString("remote",
					gomcp.DefaultString(gitx.DefaultRemote),
					gomcp.Description("Remote to push to"),
				),
				gomcp.WithString("branch",
					gomcp.Description("Branch to push (default: current branch)"),
				),
				gomcp.WithBoolean("set_upstream",
					gomcp.DefaultBool(false),
					gomcp.Description("Set up tracking branch"),
				),
			),
			handler: handlePush(g.locks),
		},
		{
			tool: gomcp.NewTool("git_remote_add",
				gomcp.WithDescription("Add a new remote repository"),
				repoPathArg("Path to the git repository."),
				gomcp.WithString("name",
					gomcp.Required(),
					gomcp.Description("Name for the new remote"),
				),
				gomcp.WithString("url",
					gomcp.Required(),
					gomcp.Description("URL of the remote repository"),
				),
			),
			handler: handleRemoteAdd(g.locks),
		},
		{
			tool: gomcp.NewTool("git_status",
				gomcp.WithDescription("Shows the working tree status"),
				gomcp.WithReadOnlyHintAnnotation(true),
				repoPathArg("Path to the git repository."),
			),
			handler: handleStatus(g.locks),
		},
		{
			tool: gomcp.NewTool("git_diff_unstaged",
				gomcp.WithDescription("Shows changes in the working directory that are not yet staged"),
				gomcp.WithReadOnlyHintAnnotation(true),
				repoPathArg("Path to the git repository."),
			),
			handler: handleDiffUnstaged(g.locks),
		},
		{
			tool: gomcp.NewTool("git_diff_staged",
				gomcp.WithDescription("Shows changes that are staged for commit"),
				gomcp.WithReadOnlyHintAnnotation(true),
				repoPathArg("Path to the git repository."),
			),
			handler: handleDiffStaged(g.locks),
		},
		{
			tool: gomcp.NewTool("git_commit",
				gomcp.WithDescription("Records changes to the repository"),
				repoPathArg("Path to the git repository."),
				gomcp.WithString("message",
					gomcp.Required(),
					gomcp.Description("Commit message"),
				),
			),
			handler: handleCommit(g.locks),
		},
		{
			tool: gomcp.NewTool("git_add",
				gomcp.WithDescription("Adds file contents to the staging area"),
				repoPathArg("Path to the git repository."),
				gomcp.WithArray("files",
					gomcp.Required(),
					gomcp.Description("File paths to stage"),
					gomcp.Items(map[string]any{"type": "string"}),
				),
			),
			handler: handleAdd(g.locks),
		},
		{
			tool: gomcp.NewTool("git_reset",
				gomcp.WithDescription("Unstages all staged changes"),
				repoPathArg("Path to the git repository."),
			),
			handler: handleReset(g.locks),
		},
		{
			tool: gomcp.NewTool("git_log",
				gomcp.WithDescription("Shows the commit logs"),
				gomcp.WithReadOnlyHintAnnotation(true),
				repoPathArg("Path to the git repository."),
				gomcp.WithNumber("max_count",
					gomcp.DefaultNumber(gitx.DefaultLogCount),
					gomcp.Description("Maximum number of commits to return"),
				),
			),
			handler: handleLog(g.locks),
		},
		{
			tool: gomcp.NewTool("git_create_branch",
				gomcp.WithDescription("Creates a new branch from an optional base branch"),
				repoPathArg("Path to the git repository."),
				gomcp.WithString("branch_name",
					gomcp.Required(),
					gomcp.Description("Name of the new branch"),
				),
				gomcp.WithString("base_branch",
					gomcp.Description("Base ref for the new branch (default: current branch)"),
				),
			),
			handler: handleCreateBranch(g.locks),
		},
		{
			tool: gomcp.NewTool("git_switch",
				gomcp.WithDescription("Switch to another branch, optionally creating it with -c"),
				repoPathArg("Path to the git repository."),
				gomcp.WithString("branch_name",
					gomcp.Required(),
					gomcp.Description("Branch to switch to"),
				),
				gomcp.WithBoolean("create_branch",
					gomcp.DefaultBool(false),
					gomcp.Description("Create new branch if it doesn't exist (-c)"),
				),
			),
			handler: handleSwitch(g.locks),
		},
		{
			tool: gomcp.NewTool("git_list_repos",
				gomcp.WithDescription("List candidate git repositories: the client's advertised roots plus the configured repository"),
				gomcp.WithReadOnlyHintAnnotation(true),
			),
			handler: handleListRepos(g.repository, g.roots, g.rootsTimeout),
		},
	}
}
