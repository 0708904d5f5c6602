package mcp

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	gomcp "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobaltgrid/gitserve/gitx"
)

func resultText(t *testing.T, res *gomcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := gomcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return tc.Text
}

func callReq(args map[string]interface{}) gomcp.CallToolRequest {
	req := gomcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// testRepo creates a git repository with one commit and an identity
// configured so commit handlers work without global git config.
func testRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.name", "Test User")
	runGit(t, dir, "config", "user.email", "test@example.com")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seed.txt"), []byte("seed\n"), 0600))
	runGit(t, dir, "add", "seed.txt")
	runGit(t, dir, "commit", "-m", "seed")
	return dir
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}

func TestHandleStatus(t *testing.T) {
	locks := newPathLocks()
	dir := testRepo(t)

	result, err := handleStatus(locks)(context.Background(), callReq(map[string]interface{}{"repo_path": dir}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Repository status:\n")
}

func TestHandleStatus_MissingRepoPath(t *testing.T) {
	result, err := handleStatus(newPathLocks())(context.Background(), callReq(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "repo_path")
}

func TestHandleStatus_InvalidRepository(t *testing.T) {
	result, err := handleStatus(newPathLocks())(context.Background(), callReq(map[string]interface{}{"repo_path": t.TempDir()}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "not a git repository")
}

// Missing required arguments must fail validation before the
// repository is touched: a bogus repo_path with a missing argument
// still reports the argument, not the repository.
func TestHandleCommit_ValidatesBeforeOpen(t *testing.T) {
	result, err := handleCommit(newPathLocks())(context.Background(), callReq(map[string]interface{}{
		"repo_path": "/does/not/exist",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), `"message"`)
	assert.NotContains(t, resultText(t, result), "not a git repository")
}

func TestHandleInit(t *testing.T) {
	locks := newPathLocks()
	target := filepath.Join(t.TempDir(), "new-repo")

	result, err := handleInit(locks)(context.Background(), callReq(map[string]interface{}{"repo_path": target}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Initialized empty Git repository in")
	assert.True(t, gitx.IsRepository(target))
}

func TestHandleDiff_InvalidRevisionIsInformational(t *testing.T) {
	locks := newPathLocks()
	dir := testRepo(t)

	result, err := handleDiff(locks)(context.Background(), callReq(map[string]interface{}{
		"repo_path": dir,
		"other":     "not-a-real-ref",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "Invalid revision 'not-a-real-ref'", resultText(t, result))
}

func TestHandleSwitch_MissingBranchSuggestsCreate(t *testing.T) {
	locks := newPathLocks()
	dir := testRepo(t)

	result, err := handleSwitch(locks)(context.Background(), callReq(map[string]interface{}{
		"repo_path":   dir,
		"branch_name": "missing",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "Branch 'missing' does not exist. Use create_branch=true to create it.", resultText(t, result))
}

func TestHandleSwitch_CreateThenStatusShowsBranch(t *testing.T) {
	locks := newPathLocks()
	dir := testRepo(t)
	ctx := context.Background()

	result, err := handleSwitch(locks)(ctx, callReq(map[string]interface{}{
		"repo_path":     dir,
		"branch_name":   "topic",
		"create_branch": true,
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "Created and switched to new branch 'topic'", resultText(t, result))

	status, err := handleStatus(locks)(ctx, callReq(map[string]interface{}{"repo_path": dir}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, status), "On branch topic")
}

func TestHandleCreateBranch_UnknownBaseFails(t *testing.T) {
	locks := newPathLocks()
	dir := testRepo(t)

	result, err := handleCreateBranch(locks)(context.Background(), callReq(map[string]interface{}{
		"repo_path":   dir,
		"branch_name": "b",
		"base_branch": "missing-ref",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestAddCommitLogRoundTrip(t *testing.T) {
	locks := newPathLocks()
	dir := testRepo(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "feature.txt"), []byte("work\n"), 0600))

	result, err := handleAdd(locks)(ctx, callReq(map[string]interface{}{
		"repo_path": dir,
		"files":     []interface{}{"feature.txt"},
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "Files staged successfully", resultText(t, result))

	result, err = handleCommit(locks)(ctx, callReq(map[string]interface{}{
		"repo_path": dir,
		"message":   "add feature file",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Changes committed successfully with hash ")

	result, err = handleLog(locks)(ctx, callReq(map[string]interface{}{
		"repo_path": dir,
		"max_count": 1.0,
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	logText := resultText(t, result)
	assert.Contains(t, logText, "Commit history:")
	assert.Contains(t, logText, "Message: add feature file")
	assert.NotContains(t, logText, "Message: seed")

	// Reset on an already-clean index leaves history untouched.
	result, err = handleReset(locks)(ctx, callReq(map[string]interface{}{"repo_path": dir}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	result, err = handleLog(locks)(ctx, callReq(map[string]interface{}{"repo_path": dir}))
	require.NoError(t, err)
	logText = resultText(t, result)
	assert.Contains(t, logText, "Message: add feature file")
	assert.Contains(t, logText, "Message: seed")
}

func TestHandleAdd_MissingFilesArg(t *testing.T) {
	result, err := handleAdd(newPathLocks())(context.Background(), callReq(map[string]interface{}{
		"repo_path": "/does/not/exist",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), `"files"`)
}

func TestIntArgCoercion(t *testing.T) {
	assert.Equal(t, 3, intArg(callReq(map[string]interface{}{"n": 3.0}), "n", 10))
	assert.Equal(t, 7, intArg(callReq(map[string]interface{}{"n": "7"}), "n", 10))
	assert.Equal(t, 10, intArg(callReq(map[string]interface{}{"n": "x"}), "n", 10))
	assert.Equal(t, 10, intArg(callReq(nil), "n", 10))
}

func TestBoolArgCoercion(t *testing.T) {
	assert.True(t, boolArg(callReq(map[string]interface{}{"b": true}), "b", false))
	assert.True(t, boolArg(callReq(map[string]interface{}{"b": "true"}), "b", false))
	assert.False(t, boolArg(callReq(nil), "b", false))
}
