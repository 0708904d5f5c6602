package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cobaltgrid/gitserve/config"
	"github.com/cobaltgrid/gitserve/gitx"
	gitservemcp "github.com/cobaltgrid/gitserve/mcp"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gitserve: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		repository string
		logFile    string
	)

	cmd := &cobra.Command{
		Use:   "gitserve",
		Short: "MCP server exposing git operations as tools",
		Long: "gitserve speaks the Model Context Protocol on stdio and exposes a fixed set of\n" +
			"git operations (init, status, diff, commit, branch, fetch/pull/push, ...) as\n" +
			"tools for clients without shell access to a git binary.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}
			if repository != "" {
				settings.Repository = repository
			}
			if logFile != "" {
				settings.LogFile = logFile
			}
			return serve(settings)
		},
	}

	cmd.Flags().StringVarP(&repository, "repository", "r", "", "git repository path to serve and advertise via discovery")
	cmd.Flags().StringVar(&logFile, "log-file", "", "log file path (default ~/.gitserve/gitserve.log)")
	return cmd
}

func serve(settings config.Settings) error {
	setupLogging(settings.LogFile)

	// The configured repository is opened once here purely to validate
	// it; every request re-opens its own handle independently.
	if settings.Repository != "" {
		if _, err := gitx.Open(settings.Repository); err != nil {
			gitservemcp.Log("startup: %s is not a valid git repository", settings.Repository)
			return fmt.Errorf("%s is not a valid git repository", settings.Repository)
		}
		gitservemcp.Log("startup: using repository at %s", settings.Repository)
	}

	// No server-initiated roots round-trip is available on this stdio
	// transport; discovery then lists only the configured repository.
	srv := gitservemcp.NewGitMCPServer(settings.Repository, nil, settings.RootsTimeout)
	if err := srv.Serve(); err != nil {
		gitservemcp.Log("fatal: %v", err)
		return err
	}

	gitservemcp.Log("shutdown cleanly")
	return nil
}

// setupLogging points the mcp package logger at a file. Stdout is the
// MCP protocol and stderr is captured by the client, so failures here
// are swallowed and the server simply runs unlogged.
func setupLogging(path string) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return
		}
		dir := filepath.Join(homeDir, ".gitserve")
		if err := os.MkdirAll(dir, 0700); err != nil {
			return
		}
		path = filepath.Join(dir, "gitserve.log")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return
	}
	logger := log.New(f, "[gitserve] ", log.Ldate|log.Ltime|log.Lshortfile)
	gitservemcp.SetLogger(logger)
}
