// Package config holds the server's runtime settings.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Settings configures the server. Values come from GITSERVE_* env vars;
// command-line flags override them.
type Settings struct {
	// Repository is the statically configured repository path. When set
	// it is validated once at startup and offered by discovery.
	Repository string `envconfig:"REPOSITORY"`

	// LogFile receives server logs. Stdout carries the MCP protocol, so
	// logs can never go there.
	LogFile string `envconfig:"LOG_FILE"`

	// RootsTimeout bounds the discovery round-trip to the client. A
	// timed out query counts as "capability unavailable", not an error.
	RootsTimeout time.Duration `envconfig:"ROOTS_TIMEOUT" default:"5s"`
}

// Load reads settings from the environment.
func Load() (Settings, error) {
	var s Settings
	if err := envconfig.Process("gitserve", &s); err != nil {
		return Settings{}, fmt.Errorf("read environment: %w", err)
	}
	return s, nil
}
