package mcp

import "log"

var logger *log.Logger

// SetLogger installs the package logger. The server writes the MCP
// protocol on stdout, so logging must go elsewhere (a file).
func SetLogger(l *log.Logger) {
	logger = l
}

// Log writes a formatted message to the installed logger, if any.
func Log(format string, args ...interface{}) {
	if logger != nil {
		logger.Printf(format, args...)
	}
}
