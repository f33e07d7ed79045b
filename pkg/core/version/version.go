// ============================================================================
// Pascal - Interaktiver Ausdrucksrechner
// ============================================================================
//
// Package:     version
// Description: Central version and build information
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for the calculator components
const (
	// Application version
	Application = "1.0.0"

	// Component versions
	Engine  = "1.0.0"
	Server  = "1.0.0"
	History = "1.0.0"
)

// Build metadata, set through -ldflags "-X ..."
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "engine":
		return Engine
	case "server":
		return Server
	case "history":
		return History
	default:
		return Application
	}
}

// Info returns a one-line build description
func Info() string {
	return fmt.Sprintf("pascal %s (commit %s, built %s, %s %s/%s)",
		Application, GitCommit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
