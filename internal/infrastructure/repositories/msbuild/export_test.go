package msbuild

import "context"

// ParseDependencyGraph exports parseDependencyGraph for testing.
var ParseDependencyGraph = parseDependencyGraph //nolint:gochecknoglobals // test export

// CommandRunner exports commandRunner for testing.
type CommandRunner = commandRunner

// NewAnalyzerRepositoryForTest builds an analyzer with a fake runner and PATH lookup.
func NewAnalyzerRepositoryForTest(
	run func(ctx context.Context, name string, args ...string) ([]byte, error),
	lookPath func(file string) (string, error),
) *AnalyzerRepository {
	return &AnalyzerRepository{run: run, lookPath: lookPath}
}
