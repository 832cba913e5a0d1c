package repositories

import (
	"context"

	"github.com/rios0rios0/outdated/internal/domain/entities"
)

// ProjectAnalyzerRepository extracts raw dependency declarations from a project
// or solution file, one RawProject per project it covers.
type ProjectAnalyzerRepository interface {
	// Name returns the analyzer identifier (e.g. "msbuild", "static").
	Name() string

	// Available reports whether the analyzer can run in this environment.
	Available() bool

	Analyze(ctx context.Context, projectFile string) ([]entities.RawProject, error)
}
