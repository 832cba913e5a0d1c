package projectfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/outdated/internal/domain/entities"
	"github.com/rios0rios0/outdated/internal/domain/repositories"
)

// DiscovererRepository locates the solution or project file to analyze.
type DiscovererRepository struct{}

var _ repositories.ProjectDiscovererRepository = (*DiscovererRepository)(nil)

// NewDiscovererRepository creates a filesystem discoverer.
func NewDiscovererRepository() repositories.ProjectDiscovererRepository {
	return &DiscovererRepository{}
}

// Discover returns path itself when it names a project or solution file. For a
// directory, a single solution wins; without one, a single project is required.
// Only the directory itself is searched, not its children.
func (d *DiscovererRepository) Discover(_ context.Context, path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", &entities.NoProjectFoundError{Path: absPath}
	}

	if !info.IsDir() {
		if IsProjectFile(absPath) || IsSolutionFile(absPath) {
			return absPath, nil
		}
		return "", &entities.NoProjectFoundError{Path: absPath}
	}

	entries, err := os.ReadDir(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", absPath, err)
	}

	var solutions, projects []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case IsSolutionFile(name):
			solutions = append(solutions, filepath.Join(absPath, name))
		case IsProjectFile(name):
			projects = append(projects, filepath.Join(absPath, name))
		}
	}
	sort.Strings(solutions)
	sort.Strings(projects)

	switch {
	case len(solutions) == 1:
		logger.Debugf("[discovery] Using solution %s", solutions[0])
		return solutions[0], nil
	case len(solutions) > 1:
		return "", &entities.MultipleProjectsFoundError{Path: absPath, Candidates: solutions}
	case len(projects) == 1:
		logger.Debugf("[discovery] Using project %s", projects[0])
		return projects[0], nil
	case len(projects) > 1:
		return "", &entities.MultipleProjectsFoundError{Path: absPath, Candidates: projects}
	default:
		return "", &entities.NoProjectFoundError{Path: absPath}
	}
}
