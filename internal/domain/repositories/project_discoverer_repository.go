package repositories

import "context"

// ProjectDiscovererRepository resolves a user-given path to one project or solution file.
type ProjectDiscovererRepository interface {
	// Discover fails with *entities.NoProjectFoundError or
	// *entities.MultipleProjectsFoundError.
	Discover(ctx context.Context, path string) (string, error)
}
