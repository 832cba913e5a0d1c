package repositories

import (
	"context"

	"github.com/rios0rios0/outdated/internal/domain/entities"
)

// RegistryRepository abstracts a package registry (a NuGet v3 feed).
// It is the only suspension point of a comparison: every other step is pure.
type RegistryRepository interface {
	// ListVersions returns every listed version of the package. A package that
	// does not exist yields a nil slice and a nil error.
	ListVersions(ctx context.Context, packageName string) ([]*entities.Version, error)

	// GetLatestVersion returns the newest version eligible under includePrerelease,
	// or nil when the package is unknown or nothing qualifies. Transport failures
	// are reported as *entities.RegistryUnavailableError.
	GetLatestVersion(ctx context.Context, packageName string, includePrerelease bool) (*entities.Version, error)
}
