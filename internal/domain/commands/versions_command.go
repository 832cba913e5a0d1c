package commands

import (
	"context"
	"errors"
	"sort"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/outdated/internal/domain/entities"
	infraRepos "github.com/rios0rios0/outdated/internal/infrastructure/repositories"
)

// Versions is the interface for the versions command.
type Versions interface {
	Execute(ctx context.Context, settings *entities.Settings, opts VersionsOptions) (*PackageVersions, error)
}

// VersionsOptions holds runtime options for the versions command.
type VersionsOptions struct {
	Package string
}

// PackageVersions lists the published versions of one package.
// Found is false when the registry does not know the package.
type PackageVersions struct {
	Name             string              `json:"name"`
	Found            bool                `json:"found"`
	Versions         []*entities.Version `json:"versions"`
	LatestStable     *entities.Version   `json:"latest_stable"`
	LatestPrerelease *entities.Version   `json:"latest_prerelease"`
}

// VersionsCommand queries the registry for every listed version of a package.
type VersionsCommand struct {
	registryFactory infraRepos.RegistryFactory
}

// NewVersionsCommand creates a new VersionsCommand.
func NewVersionsCommand(registryFactory infraRepos.RegistryFactory) *VersionsCommand {
	return &VersionsCommand{registryFactory: registryFactory}
}

// Execute returns the versions in ascending order. LatestPrerelease is only set
// when a pre-release is newer than the latest stable version.
func (it *VersionsCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts VersionsOptions,
) (*PackageVersions, error) {
	if opts.Package == "" {
		return nil, errors.New("package name is required")
	}

	registry := it.registryFactory(settings.Registry)
	versions, err := registry.ListVersions(ctx, opts.Package)
	if err != nil {
		return nil, err
	}

	result := &PackageVersions{Name: opts.Package, Versions: []*entities.Version{}}
	if versions == nil {
		logger.Infof("Package %s was not found in %s", opts.Package, settings.Registry.URL)
		return result, nil
	}

	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].Compare(versions[j]) < 0
	})
	result.Found = true
	result.Versions = versions
	result.LatestStable = entities.SelectLatest(versions, false)
	if latest := entities.SelectLatest(versions, true); latest != nil && latest.IsPrerelease() {
		result.LatestPrerelease = latest
	}

	logger.Debugf("[versions] %s: %d versions", opts.Package, len(versions))
	return result, nil
}
