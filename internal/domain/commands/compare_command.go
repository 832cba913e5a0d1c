package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/outdated/internal/domain/entities"
	"github.com/rios0rios0/outdated/internal/domain/repositories"
)

// Compare is the interface for the comparison engine.
type Compare interface {
	Execute(
		ctx context.Context,
		registry repositories.RegistryRepository,
		projects []entities.Project,
		opts CompareOptions,
	) ([]entities.ProjectReport, error)
}

// CompareOptions holds the immutable inputs of one comparison run.
type CompareOptions struct {
	Prerelease     entities.PrereleaseSetting
	Concurrency    int           // Maximum registry lookups in flight; values below 1 mean sequential
	RequestTimeout time.Duration // Wraps each registry lookup when positive
}

// CompareCommand compares every dependency of every target framework with the
// registry. Parse and registry failures stay local to their dependency; only
// cancellation of the whole run aborts it.
type CompareCommand struct{}

// NewCompareCommand creates a new CompareCommand.
func NewCompareCommand() *CompareCommand {
	return &CompareCommand{}
}

// lookup addresses one dependency by its declaration position.
type lookup struct {
	project    int
	framework  int
	dependency int
}

// Execute returns one ProjectReport per project with results in declaration order.
// Lookups may run concurrently, but each writes to its own pre-sized slot, so the
// ordering never depends on completion order. On cancellation the partial results
// are discarded and the context error is returned.
func (it *CompareCommand) Execute(
	ctx context.Context,
	registry repositories.RegistryRepository,
	projects []entities.Project,
	opts CompareOptions,
) ([]entities.ProjectReport, error) {
	reports := make([]entities.ProjectReport, len(projects))
	var lookups []lookup

	for p, project := range projects {
		reports[p] = entities.ProjectReport{
			Name:       project.Name,
			Path:       project.Path,
			Frameworks: make([]entities.FrameworkReport, len(project.TargetFrameworks)),
		}
		for f, framework := range project.TargetFrameworks {
			reports[p].Frameworks[f] = entities.FrameworkReport{
				Moniker: framework.Moniker,
				Results: make([]entities.ComparisonResult, len(framework.Dependencies)),
			}
			for d := range framework.Dependencies {
				lookups = append(lookups, lookup{project: p, framework: f, dependency: d})
			}
		}
	}

	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}
	logger.Debugf("[compare] %d dependencies, %d lookups in flight", len(lookups), limit)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(limit)
	for _, l := range lookups {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			dep := projects[l.project].TargetFrameworks[l.framework].Dependencies[l.dependency]
			reports[l.project].Frameworks[l.framework].Results[l.dependency] =
				compareDependency(groupCtx, registry, dep, opts)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("comparison interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("comparison interrupted: %w", err)
	}
	return reports, nil
}

// compareDependency walks one dependency through
// Pending -> RangeParsed -> PolicyResolved -> Compared, or into Failed.
func compareDependency(
	ctx context.Context,
	registry repositories.RegistryRepository,
	dep entities.Dependency,
	opts CompareOptions,
) entities.ComparisonResult {
	result := entities.ComparisonResult{
		Name:         dep.Name,
		VersionRange: dep.VersionRange,
		State:        entities.StatePending,
	}

	versionRange, err := entities.ParseVersionRange(dep.VersionRange)
	if err != nil {
		logger.Warnf("[compare] %s: %v", dep.Name, err)
		result.State = entities.StateFailed
		result.Err = err
		return result
	}
	result.Referenced = versionRange.Floor()
	result.State = entities.StateRangeParsed

	result.IncludePrerelease = entities.ResolveEligibility(opts.Prerelease, result.Referenced)
	result.State = entities.StatePolicyResolved

	callCtx := ctx
	if opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, opts.RequestTimeout)
		defer cancel()
	}

	latest, err := registry.GetLatestVersion(callCtx, dep.Name, result.IncludePrerelease)
	if err != nil {
		var unavailable *entities.RegistryUnavailableError
		if !errors.As(err, &unavailable) {
			err = &entities.RegistryUnavailableError{Package: dep.Name, Err: err}
		}
		logger.Warnf("[compare] %s: %v", dep.Name, err)
		result.State = entities.StateFailed
		result.Err = err
		return result
	}

	result.Latest = latest
	result.State = entities.StateCompared
	if latest != nil {
		result.Outdated = latest.GreaterThan(result.Referenced)
		result.LatestInRange = versionRange.Contains(latest)
	}
	logger.Debugf(
		"[compare] %s: referenced %s, latest %v, outdated %t",
		dep.Name, result.Referenced, latest, result.Outdated,
	)
	return result
}
