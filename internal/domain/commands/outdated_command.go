package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/outdated/internal/domain/entities"
	"github.com/rios0rios0/outdated/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/outdated/internal/infrastructure/repositories"
)

// Outdated is the interface for the outdated command.
type Outdated interface {
	Execute(ctx context.Context, settings *entities.Settings, opts OutdatedOptions) (*entities.Report, error)
}

// OutdatedOptions holds runtime options for a single run.
type OutdatedOptions struct {
	Path           string        // Project, solution, or directory holding one of them
	Output         io.Writer     // Report destination; nil skips rendering
	RequestTimeout time.Duration // Bounds each registry lookup when positive
}

// OutdatedCommand orchestrates the full flow:
// discover project -> analyze -> build projects -> compare -> report.
type OutdatedCommand struct {
	discoverer       repositories.ProjectDiscovererRepository
	analyzerRegistry *infraRepos.AnalyzerRegistry
	reporterRegistry *infraRepos.ReporterRegistry
	registryFactory  infraRepos.RegistryFactory
	compare          Compare
}

// NewOutdatedCommand creates a new OutdatedCommand with its collaborators.
func NewOutdatedCommand(
	discoverer repositories.ProjectDiscovererRepository,
	analyzerRegistry *infraRepos.AnalyzerRegistry,
	reporterRegistry *infraRepos.ReporterRegistry,
	registryFactory infraRepos.RegistryFactory,
	compare Compare,
) *OutdatedCommand {
	return &OutdatedCommand{
		discoverer:       discoverer,
		analyzerRegistry: analyzerRegistry,
		reporterRegistry: reporterRegistry,
		registryFactory:  registryFactory,
		compare:          compare,
	}
}

// Execute runs one analysis. Validation errors (bad settings, no project, ambiguous
// directory) and analyzer failures are returned; per-project and per-dependency
// failures are recorded in the report instead.
func (it *OutdatedCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts OutdatedOptions,
) (*entities.Report, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	reporter, err := it.reporterRegistry.Get(settings.Format)
	if err != nil {
		return nil, err
	}
	analyzer, err := it.analyzerRegistry.Select(settings.Analyzer)
	if err != nil {
		return nil, err
	}

	projectFile, err := it.discoverer.Discover(ctx, opts.Path)
	if err != nil {
		return nil, err
	}

	logger.Infof("Analyzing %s (%s analyzer)", projectFile, analyzer.Name())
	raws, err := analyzer.Analyze(ctx, projectFile)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", projectFile, err)
	}

	projects, failures := entities.BuildProjects(raws)
	for _, failure := range failures {
		logger.Warnf("Skipping project %s: %v", failure.Name, failure.Err)
	}

	registry := it.registryFactory(settings.Registry)
	projectReports, err := it.compare.Execute(ctx, registry, projects, CompareOptions{
		Prerelease:     settings.PrereleaseSetting(),
		Concurrency:    settings.Concurrency,
		RequestTimeout: opts.RequestTimeout,
	})
	if err != nil {
		return nil, err
	}
	if projectReports == nil {
		projectReports = []entities.ProjectReport{}
	}

	report := &entities.Report{Projects: projectReports, Failures: failures}
	logger.Infof(
		"Analysis complete: %d projects, %d outdated dependencies, %d failed projects",
		len(report.Projects), report.OutdatedCount(), len(report.Failures),
	)

	if opts.Output != nil {
		if err = reporter.Write(ctx, opts.Output, report); err != nil {
			return nil, err
		}
	}
	return report, nil
}
