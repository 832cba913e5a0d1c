package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/outdated/internal/infrastructure/repositories/msbuild"
	"github.com/rios0rios0/outdated/internal/infrastructure/repositories/nuget"
	"github.com/rios0rios0/outdated/internal/infrastructure/repositories/projectfile"
	"github.com/rios0rios0/outdated/internal/infrastructure/repositories/reporters"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(projectfile.NewDiscovererRepository); err != nil {
		return err
	}

	if err := container.Provide(func() *AnalyzerRegistry {
		reg := NewAnalyzerRegistry()
		reg.Register(msbuild.NewAnalyzerRepository())
		reg.Register(projectfile.NewAnalyzerRepository())
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() *ReporterRegistry {
		reg := NewReporterRegistry()
		reg.Register(reporters.NewTextReportRepository())
		reg.Register(reporters.NewJSONReportRepository())
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() RegistryFactory {
		return nuget.NewRegistryRepository
	}); err != nil {
		return err
	}

	return nil
}
