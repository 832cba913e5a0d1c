//go:build unit

package repositories_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/outdated/internal/domain/entities"
	infraRepos "github.com/rios0rios0/outdated/internal/infrastructure/repositories"
	"github.com/rios0rios0/outdated/test/infrastructure/repositorydoubles"
)

func newAnalyzerRegistry(msbuildAvailable bool) *infraRepos.AnalyzerRegistry {
	registry := infraRepos.NewAnalyzerRegistry()
	registry.Register(&repositorydoubles.StubProjectAnalyzerRepository{
		AnalyzerName: entities.AnalyzerMSBuild,
		IsAvailable:  msbuildAvailable,
	})
	registry.Register(&repositorydoubles.StubProjectAnalyzerRepository{
		AnalyzerName: entities.AnalyzerStatic,
		IsAvailable:  true,
	})
	return registry
}

func TestAnalyzerRegistrySelect(t *testing.T) {
	t.Parallel()

	t.Run("should pick msbuild for auto when the toolchain is available", func(t *testing.T) {
		t.Parallel()

		// given
		registry := newAnalyzerRegistry(true)

		// when
		analyzer, err := registry.Select(entities.AnalyzerAuto)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.AnalyzerMSBuild, analyzer.Name())
	})

	t.Run("should fall back to static for auto without the toolchain", func(t *testing.T) {
		t.Parallel()

		// given
		registry := newAnalyzerRegistry(false)

		// when
		analyzer, err := registry.Select(entities.AnalyzerAuto)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.AnalyzerStatic, analyzer.Name())
	})

	t.Run("should honor an explicit analyzer even when unavailable", func(t *testing.T) {
		t.Parallel()

		// given
		registry := newAnalyzerRegistry(false)

		// when
		analyzer, err := registry.Select(entities.AnalyzerMSBuild)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.AnalyzerMSBuild, analyzer.Name())
	})

	t.Run("should return InvalidOptionError for an unknown analyzer", func(t *testing.T) {
		t.Parallel()

		// given
		registry := newAnalyzerRegistry(true)

		// when
		_, err := registry.Select("roslyn")

		// then
		var invalid *entities.InvalidOptionError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, []string{entities.AnalyzerMSBuild, entities.AnalyzerStatic}, invalid.Allowed)
	})
}

func TestReporterRegistryGet(t *testing.T) {
	t.Parallel()

	t.Run("should return the reporter registered for a format", func(t *testing.T) {
		t.Parallel()

		// given
		registry := infraRepos.NewReporterRegistry()
		registry.Register(&repositorydoubles.SpyReportRepository{FormatName: entities.FormatJSON})
		registry.Register(&repositorydoubles.SpyReportRepository{FormatName: entities.FormatText})

		// when
		reporter, err := registry.Get(entities.FormatJSON)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.FormatJSON, reporter.Format())
		assert.Equal(t, []string{entities.FormatJSON, entities.FormatText}, registry.Formats())
	})

	t.Run("should return InvalidOptionError for an unknown format", func(t *testing.T) {
		t.Parallel()

		// given
		registry := infraRepos.NewReporterRegistry()

		// when
		_, err := registry.Get("xml")

		// then
		var invalid *entities.InvalidOptionError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, "format", invalid.Option)
	})
}
