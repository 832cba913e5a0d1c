//go:build unit

package commands_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/outdated/internal/domain/commands"
	"github.com/rios0rios0/outdated/internal/domain/entities"
	"github.com/rios0rios0/outdated/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/outdated/test/infrastructure/repositorydoubles"
)

func singleFrameworkProject(deps ...entities.Dependency) []entities.Project {
	return []entities.Project{{
		Name: "App",
		Path: "/src/App/App.csproj",
		TargetFrameworks: []entities.TargetFramework{
			{Moniker: "net8.0", Dependencies: deps},
		},
	}}
}

func dependency(name, versionRange string) entities.Dependency {
	return entitybuilders.NewDependencyBuilder().
		WithName(name).
		WithVersionRange(versionRange).
		BuildDependency()
}

func TestCompareCommandExecute(t *testing.T) {
	t.Parallel()

	registry := func() *doubles.StubRegistryRepository {
		return &doubles.StubRegistryRepository{
			Versions: map[string][]string{
				"pkga": {"1.2.0", "1.3.0", "2.0.0-beta"},
			},
		}
	}

	t.Run("should exclude pre-releases for a stable reference in auto mode", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewCompareCommand()
		projects := singleFrameworkProject(dependency("PkgA", "[1.2.0, )"))

		// when
		reports, err := cmd.Execute(context.Background(), registry(), projects, commands.CompareOptions{
			Prerelease: entities.PrereleaseAuto,
		})

		// then
		require.NoError(t, err)
		result := reports[0].Frameworks[0].Results[0]
		assert.Equal(t, entities.StateCompared, result.State)
		assert.Equal(t, "1.2.0", result.Referenced.String())
		assert.False(t, result.IncludePrerelease)
		require.NotNil(t, result.Latest)
		assert.Equal(t, "1.3.0", result.Latest.String())
		assert.True(t, result.Outdated)
		assert.True(t, result.LatestInRange)
	})

	t.Run("should include pre-releases for a pre-release reference in auto mode", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewCompareCommand()
		projects := singleFrameworkProject(dependency("PkgA", "2.0.0-alpha"))

		// when
		reports, err := cmd.Execute(context.Background(), registry(), projects, commands.CompareOptions{
			Prerelease: entities.PrereleaseAuto,
		})

		// then
		require.NoError(t, err)
		result := reports[0].Frameworks[0].Results[0]
		assert.True(t, result.IncludePrerelease)
		require.NotNil(t, result.Latest)
		assert.Equal(t, "2.0.0-beta", result.Latest.String())
		assert.True(t, result.Outdated)
	})

	t.Run("should report an unknown latest version for a package missing from the registry", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewCompareCommand()
		projects := singleFrameworkProject(dependency("PkgB", "1.0.0"))

		// when
		reports, err := cmd.Execute(context.Background(), registry(), projects, commands.CompareOptions{})

		// then
		require.NoError(t, err)
		result := reports[0].Frameworks[0].Results[0]
		assert.Equal(t, entities.StateCompared, result.State)
		assert.Nil(t, result.Latest)
		assert.False(t, result.Outdated)
		assert.Equal(t, entities.StatusUnknown, result.Status())
	})

	t.Run("should fail a malformed range and keep comparing the others", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewCompareCommand()
		stub := registry()
		projects := singleFrameworkProject(
			dependency("Broken", "not-a-version"),
			dependency("PkgA", "1.2.0"),
		)

		// when
		reports, err := cmd.Execute(context.Background(), stub, projects, commands.CompareOptions{})

		// then
		require.NoError(t, err)
		results := reports[0].Frameworks[0].Results
		require.Len(t, results, 2)
		assert.Equal(t, entities.StateFailed, results[0].State)
		var malformed *entities.MalformedRangeError
		assert.True(t, errors.As(results[0].Err, &malformed))
		assert.Nil(t, results[0].Referenced)
		assert.Equal(t, entities.StateCompared, results[1].State)
		assert.Equal(t, 1, stub.CallCount())
	})

	t.Run("should fail a dependency when the registry is unavailable", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewCompareCommand()
		stub := &doubles.StubRegistryRepository{
			Errs: map[string]error{"pkga": errors.New("connection refused")},
		}
		projects := singleFrameworkProject(dependency("PkgA", "1.0.0"))

		// when
		reports, err := cmd.Execute(context.Background(), stub, projects, commands.CompareOptions{})

		// then
		require.NoError(t, err)
		result := reports[0].Frameworks[0].Results[0]
		assert.Equal(t, entities.StateFailed, result.State)
		var unavailable *entities.RegistryUnavailableError
		require.True(t, errors.As(result.Err, &unavailable))
		assert.Equal(t, "PkgA", unavailable.Package)
		assert.Equal(t, "1.0.0", result.Referenced.String())
	})

	t.Run("should fail a lookup that exceeds the request timeout", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewCompareCommand()
		stub := &doubles.StubRegistryRepository{
			Versions: map[string][]string{"slow": {"1.0.0"}},
			Delays:   map[string]time.Duration{"slow": time.Second},
		}
		projects := singleFrameworkProject(dependency("Slow", "1.0.0"))

		// when
		reports, err := cmd.Execute(context.Background(), stub, projects, commands.CompareOptions{
			RequestTimeout: 10 * time.Millisecond,
		})

		// then
		require.NoError(t, err)
		result := reports[0].Frameworks[0].Results[0]
		assert.Equal(t, entities.StateFailed, result.State)
		assert.ErrorIs(t, result.Err, context.DeadlineExceeded)
	})

	t.Run("should preserve declaration order when lookups complete out of order", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewCompareCommand()
		stub := &doubles.StubRegistryRepository{
			Versions: map[string][]string{},
			Delays:   map[string]time.Duration{},
		}
		var deps []entities.Dependency
		for i := 0; i < 8; i++ {
			name := fmt.Sprintf("pkg%d", i)
			stub.Versions[name] = []string{fmt.Sprintf("%d.0.0", i+1)}
			stub.Delays[name] = time.Duration(8-i) * 5 * time.Millisecond
			deps = append(deps, dependency(name, "0.1.0"))
		}
		projects := singleFrameworkProject(deps...)

		// when
		reports, err := cmd.Execute(context.Background(), stub, projects, commands.CompareOptions{
			Concurrency: 8,
		})

		// then
		require.NoError(t, err)
		results := reports[0].Frameworks[0].Results
		require.Len(t, results, 8)
		for i, result := range results {
			assert.Equal(t, fmt.Sprintf("pkg%d", i), result.Name)
			assert.Equal(t, fmt.Sprintf("%d.0.0", i+1), result.Latest.String())
		}
	})

	t.Run("should keep frameworks and projects in declaration order", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewCompareCommand()
		projects := []entities.Project{
			{Name: "First", TargetFrameworks: []entities.TargetFramework{
				{Moniker: "net6.0", Dependencies: []entities.Dependency{dependency("PkgA", "1.2.0")}},
				{Moniker: "net8.0"},
			}},
			{Name: "Second", TargetFrameworks: []entities.TargetFramework{
				{Moniker: "netstandard2.0", Dependencies: []entities.Dependency{dependency("PkgA", "1.3.0")}},
			}},
		}

		// when
		reports, err := cmd.Execute(context.Background(), registry(), projects, commands.CompareOptions{
			Concurrency: 4,
		})

		// then
		require.NoError(t, err)
		require.Len(t, reports, 2)
		assert.Equal(t, "First", reports[0].Name)
		assert.Equal(t, "net6.0", reports[0].Frameworks[0].Moniker)
		assert.Empty(t, reports[0].Frameworks[1].Results)
		assert.Equal(t, "Second", reports[1].Name)
		assert.False(t, reports[1].Frameworks[0].Results[0].Outdated)
	})

	t.Run("should return the context error when the run is cancelled", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewCompareCommand()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		projects := singleFrameworkProject(dependency("PkgA", "1.2.0"))

		// when
		reports, err := cmd.Execute(ctx, registry(), projects, commands.CompareOptions{})

		// then
		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, reports)
	})
}
