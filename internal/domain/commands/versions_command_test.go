//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/outdated/internal/domain/commands"
	"github.com/rios0rios0/outdated/internal/domain/entities"
	"github.com/rios0rios0/outdated/internal/domain/repositories"
	doubles "github.com/rios0rios0/outdated/test/infrastructure/repositorydoubles"
)

func TestVersionsCommandExecute(t *testing.T) {
	t.Parallel()

	stub := &doubles.StubRegistryRepository{
		Versions: map[string][]string{
			"serilog": {"3.1.0", "2.12.0", "4.0.0-dev-02108", "3.0.1"},
			"stable":  {"1.0.0", "1.1.0"},
		},
	}
	factory := func(entities.RegistrySettings) repositories.RegistryRepository { return stub }

	t.Run("should list versions in ascending order with the latest markers", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewVersionsCommand(factory)

		// when
		result, err := cmd.Execute(context.Background(), entities.DefaultSettings(), commands.VersionsOptions{Package: "Serilog"})

		// then
		require.NoError(t, err)
		assert.True(t, result.Found)
		texts := make([]string, 0, len(result.Versions))
		for _, v := range result.Versions {
			texts = append(texts, v.String())
		}
		assert.Equal(t, []string{"2.12.0", "3.0.1", "3.1.0", "4.0.0-dev-02108"}, texts)
		assert.Equal(t, "3.1.0", result.LatestStable.String())
		assert.Equal(t, "4.0.0-dev-02108", result.LatestPrerelease.String())
	})

	t.Run("should leave the pre-release marker empty when stable is newest", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewVersionsCommand(factory)

		// when
		result, err := cmd.Execute(context.Background(), entities.DefaultSettings(), commands.VersionsOptions{Package: "Stable"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.1.0", result.LatestStable.String())
		assert.Nil(t, result.LatestPrerelease)
	})

	t.Run("should report a missing package as not found", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewVersionsCommand(factory)

		// when
		result, err := cmd.Execute(context.Background(), entities.DefaultSettings(), commands.VersionsOptions{Package: "Nope"})

		// then
		require.NoError(t, err)
		assert.False(t, result.Found)
		assert.Empty(t, result.Versions)
	})

	t.Run("should require a package name", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewVersionsCommand(factory)

		// when
		_, err := cmd.Execute(context.Background(), entities.DefaultSettings(), commands.VersionsOptions{})

		// then
		require.Error(t, err)
	})
}
