//go:build unit

package entities_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/outdated/internal/domain/entities"
)

func TestParsePrereleaseSetting(t *testing.T) {
	t.Parallel()

	t.Run("should parse every accepted value case-insensitively", func(t *testing.T) {
		t.Parallel()

		// given
		cases := map[string]entities.PrereleaseSetting{
			"auto":   entities.PrereleaseAuto,
			"Always": entities.PrereleaseAlways,
			"NEVER":  entities.PrereleaseNever,
		}

		for value, expected := range cases {
			// when
			setting, err := entities.ParsePrereleaseSetting(value)

			// then
			require.NoError(t, err)
			assert.Equal(t, expected, setting)
		}
	})

	t.Run("should return an InvalidOptionError for unknown values", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.ParsePrereleaseSetting("sometimes")

		// then
		var invalid *entities.InvalidOptionError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, "prerelease", invalid.Option)
	})
}

func TestResolveEligibility(t *testing.T) {
	t.Parallel()

	stable := entities.MustParseVersion("1.0.0")
	pre := entities.MustParseVersion("1.0.0-beta")

	t.Run("should follow the referenced version in auto mode", func(t *testing.T) {
		t.Parallel()

		// when / then
		assert.False(t, entities.ResolveEligibility(entities.PrereleaseAuto, stable))
		assert.True(t, entities.ResolveEligibility(entities.PrereleaseAuto, pre))
	})

	t.Run("should ignore the referenced version in always and never modes", func(t *testing.T) {
		t.Parallel()

		// when / then
		assert.True(t, entities.ResolveEligibility(entities.PrereleaseAlways, stable))
		assert.False(t, entities.ResolveEligibility(entities.PrereleaseNever, pre))
	})

	t.Run("should panic without a referenced version", func(t *testing.T) {
		t.Parallel()

		// when / then
		assert.Panics(t, func() {
			entities.ResolveEligibility(entities.PrereleaseAuto, nil)
		})
	})
}
