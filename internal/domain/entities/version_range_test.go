//go:build unit

package entities_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/outdated/internal/domain/entities"
)

func TestParseVersionRange(t *testing.T) {
	t.Parallel()

	t.Run("should floor a bare version at itself and leave it open ended", func(t *testing.T) {
		t.Parallel()

		// given
		text := "1.2.0"

		// when
		r, err := entities.ParseVersionRange(text)

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.2.0", r.Floor().String())
		assert.Nil(t, r.Ceiling())
		assert.True(t, r.Contains(entities.MustParseVersion("9.0.0")))
		assert.False(t, r.Contains(entities.MustParseVersion("1.1.9")))
	})

	t.Run("should round-trip the floor text of every non-floating form", func(t *testing.T) {
		t.Parallel()

		// given
		cases := map[string]string{
			"1.0":            "1.0",
			"[1.2.3]":        "1.2.3",
			"[1.0, 2.0)":     "1.0",
			"(1.0,)":         "1.0",
			"[ 3.1.4 , 4 ]":  "3.1.4",
			"2.0.0-beta.1":   "2.0.0-beta.1",
			"[6.0.0.0, 7.0)": "6.0.0.0",
		}

		for text, floor := range cases {
			// when
			r, err := entities.ParseVersionRange(text)

			// then
			require.NoError(t, err, text)
			assert.Equal(t, floor, r.Floor().String(), text)
			assert.Equal(t, text, r.String())
		}
	})

	t.Run("should honor inclusive and exclusive bounds", func(t *testing.T) {
		t.Parallel()

		// given
		r, err := entities.ParseVersionRange("(1.0, 2.0]")
		require.NoError(t, err)

		// when / then
		assert.False(t, r.Contains(entities.MustParseVersion("1.0")))
		assert.True(t, r.Contains(entities.MustParseVersion("1.5")))
		assert.True(t, r.Contains(entities.MustParseVersion("2.0")))
		assert.False(t, r.Contains(entities.MustParseVersion("2.0.1")))
	})

	t.Run("should floor numeric floats at the lowest admitted version", func(t *testing.T) {
		t.Parallel()

		// given
		cases := map[string]string{
			"*":     "0.0.0",
			"1.*":   "1.0.0",
			"1.2.*": "1.2.0",
		}

		for text, floor := range cases {
			// when
			r, err := entities.ParseVersionRange(text)

			// then
			require.NoError(t, err, text)
			assert.True(t, r.IsFloating(), text)
			assert.Equal(t, floor, r.Floor().String(), text)
		}
	})

	t.Run("should cap a numeric float below the next segment", func(t *testing.T) {
		t.Parallel()

		// given
		r, err := entities.ParseVersionRange("1.*")
		require.NoError(t, err)

		// when / then
		assert.True(t, r.Contains(entities.MustParseVersion("1.99.0")))
		assert.False(t, r.Contains(entities.MustParseVersion("2.0.0")))
		assert.False(t, r.Contains(entities.MustParseVersion("2.0.0-alpha")))
	})

	t.Run("should floor pre-release floats at the label prefix", func(t *testing.T) {
		t.Parallel()

		// given
		cases := map[string]string{
			"1.0.0-beta*": "1.0.0-beta",
			"1.0.0-*":     "1.0.0-0",
		}

		for text, floor := range cases {
			// when
			r, err := entities.ParseVersionRange(text)

			// then
			require.NoError(t, err, text)
			assert.Equal(t, floor, r.Floor().String(), text)
			assert.True(t, r.Floor().IsPrerelease(), text)
		}
	})

	t.Run("should reject malformed ranges with a MalformedRangeError", func(t *testing.T) {
		t.Parallel()

		// given
		ranges := []string{
			"",
			"not-a-version",
			"(, 2.0]",
			"[1.0, 2.0",
			"[2.0, 1.0]",
			"(1.0)",
			"[1.0, 2.0, 3.0]",
			"1.*.3",
			"v1.2.0",
			"[v1.0, 2.0)",
			"(1.0, 1.0)",
		}

		for _, text := range ranges {
			// when
			_, err := entities.ParseVersionRange(text)

			// then
			var malformed *entities.MalformedRangeError
			require.Error(t, err, text)
			assert.True(t, errors.As(err, &malformed), text)
			assert.Equal(t, text, malformed.Range)
		}
	})
}
