//go:build unit

package controllers_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/outdated/internal/domain/commands"
	"github.com/rios0rios0/outdated/internal/domain/entities"
	"github.com/rios0rios0/outdated/internal/infrastructure/controllers"
	"github.com/rios0rios0/outdated/test/domain/commanddoubles"
)

// newCobraCommand mirrors how main binds a controller, pointing --config at a
// temp file so a developer's own configuration never leaks into the test.
func newCobraCommand(t *testing.T, controller entities.Controller, config string, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "outdated.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o600))

	cmd := &cobra.Command{
		Use:           controller.GetBind().Use,
		RunE:          controller.Execute,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().String("config", "", "")
	controller.AddFlags(cmd)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	return cmd, &out
}

func TestOutdatedControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should pass config settings and default the path to the current directory", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubOutdatedCommand{}
		controller := controllers.NewOutdatedController(stub)
		cmd, out := newCobraCommand(t, controller, "prerelease: never\nconcurrency: 4\n")

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, stub.ExecuteCallCount)
		assert.Equal(t, ".", stub.LastOpts.Path)
		assert.Equal(t, out, stub.LastOpts.Output)
		assert.Equal(t, "never", stub.LastSettings.Prerelease)
		assert.Equal(t, 4, stub.LastSettings.Concurrency)
		assert.Equal(t, entities.DefaultRegistryURL, stub.LastSettings.Registry.URL)
	})

	t.Run("should let flags override the config file", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubOutdatedCommand{}
		controller := controllers.NewOutdatedController(stub)
		cmd, _ := newCobraCommand(t, controller, "prerelease: never\nformat: text\n",
			"--prerelease", "always", "-f", "json", "--analyzer", "static",
			"--concurrency", "8", "--timeout", "5s", "src/Shop.sln")

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.Equal(t, "src/Shop.sln", stub.LastOpts.Path)
		assert.Equal(t, 5*time.Second, stub.LastOpts.RequestTimeout)
		assert.Equal(t, "always", stub.LastSettings.Prerelease)
		assert.Equal(t, entities.FormatJSON, stub.LastSettings.Format)
		assert.Equal(t, entities.AnalyzerStatic, stub.LastSettings.Analyzer)
		assert.Equal(t, 8, stub.LastSettings.Concurrency)
	})

	t.Run("should fail before running when the config file is invalid", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubOutdatedCommand{}
		controller := controllers.NewOutdatedController(stub)
		cmd, _ := newCobraCommand(t, controller, "format: xml\n")

		// when
		err := cmd.Execute()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load config")
		assert.Equal(t, 0, stub.ExecuteCallCount)
	})

	t.Run("should return the command error", func(t *testing.T) {
		t.Parallel()

		// given
		expected := &entities.NoProjectFoundError{Path: "/tmp/empty"}
		stub := &commanddoubles.StubOutdatedCommand{ExecuteErr: expected}
		controller := controllers.NewOutdatedController(stub)
		cmd, _ := newCobraCommand(t, controller, "")

		// when
		err := cmd.Execute()

		// then
		assert.True(t, errors.Is(err, expected))
	})
}

func TestVersionsControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should print versions marking the latest stable and pre-release", func(t *testing.T) {
		t.Parallel()

		// given
		stable := entities.MustParseVersion("2.0.0")
		preview := entities.MustParseVersion("2.1.0-beta.1")
		stub := &commanddoubles.StubVersionsCommand{Result: &commands.PackageVersions{
			Name:             "Serilog",
			Found:            true,
			Versions:         []*entities.Version{entities.MustParseVersion("1.0.0"), stable, preview},
			LatestStable:     stable,
			LatestPrerelease: preview,
		}}
		controller := controllers.NewVersionsController(stub)
		cmd, out := newCobraCommand(t, controller, "", "Serilog")

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.Equal(t, "Serilog", stub.LastOpts.Package)
		assert.Equal(t, "1.0.0\n2.0.0 (latest stable)\n2.1.0-beta.1 (latest pre-release)\n", out.String())
	})

	t.Run("should report a package that was not found", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubVersionsCommand{}
		controller := controllers.NewVersionsController(stub)
		cmd, out := newCobraCommand(t, controller, "", "Missing.Package")

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.Equal(t, "Package Missing.Package was not found\n", out.String())
	})

	t.Run("should write JSON when asked", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubVersionsCommand{}
		controller := controllers.NewVersionsController(stub)
		cmd, out := newCobraCommand(t, controller, "", "--format", "json", "Missing.Package")

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.Contains(t, out.String(), `"name": "Missing.Package"`)
		assert.Contains(t, out.String(), `"found": false`)
	})

	t.Run("should reject a missing package argument", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubVersionsCommand{}
		controller := controllers.NewVersionsController(stub)
		cmd, _ := newCobraCommand(t, controller, "")

		// when
		err := cmd.Execute()

		// then
		var invalid *entities.InvalidOptionError
		assert.True(t, errors.As(err, &invalid))
		assert.Equal(t, 0, stub.ExecuteCallCount)
	})
}
