package controllers

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/outdated/internal/domain/commands"
	"github.com/rios0rios0/outdated/internal/domain/entities"
)

// OutdatedController handles the root command with an optional path argument.
type OutdatedController struct {
	command commands.Outdated
}

var _ entities.Controller = (*OutdatedController)(nil)

// NewOutdatedController creates a new OutdatedController.
func NewOutdatedController(command commands.Outdated) *OutdatedController {
	return &OutdatedController{command: command}
}

// GetBind returns the Cobra command metadata for the outdated controller.
func (it *OutdatedController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "outdated [path]",
		Short: "Report outdated NuGet dependencies of a .NET project",
		Long: `Discover a solution or project, read the package references of every
target framework, and compare each declared version with the newest version
published in the NuGet feed.

The path may be a .sln, .slnx, .csproj, .fsproj or .vbproj file, or a directory
holding exactly one solution (or, without a solution, exactly one project).
It defaults to the current directory.`,
	}
}

// Execute runs one analysis and renders the report to the command's output.
func (it *OutdatedController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	overrideString(cmd, "prerelease", &settings.Prerelease)
	overrideString(cmd, "format", &settings.Format)
	overrideString(cmd, "analyzer", &settings.Analyzer)
	if cmd.Flags().Changed("concurrency") {
		settings.Concurrency, _ = cmd.Flags().GetInt("concurrency")
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")

	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	_, err = it.command.Execute(cmd.Context(), settings, commands.OutdatedOptions{
		Path:           path,
		Output:         cmd.OutOrStdout(),
		RequestTimeout: timeout,
	})
	return err
}

// AddFlags adds the analysis flags to the given Cobra command.
func (it *OutdatedController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("prerelease", entities.PrereleaseAuto.String(),
		"Pre-release policy ("+strings.Join(entities.PrereleaseSettingNames, ", ")+")")
	cmd.Flags().StringP("format", "f", entities.FormatText,
		"Report format ("+strings.Join(entities.FormatNames, ", ")+")")
	cmd.Flags().String("analyzer", entities.AnalyzerAuto,
		"Project analyzer ("+strings.Join(entities.AnalyzerNames, ", ")+")")
	cmd.Flags().Int("concurrency", entities.DefaultConcurrency,
		"Maximum registry lookups in flight")
	cmd.Flags().Duration("timeout", 0,
		"Timeout for each registry lookup (0 disables it)")
}
