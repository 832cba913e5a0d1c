package controllers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/outdated/internal/domain/commands"
	"github.com/rios0rios0/outdated/internal/domain/entities"
)

// VersionsController handles the "versions" subcommand.
type VersionsController struct {
	command commands.Versions
}

var _ entities.Controller = (*VersionsController)(nil)

// NewVersionsController creates a new VersionsController.
func NewVersionsController(command commands.Versions) *VersionsController {
	return &VersionsController{command: command}
}

// GetBind returns the Cobra command metadata for the versions controller.
func (it *VersionsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "versions <package>",
		Short: "List the published versions of a package",
		Long: `List every listed version of a package in the configured NuGet feed,
oldest first, together with the latest stable and latest pre-release versions.`,
	}
}

// Execute queries the feed and prints the versions.
func (it *VersionsController) Execute(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &entities.InvalidOptionError{Option: "package", Value: fmt.Sprint(args)}
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	overrideString(cmd, "format", &settings.Format)
	if err = settings.Validate(); err != nil {
		return err
	}

	result, err := it.command.Execute(cmd.Context(), settings, commands.VersionsOptions{Package: args[0]})
	if err != nil {
		return err
	}

	if settings.Format == entities.FormatJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}
	return writeVersions(cmd.OutOrStdout(), result)
}

// AddFlags adds the versions-specific flags to the given Cobra command.
func (it *VersionsController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", entities.FormatText, "Output format (text, json)")
}

func writeVersions(w io.Writer, result *commands.PackageVersions) error {
	if !result.Found {
		_, err := fmt.Fprintf(w, "Package %s was not found\n", result.Name)
		return err
	}
	for _, version := range result.Versions {
		line := version.String()
		switch version {
		case result.LatestStable:
			line += " (latest stable)"
		case result.LatestPrerelease:
			line += " (latest pre-release)"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
