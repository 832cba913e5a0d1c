package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/outdated/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewOutdatedController); err != nil {
		return err
	}
	if err := container.Provide(NewVersionsController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates the subcommand controllers into a slice for the AppInternal.
// The outdated controller is bound to the root command instead.
func NewControllers(
	versionsController *VersionsController,
) *[]entities.Controller {
	return &[]entities.Controller{
		versionsController,
	}
}
