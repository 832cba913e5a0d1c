package internal

import (
	"github.com/rios0rios0/outdated/internal/domain/entities"
	"github.com/rios0rios0/outdated/internal/infrastructure/controllers"
)

// AppInternal holds the controllers the CLI is assembled from.
type AppInternal struct {
	rootController *controllers.OutdatedController
	controllers    []entities.Controller
}

// NewAppInternal creates the application context.
func NewAppInternal(
	rootController *controllers.OutdatedController,
	controllers *[]entities.Controller,
) *AppInternal {
	return &AppInternal{
		rootController: rootController,
		controllers:    *controllers,
	}
}

// GetRootController returns the controller bound to the root command.
func (it *AppInternal) GetRootController() *controllers.OutdatedController {
	return it.rootController
}

// GetControllers returns the subcommand controllers.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
