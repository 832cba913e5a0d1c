package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewCompareCommand); err != nil {
		return err
	}
	if err := container.Provide(NewOutdatedCommand); err != nil {
		return err
	}
	if err := container.Provide(NewVersionsCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *CompareCommand) Compare {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *OutdatedCommand) Outdated {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *VersionsCommand) Versions {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
