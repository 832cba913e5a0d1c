package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
// Entities are plain values; Settings are loaded per run by the controllers.
func RegisterProviders(_ *dig.Container) error {
	return nil
}
