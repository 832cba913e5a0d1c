//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/outdated/internal/domain/commands"
	"github.com/rios0rios0/outdated/internal/domain/entities"
)

// StubOutdatedCommand is a stub implementation of commands.Outdated.
type StubOutdatedCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Report           *entities.Report
	LastSettings     *entities.Settings
	LastOpts         commands.OutdatedOptions
}

var _ commands.Outdated = (*StubOutdatedCommand)(nil)

func (s *StubOutdatedCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.OutdatedOptions,
) (*entities.Report, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.Report == nil {
		return &entities.Report{}, nil
	}
	return s.Report, nil
}
