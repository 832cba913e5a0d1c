//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/outdated/internal/domain/commands"
	"github.com/rios0rios0/outdated/internal/domain/entities"
)

// StubVersionsCommand is a stub implementation of commands.Versions.
type StubVersionsCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Result           *commands.PackageVersions
	LastSettings     *entities.Settings
	LastOpts         commands.VersionsOptions
}

var _ commands.Versions = (*StubVersionsCommand)(nil)

func (s *StubVersionsCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.VersionsOptions,
) (*commands.PackageVersions, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.Result == nil {
		return &commands.PackageVersions{Name: opts.Package}, nil
	}
	return s.Result, nil
}
