//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rios0rios0/outdated/internal/domain/entities"
	"github.com/rios0rios0/outdated/internal/domain/repositories"
)

// LatestVersionCall records a single invocation of GetLatestVersion.
type LatestVersionCall struct {
	Name              string
	IncludePrerelease bool
}

// StubRegistryRepository implements repositories.RegistryRepository from in-memory
// version lists keyed by lower-case package name. Safe for concurrent use.
type StubRegistryRepository struct {
	// --- ListVersions / GetLatestVersion ---
	Versions map[string][]string      // package -> published versions; missing means not found
	Errs     map[string]error         // package -> error to return
	Delays   map[string]time.Duration // package -> latency before answering

	mu    sync.Mutex
	Calls []LatestVersionCall
}

var _ repositories.RegistryRepository = (*StubRegistryRepository)(nil)

func (s *StubRegistryRepository) ListVersions(ctx context.Context, name string) ([]*entities.Version, error) {
	key := strings.ToLower(name)
	if delay, ok := s.Delays[key]; ok {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := s.Errs[key]; ok {
		return nil, err
	}
	raw, ok := s.Versions[key]
	if !ok {
		return nil, nil
	}
	versions := make([]*entities.Version, 0, len(raw))
	for _, v := range raw {
		versions = append(versions, entities.MustParseVersion(v))
	}
	return versions, nil
}

func (s *StubRegistryRepository) GetLatestVersion(
	ctx context.Context,
	name string,
	includePrerelease bool,
) (*entities.Version, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, LatestVersionCall{Name: name, IncludePrerelease: includePrerelease})
	s.mu.Unlock()

	versions, err := s.ListVersions(ctx, name)
	if err != nil || versions == nil {
		return nil, err
	}
	return entities.SelectLatest(versions, includePrerelease), nil
}

// CallCount returns how many lookups were made.
func (s *StubRegistryRepository) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}
