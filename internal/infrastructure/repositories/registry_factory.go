package repositories

import (
	"github.com/rios0rios0/outdated/internal/domain/entities"
	domainRepos "github.com/rios0rios0/outdated/internal/domain/repositories"
)

// RegistryFactory builds a registry client for the configured feed. Clients are
// created per run because the feed URL, credentials and timeout may be overridden
// by flags after the container is built.
type RegistryFactory func(settings entities.RegistrySettings) domainRepos.RegistryRepository
