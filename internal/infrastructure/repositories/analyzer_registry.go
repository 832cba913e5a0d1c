package repositories

import (
	"sort"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/outdated/internal/domain/entities"
	domainRepos "github.com/rios0rios0/outdated/internal/domain/repositories"
)

// AnalyzerRegistry manages all registered project analyzer implementations.
type AnalyzerRegistry struct {
	analyzers map[string]domainRepos.ProjectAnalyzerRepository
}

// NewAnalyzerRegistry creates an empty analyzer registry.
func NewAnalyzerRegistry() *AnalyzerRegistry {
	return &AnalyzerRegistry{
		analyzers: make(map[string]domainRepos.ProjectAnalyzerRepository),
	}
}

// Register adds an analyzer under its name.
func (r *AnalyzerRegistry) Register(a domainRepos.ProjectAnalyzerRepository) {
	r.analyzers[a.Name()] = a
}

// Get returns the analyzer with the given name, or nil if not registered.
func (r *AnalyzerRegistry) Get(name string) domainRepos.ProjectAnalyzerRepository {
	return r.analyzers[name]
}

// Select resolves the analyzer setting. "auto" picks the toolchain analyzer when
// it is available and falls back to the static one otherwise.
func (r *AnalyzerRegistry) Select(name string) (domainRepos.ProjectAnalyzerRepository, error) {
	if name != entities.AnalyzerAuto {
		if analyzer := r.Get(name); analyzer != nil {
			return analyzer, nil
		}
		return nil, &entities.InvalidOptionError{Option: "analyzer", Value: name, Allowed: r.Names()}
	}

	if analyzer := r.Get(entities.AnalyzerMSBuild); analyzer != nil && analyzer.Available() {
		return analyzer, nil
	}
	logger.Debug("[analyzer] dotnet CLI not found, using the static analyzer")
	if analyzer := r.Get(entities.AnalyzerStatic); analyzer != nil {
		return analyzer, nil
	}
	return nil, &entities.InvalidOptionError{Option: "analyzer", Value: name, Allowed: r.Names()}
}

// Names returns the sorted list of registered analyzer names.
func (r *AnalyzerRegistry) Names() []string {
	names := make([]string, 0, len(r.analyzers))
	for name := range r.analyzers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
