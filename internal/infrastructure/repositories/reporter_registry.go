package repositories

import (
	"sort"

	"github.com/rios0rios0/outdated/internal/domain/entities"
	domainRepos "github.com/rios0rios0/outdated/internal/domain/repositories"
)

// ReporterRegistry maps output formats to their reporters.
type ReporterRegistry struct {
	reporters map[string]domainRepos.ReportRepository
}

func NewReporterRegistry() *ReporterRegistry {
	return &ReporterRegistry{
		reporters: make(map[string]domainRepos.ReportRepository),
	}
}

// Register adds a reporter under its format.
func (r *ReporterRegistry) Register(reporter domainRepos.ReportRepository) {
	r.reporters[reporter.Format()] = reporter
}

// Get returns the reporter for format, or an InvalidOptionError when none is registered.
func (r *ReporterRegistry) Get(format string) (domainRepos.ReportRepository, error) {
	if reporter, ok := r.reporters[format]; ok {
		return reporter, nil
	}
	return nil, &entities.InvalidOptionError{Option: "format", Value: format, Allowed: r.Formats()}
}

// Formats returns the sorted list of registered formats.
func (r *ReporterRegistry) Formats() []string {
	formats := make([]string, 0, len(r.reporters))
	for format := range r.reporters {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}
