//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"io"

	"github.com/rios0rios0/outdated/internal/domain/entities"
	"github.com/rios0rios0/outdated/internal/domain/repositories"
)

// StubProjectDiscovererRepository implements repositories.ProjectDiscovererRepository.
type StubProjectDiscovererRepository struct {
	ProjectFile     string
	DiscoverErr     error
	DiscoveredPaths []string
}

var _ repositories.ProjectDiscovererRepository = (*StubProjectDiscovererRepository)(nil)

func (s *StubProjectDiscovererRepository) Discover(_ context.Context, path string) (string, error) {
	s.DiscoveredPaths = append(s.DiscoveredPaths, path)
	if s.DiscoverErr != nil {
		return "", s.DiscoverErr
	}
	return s.ProjectFile, nil
}

// StubProjectAnalyzerRepository implements repositories.ProjectAnalyzerRepository.
type StubProjectAnalyzerRepository struct {
	// --- identity ---
	AnalyzerName string
	IsAvailable  bool

	// --- Analyze ---
	RawProjects   []entities.RawProject
	AnalyzeErr    error
	AnalyzedFiles []string
}

var _ repositories.ProjectAnalyzerRepository = (*StubProjectAnalyzerRepository)(nil)

func (s *StubProjectAnalyzerRepository) Name() string    { return s.AnalyzerName }
func (s *StubProjectAnalyzerRepository) Available() bool { return s.IsAvailable }

func (s *StubProjectAnalyzerRepository) Analyze(_ context.Context, projectFile string) ([]entities.RawProject, error) {
	s.AnalyzedFiles = append(s.AnalyzedFiles, projectFile)
	return s.RawProjects, s.AnalyzeErr
}

// SpyReportRepository implements repositories.ReportRepository and records what it was given.
type SpyReportRepository struct {
	FormatName string
	Output     string // written verbatim on every call
	WriteErr   error
	Reports    []*entities.Report
}

var _ repositories.ReportRepository = (*SpyReportRepository)(nil)

func (s *SpyReportRepository) Format() string { return s.FormatName }

func (s *SpyReportRepository) Write(_ context.Context, w io.Writer, report *entities.Report) error {
	s.Reports = append(s.Reports, report)
	if s.WriteErr != nil {
		return s.WriteErr
	}
	_, err := io.WriteString(w, s.Output)
	return err
}
