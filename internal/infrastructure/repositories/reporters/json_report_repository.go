package reporters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rios0rios0/outdated/internal/domain/entities"
	"github.com/rios0rios0/outdated/internal/domain/repositories"
)

// JSONReportRepository writes the report as indented JSON.
type JSONReportRepository struct{}

var _ repositories.ReportRepository = (*JSONReportRepository)(nil)

func NewJSONReportRepository() repositories.ReportRepository {
	return &JSONReportRepository{}
}

func (r *JSONReportRepository) Format() string { return entities.FormatJSON }

func (r *JSONReportRepository) Write(_ context.Context, w io.Writer, report *entities.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
