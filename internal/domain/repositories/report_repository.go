package repositories

import (
	"context"
	"io"

	"github.com/rios0rios0/outdated/internal/domain/entities"
)

// ReportRepository renders a finished report.
type ReportRepository interface {
	// Format returns the format identifier (e.g. "text", "json").
	Format() string

	Write(ctx context.Context, w io.Writer, report *entities.Report) error
}
