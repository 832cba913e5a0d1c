package reporters

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rios0rios0/outdated/internal/domain/entities"
	"github.com/rios0rios0/outdated/internal/domain/repositories"
)

const (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")

	placeholder = "-"
)

// TextReportRepository renders one table per target framework.
// Colors are decided by the destination writer, so redirected output stays plain.
type TextReportRepository struct{}

var _ repositories.ReportRepository = (*TextReportRepository)(nil)

// NewTextReportRepository creates the human-readable reporter.
func NewTextReportRepository() repositories.ReportRepository {
	return &TextReportRepository{}
}

func (r *TextReportRepository) Format() string { return entities.FormatText }

func (r *TextReportRepository) Write(_ context.Context, w io.Writer, report *entities.Report) error {
	renderer := lipgloss.NewRenderer(w)
	styles := newTextStyles(renderer)

	var out strings.Builder
	for i, project := range report.Projects {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(styles.title.Render("» "+project.Name) + " " + styles.muted.Render(project.Path) + "\n")

		for _, framework := range project.Frameworks {
			out.WriteString("\n  " + styles.header.Render("["+framework.Moniker+"]") + "\n")
			if len(framework.Results) == 0 {
				out.WriteString("  " + styles.muted.Render("No package references") + "\n")
				continue
			}
			out.WriteString(indent(renderTable(styles, framework.Results), "  ") + "\n")
		}
	}

	for _, failure := range report.Failures {
		reason := "analysis failed"
		if failure.Err != nil {
			reason = failure.Err.Error()
		}
		out.WriteString("\n" + styles.failed.Render("✗ "+failure.Name) + " " + reason + "\n")
	}

	out.WriteString("\n" + summary(styles, report) + "\n")

	if _, err := io.WriteString(w, out.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// summary reports up to date only when every dependency was actually checked.
func summary(styles textStyles, report *entities.Report) string {
	outdated := report.OutdatedCount()
	unchecked := report.UncheckedCount()
	if outdated == 0 && unchecked == 0 {
		return styles.success.Render("All dependencies are up to date")
	}

	var lines []string
	if outdated > 0 {
		lines = append(lines, styles.outdated.Render(fmt.Sprintf("%d outdated dependencies", outdated)))
	}
	if unchecked > 0 {
		lines = append(lines, styles.failed.Render(fmt.Sprintf("%d dependencies could not be checked", unchecked)))
	}
	return strings.Join(lines, "\n")
}

type textStyles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	muted    lipgloss.Style
	cell     lipgloss.Style
	success  lipgloss.Style
	outdated lipgloss.Style
	failed   lipgloss.Style
}

func newTextStyles(renderer *lipgloss.Renderer) textStyles {
	return textStyles{
		title:    renderer.NewStyle().Bold(true).Foreground(colorPrimary),
		header:   renderer.NewStyle().Bold(true),
		muted:    renderer.NewStyle().Foreground(colorMuted),
		cell:     renderer.NewStyle().Padding(0, 1),
		success:  renderer.NewStyle().Foreground(colorSuccess),
		outdated: renderer.NewStyle().Foreground(colorWarning),
		failed:   renderer.NewStyle().Foreground(colorError),
	}
}

func renderTable(styles textStyles, results []entities.ComparisonResult) string {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		rows = append(rows, []string{
			result.Name,
			versionText(result.Referenced),
			versionText(result.Latest),
			statusText(result),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.muted).
		Headers("Package", "Current", "Latest", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.cell.Bold(true)
			}
			if col != 3 || row < 0 || row >= len(results) {
				return styles.cell
			}
			switch results[row].Status() {
			case entities.StatusOutdated:
				return styles.cell.Foreground(colorWarning)
			case entities.StatusUpToDate:
				return styles.cell.Foreground(colorSuccess)
			case entities.StatusFailed:
				return styles.cell.Foreground(colorError)
			default:
				return styles.cell.Foreground(colorMuted)
			}
		})
	return t.String()
}

func statusText(result entities.ComparisonResult) string {
	status := string(result.Status())
	switch {
	case result.Status() == entities.StatusFailed && result.Err != nil:
		return status + ": " + result.Err.Error()
	case result.Outdated && result.LatestInRange:
		return status + " (in range)"
	}
	return status
}

func versionText(v *entities.Version) string {
	if v == nil {
		return placeholder
	}
	return v.String()
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
