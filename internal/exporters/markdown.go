package exporters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrlokans/bookstack/internal/integrity"
)

// MarkdownExporter writes integrity reports as markdown notes, one file per
// user and day.
type MarkdownExporter struct {
	ExportDir string
	Now       func() time.Time
}

func NewMarkdownExporter(exportDir string) *MarkdownExporter {
	return &MarkdownExporter{ExportDir: exportDir, Now: time.Now}
}

func (exporter *MarkdownExporter) Export(userID uint, report integrity.Report) (ExportResult, error) {
	if err := os.MkdirAll(exporter.ExportDir, 0755); err != nil {
		return ExportResult{}, fmt.Errorf("failed to create export directory: %w", err)
	}

	now := exporter.Now()
	outputPath := filepath.Join(exporter.ExportDir,
		fmt.Sprintf("integrity-user%d-%s.md", userID, now.Format("2006-01-02")))

	if err := os.WriteFile(outputPath, []byte(GenerateMarkdown(report, now)), 0644); err != nil {
		return ExportResult{}, err
	}
	return ExportResult{
		Path:     outputPath,
		Findings: len(report.Findings),
		Groups:   len(report.Groups),
	}, nil
}

// GenerateMarkdown renders a report with a front matter header, the summary
// and a checklist of findings grouped by reason.
func GenerateMarkdown(report integrity.Report, generatedAt time.Time) string {
	var builder strings.Builder
	sum := report.Summary

	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: integrity_report\n")
	fmt.Fprintf(&builder, "created_at: %s\n", generatedAt.Format("2006-01-02"))
	fmt.Fprintf(&builder, "total_books: %d\n", sum.TotalBooks)
	fmt.Fprintf(&builder, "health_percentage: %.1f\n", sum.HealthPercentage)
	fmt.Fprintf(&builder, "tags: library, integrity\n")
	fmt.Fprintf(&builder, "---\n\n")

	fmt.Fprintf(&builder, "## Summary\n\n")
	fmt.Fprintf(&builder, "| Check | Findings |\n|---|---|\n")
	for _, t := range []integrity.IssueType{
		integrity.IssueClass, integrity.IssueCategory, integrity.IssueAvailability, integrity.IssueDuplicate,
	} {
		fmt.Fprintf(&builder, "| %s | %d |\n", t, sum.ByType[t])
	}
	fmt.Fprintf(&builder, "\n%d of %d books affected.\n\n", sum.AffectedBooks, sum.TotalBooks)

	if len(report.Groups) == 0 {
		fmt.Fprintf(&builder, "No problems found.\n")
		return builder.String()
	}

	titles := make(map[uint]string, len(report.Findings))
	for _, f := range report.Findings {
		titles[f.BookID] = f.Title
	}

	fmt.Fprintf(&builder, "## Findings\n\n")
	for _, g := range report.Groups {
		fmt.Fprintf(&builder, "### %s (%d)\n\n", escape(g.Reason), g.Count)
		for _, id := range g.BookIDs {
			fmt.Fprintf(&builder, "- [ ] %s (id %d)\n", escape(titles[id]), id)
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

func escape(s string) string {
	return strings.NewReplacer("|", "\\|", "[", "\\[", "]", "\\]").Replace(s)
}
