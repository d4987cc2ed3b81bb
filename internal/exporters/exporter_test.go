package exporters

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookstack/internal/entities"
	"github.com/mrlokans/bookstack/internal/integrity"
)

func sampleReport() integrity.Report {
	library := []entities.Book{
		{ID: 1, Title: "Clean Code"},
		{ID: 2, Title: "clean code"},
		{ID: 3, Title: "Cosmos"},
		{ID: 4, Title: "Dom Casmurro"},
	}
	findings := []integrity.Finding{
		{BookID: 3, Title: "Cosmos", IssueType: integrity.IssueClass, Value: "Ciências", Reason: `class "Ciências" does not exist`},
		{BookID: 1, Title: "Clean Code", IssueType: integrity.IssueDuplicate, DuplicateOf: 2, Reason: `duplicate of "clean code" (id 2)`},
	}
	return integrity.NewReport(library, findings)
}

func TestGenerateMarkdown(t *testing.T) {
	md := GenerateMarkdown(sampleReport(), time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC))

	assert.Contains(t, md, "content_type: integrity_report\n")
	assert.Contains(t, md, "created_at: 2025-03-07\n")
	assert.Contains(t, md, "health_percentage: 50.0\n")
	assert.Contains(t, md, "| class | 1 |\n")
	assert.Contains(t, md, "| duplicate | 1 |\n")
	assert.Contains(t, md, "2 of 4 books affected.")
	assert.Contains(t, md, "- [ ] Cosmos (id 3)\n")
	assert.Contains(t, md, "### duplicate of \"clean code\" (id 2) (1)\n")
}

func TestGenerateMarkdown_NoFindings(t *testing.T) {
	report := integrity.NewReport([]entities.Book{{ID: 1, Title: "Sapiens"}}, nil)
	md := GenerateMarkdown(report, time.Now())

	assert.Contains(t, md, "No problems found.")
	assert.NotContains(t, md, "## Findings")
}

func TestGenerateMarkdown_EscapesTableCharacters(t *testing.T) {
	report := integrity.NewReport(
		[]entities.Book{{ID: 9, Title: "A | B [draft]"}},
		[]integrity.Finding{{BookID: 9, Title: "A | B [draft]", IssueType: integrity.IssueAvailability, Reason: `availability "" is not a valid option`}},
	)
	md := GenerateMarkdown(report, time.Now())
	assert.Contains(t, md, `- [ ] A \| B \[draft\] (id 9)`)
}

func TestMarkdownExporter_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "notes")
	exporter := NewMarkdownExporter(dir)
	exporter.Now = func() time.Time { return time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC) }

	var _ ReportExporter = exporter
	res, err := exporter.Export(1, sampleReport())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "integrity-user1-2025-03-07.md"), res.Path)
	assert.Equal(t, 2, res.Findings)
	assert.Equal(t, 2, res.Groups)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "content_type: integrity_report")
}
