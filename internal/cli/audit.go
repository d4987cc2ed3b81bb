package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/mrlokans/bookstack/internal/audit"
	"github.com/mrlokans/bookstack/internal/config"
	"github.com/mrlokans/bookstack/internal/exporters"
	"github.com/mrlokans/bookstack/internal/integrity"
)

// AuditCommand runs the integrity audit of one library and prints the
// report.
type AuditCommand struct {
	DatabasePath string
	UserID       uint
	Workers      int
	JSON         bool
	ArchiveDir   string
	MarkdownDir  string
	Out          io.Writer
}

func NewAuditCommand() *AuditCommand {
	return &AuditCommand{}
}

func (cmd *AuditCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("audit", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.UintVar(&cmd.UserID, "user", 1, "Library owner to audit")
	fs.IntVar(&cmd.Workers, "workers", 1, "Parallel workers for the duplicate scan")
	fs.BoolVar(&cmd.JSON, "json", false, "Print the full report as JSON")
	fs.StringVar(&cmd.ArchiveDir, "archive", "", "Also save the report to this directory")
	fs.StringVar(&cmd.MarkdownDir, "markdown", "", "Also write the report as a markdown checklist to this directory")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s audit [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Check a library for metadata inconsistencies and likely duplicates.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s audit -user 1\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s audit -json -workers 4 > report.json\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.UserID == 0 {
		fs.Usage()
		return fmt.Errorf("user is required")
	}
	return nil
}

func (cmd *AuditCommand) Run(ctx context.Context) error {
	s, err := openSession(cmd.DatabasePath, cmd.Workers)
	if err != nil {
		return err
	}
	defer s.Close()

	report, err := s.library.Audit(ctx, cmd.UserID)
	res := audit.IntegrityResult{
		TotalBooks:       report.Summary.TotalBooks,
		Findings:         report.Summary.TotalFindings,
		AffectedBooks:    report.Summary.AffectedBooks,
		HealthPercentage: report.Summary.HealthPercentage,
	}
	if err == nil && cmd.ArchiveDir != "" {
		res.ReportFile, err = audit.NewArchive(cmd.ArchiveDir).Save(report)
	}
	s.events.LogIntegrityAudit(cmd.UserID, "cli_audit", res, err)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	var notePath string
	if cmd.MarkdownDir != "" {
		res, err := exporters.NewMarkdownExporter(cmd.MarkdownDir).Export(cmd.UserID, report)
		if err != nil {
			return fmt.Errorf("failed to export report: %w", err)
		}
		notePath = res.Path
	}

	out := output(cmd.Out)
	if cmd.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(out, report)
	if res.ReportFile != "" {
		fmt.Fprintf(out, "\nReport saved as %s\n", res.ReportFile)
	}
	if notePath != "" {
		fmt.Fprintf(out, "Checklist written to %s\n", notePath)
	}
	return nil
}

func printReport(out io.Writer, report integrity.Report) {
	sum := report.Summary
	fmt.Fprintf(out, "=== Integrity Report ===\n")
	fmt.Fprintf(out, "Books: %d\n", sum.TotalBooks)
	fmt.Fprintf(out, "Findings: %d (%d books affected)\n", sum.TotalFindings, sum.AffectedBooks)
	fmt.Fprintf(out, "Health: %.1f%%\n", sum.HealthPercentage)
	for _, t := range []integrity.IssueType{
		integrity.IssueClass, integrity.IssueCategory, integrity.IssueAvailability, integrity.IssueDuplicate,
	} {
		fmt.Fprintf(out, "  %-14s %d\n", t, sum.ByType[t])
	}

	if len(report.Groups) == 0 {
		fmt.Fprintf(out, "\nNo problems found\n")
		return
	}
	fmt.Fprintf(out, "\n=== By Reason ===\n")
	for _, g := range report.Groups {
		fmt.Fprintf(out, "%3d  %s\n", g.Count, g.Reason)
	}
}
