package exporters

import "github.com/mrlokans/bookstack/internal/integrity"

type ReportExporter interface {
	Export(userID uint, report integrity.Report) (ExportResult, error)
}

type ExportResult struct {
	Path     string `json:"path"`
	Findings int    `json:"findings"`
	Groups   int    `json:"groups"`
}
