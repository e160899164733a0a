// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"github.com/transfer-desk/backend/internal/domain/balance"
)

// ReportFormat selects how an export is rendered.
type ReportFormat string

const (
	ReportFormatText     ReportFormat = "text"
	ReportFormatMarkdown ReportFormat = "markdown"
	ReportFormatPNG      ReportFormat = "png"
)

// IsValid reports whether the format is supported.
func (f ReportFormat) IsValid() bool {
	return f == ReportFormatText || f == ReportFormatMarkdown || f == ReportFormatPNG
}

// Document is a rendered export ready to be downloaded.
type Document struct {
	ContentType string
	Extension   string
	Body        []byte
}

// ReportFormatter renders a period report.
type ReportFormatter interface {
	// Render renders report in the requested format.
	Render(report *balance.PeriodReport, format ReportFormat) (*Document, error)
}
