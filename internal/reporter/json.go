package reporter

import (
	"encoding/json"
	"io"

	"github.com/modaudit/modaudit/internal/models"
)

// JSONReporter generates machine-readable JSON reports.
type JSONReporter struct {
	writer io.Writer
	pretty bool
}

// NewJSONReporter creates a JSON reporter.
func NewJSONReporter(writer io.Writer, pretty bool) *JSONReporter {
	return &JSONReporter{writer: writer, pretty: pretty}
}

// Generate writes the full report as JSON.
func (r *JSONReporter) Generate(report *models.Report) error {
	var data []byte
	var err error

	if r.pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return err
	}

	if _, err := r.writer.Write(data); err != nil {
		return err
	}
	_, err = r.writer.Write([]byte("\n"))
	return err
}

// GenerateSummaryOnly writes a compact summary without per-file issues,
// for CI logs that only gate on the counters.
func (r *JSONReporter) GenerateSummaryOnly(report *models.Report) error {
	summary := struct {
		Summary              models.Summary `json:"summary"`
		HasIncompatibilities bool           `json:"has_incompatibilities"`
	}{
		Summary:              report.Summary,
		HasIncompatibilities: report.HasIncompatibilities,
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	if _, err := r.writer.Write(data); err != nil {
		return err
	}
	_, err = r.writer.Write([]byte("\n"))
	return err
}
