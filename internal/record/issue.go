// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package record

// Severity classifies a ValidationIssue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ValidationIssue describes one problem found while normalizing a row.
// Rows are never dropped because of issues; the issue carries enough
// context (sheet, row, column) for a human to fix the source spreadsheet.
type ValidationIssue struct {
	Sheet    string   `json:"sheet"`
	Row      int      `json:"row"`
	Column   string   `json:"column,omitempty"`
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule"`
	Message  string   `json:"message"`
	Original string   `json:"original,omitempty"`
	Fixed    string   `json:"fixed,omitempty"`
}

// Summary aggregates counts over one import batch.
type Summary struct {
	TotalSheets  int     `json:"total_sheets"`
	TotalRows    int     `json:"total_rows"`
	ValidRows    int     `json:"valid_rows"`
	ErrorCount   int     `json:"error_count"`
	WarningCount int     `json:"warning_count"`
	SuccessRate  float64 `json:"success_rate"`
}

// ValidationReport is the output of normalizing one uploaded file.
type ValidationReport struct {
	BatchID    string            `json:"batch_id"`
	SourceFile string            `json:"source_file,omitempty"`
	Cases      []CaseRecord      `json:"canonical_cases"`
	Witnesses  []WitnessRecord   `json:"canonical_witnesses"`
	Issues     []ValidationIssue `json:"issues"`
	Summary    Summary           `json:"summary"`

	// Padroes is the batch-level pattern summary; nil when detection
	// was not run.
	Padroes *PadroesAgregados `json:"padroes,omitempty"`
}

// CountIssues recomputes the summary error/warning counters from the
// issue list and refreshes the success rate.
func (r *ValidationReport) CountIssues() {
	r.Summary.ErrorCount = 0
	r.Summary.WarningCount = 0
	for _, issue := range r.Issues {
		switch issue.Severity {
		case SeverityError:
			r.Summary.ErrorCount++
		case SeverityWarning:
			r.Summary.WarningCount++
		}
	}
	if r.Summary.TotalRows > 0 {
		r.Summary.SuccessRate = float64(r.Summary.ValidRows) / float64(r.Summary.TotalRows)
	}
}
