package models

import "encoding/json"

// StatementPeriod is the date range a billing statement covers.
// Start and End are canonical YYYY-MM-DD strings (or the raw substring when
// date normalization fell back). Both are always set together.
//
// Raw holds the whole matched span when the period could not be split into
// start/end dates. A period with Raw set marshals as a bare string, matching
// the degraded-extraction wire format.
type StatementPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Raw   string `json:"-"`
}

// MarshalJSON emits {"start","end"} for a resolved period and a plain JSON
// string for a degraded one.
func (p StatementPeriod) MarshalJSON() ([]byte, error) {
	if p.Raw != "" {
		return json.Marshal(p.Raw)
	}
	type resolved struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	return json.Marshal(resolved{Start: p.Start, End: p.End})
}

// String renders the period for human-readable output.
func (p StatementPeriod) String() string {
	if p.Raw != "" {
		return p.Raw
	}
	return p.Start + " to " + p.End
}

// ExtractedFields holds the structured fields recognized in statement text.
// A field that was not found is left at its zero value and omitted from JSON;
// absence is never signalled with an empty-string or null placeholder.
// Confidence carries one entry per present field, keyed by the JSON field name.
type ExtractedFields struct {
	CardType        string             `json:"card_type,omitempty"`
	Last4           string             `json:"last4,omitempty"`
	StatementPeriod *StatementPeriod   `json:"statement_period,omitempty"`
	DueDate         string             `json:"due_date,omitempty"`
	TotalBalance    string             `json:"total_balance,omitempty"`
	Confidence      map[string]float64 `json:"confidence"`
}

// TableRecord maps a column label to the cell text for one table row.
// Labels come from the table's header row; columns with no header cell get a
// synthesized positional label ("col0", "col1", ...).
type TableRecord map[string]string

// PageTable is one recognized table: the page it was found on and its rows.
// Columns preserves the header order for writers that need it (JSON output
// carries only page and rows).
type PageTable struct {
	Page    int           `json:"page"`
	Rows    []TableRecord `json:"rows"`
	Columns []string      `json:"-"`
}

// StatementResult is the complete output of one parse invocation.
// It is built once by the assembler and never mutated afterwards.
type StatementResult struct {
	SourceFile         string           `json:"source_file"`
	Extracted          *ExtractedFields `json:"extracted"`
	TransactionsTables []PageTable      `json:"transactions_tables"`
	RawTextSnippet     string           `json:"raw_text_snippet"`
}
