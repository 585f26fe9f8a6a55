package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/insightdelivered/card-statement-parser/internal/models"
)

// CSVWriter writes the transaction tables of a parse result to CSV format.
// Each table is written as its header row followed by its data rows; tables
// are separated by a blank record.
type CSVWriter struct {
	// IncludeHeader adds comment rows with statement metadata and per-table
	// page markers.
	IncludeHeader bool
}

// WriteToFile writes transaction tables to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, result *models.StatementResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, result)
}

// Write writes transaction tables in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, result *models.StatementResult) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	// Write statement metadata as comment rows
	if w.IncludeHeader && result.Extracted != nil {
		ex := result.Extracted
		if ex.CardType != "" {
			writer.Write([]string{"# Card Type", ex.CardType})
		}
		if ex.Last4 != "" {
			writer.Write([]string{"# Card Ending", ex.Last4})
		}
		if ex.StatementPeriod != nil {
			writer.Write([]string{"# Statement Period", ex.StatementPeriod.String()})
		}
		if ex.DueDate != "" {
			writer.Write([]string{"# Due Date", ex.DueDate})
		}
		if ex.TotalBalance != "" {
			writer.Write([]string{"# Total Balance", ex.TotalBalance})
		}
	}

	for i, table := range result.TransactionsTables {
		if i > 0 {
			writer.Write([]string{})
		}
		if w.IncludeHeader {
			writer.Write([]string{"# Page", strconv.Itoa(table.Page)})
		}
		if err := writer.Write(table.Columns); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		for _, rec := range table.Rows {
			row := make([]string, len(table.Columns))
			for j, col := range table.Columns {
				row[j] = rec[col]
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	return nil
}
