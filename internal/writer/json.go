package writer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/insightdelivered/card-statement-parser/internal/models"
)

// JSONWriter writes a parse result as JSON.
type JSONWriter struct {
	// Indent enables pretty-printing with two-space indentation.
	Indent bool
}

// WriteToFile writes the result as JSON to the file at path.
func (w *JSONWriter) WriteToFile(path string, result *models.StatementResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, result)
}

// Write writes the result as JSON to out.
func (w *JSONWriter) Write(out io.Writer, result *models.StatementResult) error {
	enc := json.NewEncoder(out)
	if w.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
