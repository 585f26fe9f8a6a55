// Package statement orchestrates a full parse of one statement document:
// text acquisition (with optional OCR fallback), field extraction, and
// transaction table normalization, assembled into a single result.
package statement

import (
	"fmt"
	"strings"

	"github.com/insightdelivered/card-statement-parser/internal/fields"
	"github.com/insightdelivered/card-statement-parser/internal/models"
	"github.com/insightdelivered/card-statement-parser/internal/tables"
)

// snippetLen is how much of the raw text the result carries for debugging.
const snippetLen = 2000

// TextSource yields the per-page text of a document.
type TextSource interface {
	PageTexts() ([]string, error)
}

// TableSource yields the tabular regions of a document.
type TableSource interface {
	PageGrids() ([]tables.PageGrids, error)
}

// OCREngine recovers per-page text from a document on disk by OCR.
type OCREngine interface {
	PageTexts(path string) ([]string, error)
}

// Document is one statement to parse. Text and Tables usually both point at
// the same PDF reader; they are separate so tests can fake either side.
type Document struct {
	// SourceFile is the name reported in the result, typically the input
	// path or the uploaded filename.
	SourceFile string
	// Path is the on-disk location handed to OCR when text extraction
	// comes back empty.
	Path   string
	Text   TextSource
	Tables TableSource
}

// Assembler runs the parse pipeline. OCR is all-or-nothing: it engages only
// when the embedded text layer yields nothing at all, and then replaces the
// text for every page. A partially-readable document never mixes embedded
// and OCR text.
type Assembler struct {
	// OCR is consulted when extraction yields no text. nil disables the
	// fallback entirely: an unreadable document then parses as empty
	// rather than failing.
	OCR OCREngine
}

// Parse extracts text and tables from doc and assembles the result.
//
// The result always has a non-nil Extracted (with a non-nil Confidence map)
// and a non-nil TransactionsTables slice, so it marshals to the full JSON
// shape even for an empty document. When OCR is configured but its tools
// are missing, an unreadable document is an error, not a silent empty
// result.
func (a *Assembler) Parse(doc Document) (*models.StatementResult, error) {
	pages, err := doc.Text.PageTexts()
	if err != nil {
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}

	text := strings.TrimSpace(strings.Join(pages, "\n"))
	if text == "" && a.OCR != nil {
		ocrPages, err := a.OCR.PageTexts(doc.Path)
		if err != nil {
			return nil, fmt.Errorf("OCR fallback failed: %w", err)
		}
		pages = ocrPages
		text = strings.TrimSpace(strings.Join(pages, "\n"))
	}

	result := &models.StatementResult{
		SourceFile:         doc.SourceFile,
		Extracted:          fields.Extract(text),
		TransactionsTables: []models.PageTable{},
		RawTextSnippet:     snippet(text),
	}

	// Tables come from the document layout, never from OCR text: OCR output
	// has no positional data to rebuild columns from.
	if doc.Tables != nil {
		grids, err := doc.Tables.PageGrids()
		if err != nil {
			return nil, fmt.Errorf("table detection failed: %w", err)
		}
		if normalized := tables.Normalize(grids); normalized != nil {
			result.TransactionsTables = normalized
		}
	}

	return result, nil
}

// snippet truncates by rune so a multi-byte character is never split.
func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetLen {
		return text
	}
	return string(runes[:snippetLen])
}
