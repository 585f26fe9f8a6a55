package statement

import (
	"errors"
	"strings"
	"testing"

	"github.com/insightdelivered/card-statement-parser/internal/ocr"
	"github.com/insightdelivered/card-statement-parser/internal/tables"
)

type fakeText struct {
	pages []string
	err   error
}

func (f *fakeText) PageTexts() ([]string, error) { return f.pages, f.err }

type fakeTables struct {
	grids []tables.PageGrids
	err   error
}

func (f *fakeTables) PageGrids() ([]tables.PageGrids, error) { return f.grids, f.err }

type fakeOCR struct {
	pages  []string
	err    error
	called bool
}

func (f *fakeOCR) PageTexts(path string) ([]string, error) {
	f.called = true
	return f.pages, f.err
}

func TestParseReadableDocument(t *testing.T) {
	engine := &fakeOCR{pages: []string{"should not be used"}}
	a := &Assembler{OCR: engine}

	doc := Document{
		SourceFile: "statement.pdf",
		Text: &fakeText{pages: []string{
			"VISA Account ending in 1234\nTotal Balance: $100.00",
		}},
		Tables: &fakeTables{grids: []tables.PageGrids{
			{Page: 1, Grids: []tables.Grid{
				{{"Date", "Amount"}, {"01/05/2024", "4.50"}},
			}},
		}},
	}

	result, err := a.Parse(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if engine.called {
		t.Error("OCR must not run when the text layer is readable")
	}
	if result.SourceFile != "statement.pdf" {
		t.Errorf("source file: got %q", result.SourceFile)
	}
	if result.Extracted.CardType != "VISA" {
		t.Errorf("card type: got %q", result.Extracted.CardType)
	}
	if result.Extracted.Last4 != "1234" {
		t.Errorf("last4: got %q", result.Extracted.Last4)
	}
	if len(result.TransactionsTables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(result.TransactionsTables))
	}
	if !strings.Contains(result.RawTextSnippet, "Total Balance") {
		t.Errorf("snippet: got %q", result.RawTextSnippet)
	}
}

func TestParseFallsBackToOCR(t *testing.T) {
	engine := &fakeOCR{pages: []string{"MASTERCARD New Balance: $55.00"}}
	a := &Assembler{OCR: engine}

	doc := Document{
		SourceFile: "scan.pdf",
		Text:       &fakeText{pages: []string{"", "", ""}},
		Tables:     &fakeTables{},
	}

	result, err := a.Parse(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !engine.called {
		t.Fatal("expected OCR fallback to run")
	}
	if result.Extracted.CardType != "MASTERCARD" {
		t.Errorf("card type from OCR text: got %q", result.Extracted.CardType)
	}
	if result.Extracted.TotalBalance != "55.00" {
		t.Errorf("balance from OCR text: got %q", result.Extracted.TotalBalance)
	}
}

func TestParsePartialTextSkipsOCR(t *testing.T) {
	// Any readable text at all means the document text stands as-is.
	engine := &fakeOCR{pages: []string{"OCR text"}}
	a := &Assembler{OCR: engine}

	doc := Document{
		Text:   &fakeText{pages: []string{"", "page two only", ""}},
		Tables: &fakeTables{},
	}

	result, err := a.Parse(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if engine.called {
		t.Error("OCR must not run for partially readable documents")
	}
	if !strings.Contains(result.RawTextSnippet, "page two only") {
		t.Errorf("snippet: got %q", result.RawTextSnippet)
	}
}

func TestParseOCRDisabled(t *testing.T) {
	a := &Assembler{} // no OCR engine

	result, err := a.Parse(Document{
		Text:   &fakeText{pages: []string{""}},
		Tables: &fakeTables{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Extracted == nil {
		t.Fatal("extracted must not be nil")
	}
	if result.Extracted.Confidence == nil {
		t.Error("confidence map must not be nil")
	}
	if result.TransactionsTables == nil {
		t.Error("transactions tables must not be nil")
	}
	if result.RawTextSnippet != "" {
		t.Errorf("snippet: got %q, want empty", result.RawTextSnippet)
	}
}

func TestParseOCRUnavailableIsFatal(t *testing.T) {
	a := &Assembler{OCR: &fakeOCR{err: ocr.ErrUnavailable}}

	_, err := a.Parse(Document{
		Text:   &fakeText{pages: []string{""}},
		Tables: &fakeTables{},
	})
	if err == nil {
		t.Fatal("expected an error when OCR is required but unavailable")
	}
	if !errors.Is(err, ocr.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable in chain, got %v", err)
	}
}

func TestParseTextErrorIsFatal(t *testing.T) {
	a := &Assembler{}

	_, err := a.Parse(Document{
		Text:   &fakeText{err: errors.New("broken document")},
		Tables: &fakeTables{},
	})
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestParseSnippetTruncation(t *testing.T) {
	long := strings.Repeat("statement balance ", 200) // > 2000 chars
	a := &Assembler{}

	result, err := a.Parse(Document{
		Text:   &fakeText{pages: []string{long}},
		Tables: &fakeTables{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.RawTextSnippet) != snippetLen {
		t.Errorf("snippet length: got %d, want %d", len(result.RawTextSnippet), snippetLen)
	}
}

func TestParseTablesFromDocumentEvenWithOCRText(t *testing.T) {
	// Tables always come from the document layout, including on the OCR path.
	a := &Assembler{OCR: &fakeOCR{pages: []string{"DISCOVER card"}}}

	result, err := a.Parse(Document{
		Text: &fakeText{pages: []string{""}},
		Tables: &fakeTables{grids: []tables.PageGrids{
			{Page: 1, Grids: []tables.Grid{
				{{"Date", "Amount"}, {"01/05/2024", "4.50"}},
			}},
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.TransactionsTables) != 1 {
		t.Errorf("expected document tables on OCR path, got %d", len(result.TransactionsTables))
	}
}
