// Package extractor reads statement PDFs: per-page text for the field
// extractor and per-page tabular regions for the table normalizer.
package extractor

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// PDFDocument is a statement PDF on disk. It satisfies both the text-source
// and table-source roles of the assembler. Pages that cannot be read yield
// empty results rather than errors; only a document that cannot be opened at
// all is an error.
type PDFDocument struct {
	Path string
}

// PageTexts returns the text of every page, in page order. A page whose text
// cannot be extracted contributes an empty string, so page numbering is
// preserved. When the document as a whole yields no readable text (scanned
// or image-based PDFs often decode to font garbage), every page is reported
// empty so the caller's OCR fallback policy can engage.
func (d *PDFDocument) PageTexts() ([]string, error) {
	pages, err := d.extractTexts()
	if err != nil {
		return nil, err
	}
	if !isReadableText(pages) {
		return make([]string, len(pages)), nil
	}
	return pages, nil
}

func (d *PDFDocument) extractTexts() ([]string, error) {
	var pages []string
	err := d.withReader(func(r *pdf.Reader) {
		numPages := r.NumPage()
		pages = make([]string, 0, numPages)
		for i := 1; i <= numPages; i++ {
			pages = append(pages, extractPageText(r, i))
		}
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// extractPageText tries row-based extraction first (best layout
// preservation), then coordinate-based row reconstruction, then the
// library's plain-text path. Returns "" when nothing works for this page.
func extractPageText(r *pdf.Reader, pageNum int) string {
	page := r.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}

	if text := textByRow(page); text != "" {
		return text
	}
	if text := textByContent(page); text != "" {
		return text
	}
	return textPlain(page)
}

func textByRow(page pdf.Page) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}
	var lines []string
	for _, row := range rows {
		var parts []string
		for _, word := range row.Content {
			parts = append(parts, word.S)
		}
		line := strings.TrimSpace(strings.Join(parts, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// textByContent rebuilds page text from raw positioned text objects.
func textByContent(page pdf.Page) string {
	var lines []string
	for _, cells := range contentRows(page) {
		line := strings.TrimSpace(strings.Join(cells, "  "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// textPlain uses the library's own text assembly with the page's font map.
// Loses layout, but decodes some encodings the other methods miss.
func textPlain(page pdf.Page) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	fonts := make(map[string]*pdf.Font)
	for _, name := range page.Fonts() {
		f := page.Font(name)
		fonts[name] = &f
	}
	s, err := page.GetPlainText(fonts)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// columnGap is the X distance between adjacent text items that separates
// table columns, in PDF points.
const columnGap = 15.0

// contentRows reconstructs the rows of a page from positioned text items:
// items are grouped into rows by rounded Y coordinate and sorted by X.
// Within a row, items closer than columnGap merge into one cell; a larger
// gap starts a new cell. Rows come back in reading order, each as its
// ordered cells.
func contentRows(page pdf.Page) (rows [][]string) {
	defer func() {
		if r := recover(); r != nil {
			rows = nil
		}
	}()

	content := page.Content()
	if len(content.Text) == 0 {
		return nil
	}

	type textItem struct {
		x float64
		s string
	}
	rowMap := make(map[int][]textItem)
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		yKey := int(math.Round(t.Y))
		rowMap[yKey] = append(rowMap[yKey], textItem{x: t.X, s: t.S})
	}

	// PDF Y grows bottom-to-top, so sort descending for reading order.
	yKeys := make([]int, 0, len(rowMap))
	for y := range rowMap {
		yKeys = append(yKeys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

	for _, y := range yKeys {
		items := rowMap[y]
		sort.Slice(items, func(a, b int) bool {
			return items[a].x < items[b].x
		})

		var cells []string
		var cell strings.Builder
		var prevX float64
		for j, item := range items {
			if j > 0 && item.x-prevX > columnGap {
				cells = append(cells, strings.TrimSpace(cell.String()))
				cell.Reset()
			}
			if cell.Len() > 0 {
				cell.WriteString(" ")
			}
			cell.WriteString(item.s)
			prevX = item.x
		}
		if s := strings.TrimSpace(cell.String()); s != "" {
			cells = append(cells, s)
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}

// textQuality returns the ratio of basic ASCII readable characters to total
// characters. A strict ASCII check is used on purpose: unicode.IsLetter
// matches the accented garbage produced by identity-encoded fonts.
func textQuality(pages []string) float64 {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
				strings.ContainsRune(`.,-/:;()'"$%&@#!?+=*`, r) {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

// commonWords that appear in virtually all card statements. Extracted text
// containing none of these is likely garbage.
var commonWords = []string{
	"account", "balance", "date", "payment", "statement", "card",
	"total", "amount", "credit", "due", "transaction", "period",
	"minimum", "purchase", "interest", "number", "page",
}

func containsCommonWords(pages []string) bool {
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range commonWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// isReadableText checks that pages contain enough text, that it is actually
// readable rather than binary garbage, and that it contains at least one
// word a statement would plausibly use.
func isReadableText(pages []string) bool {
	if totalTextLen(pages) <= 50 {
		return false
	}
	if textQuality(pages) <= 0.6 {
		return false
	}
	return containsCommonWords(pages)
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}
