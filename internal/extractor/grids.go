package extractor

import (
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/insightdelivered/card-statement-parser/internal/tables"
)

// minTableColumns is the narrowest row that still counts as tabular. Single
// cell rows are prose lines, not table rows.
const minTableColumns = 2

// minTableRows is the smallest run of consecutive tabular rows treated as a
// table: a header plus at least one data row.
const minTableRows = 2

// PageGrids finds tabular regions on every page. A region is a maximal run
// of consecutive reconstructed rows that each split into at least two cells;
// runs shorter than a header plus one data row are ignored. Pages come back
// in page order with their regions in top-to-bottom order.
func (d *PDFDocument) PageGrids() ([]tables.PageGrids, error) {
	var out []tables.PageGrids
	err := d.withReader(func(r *pdf.Reader) {
		for i := 1; i <= r.NumPage(); i++ {
			page := r.Page(i)
			if page.V.IsNull() {
				continue
			}
			grids := findGrids(contentRows(page))
			if len(grids) > 0 {
				out = append(out, tables.PageGrids{Page: i, Grids: grids})
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// findGrids splits reconstructed rows into maximal multi-cell runs.
func findGrids(rows [][]string) []tables.Grid {
	var grids []tables.Grid
	var run tables.Grid
	flush := func() {
		if len(run) >= minTableRows {
			grids = append(grids, run)
		}
		run = nil
	}
	for _, cells := range rows {
		if len(cells) >= minTableColumns {
			run = append(run, cells)
		} else {
			flush()
		}
	}
	flush()
	return grids
}

// withReader opens the document, runs fn against the reader, and converts
// library panics into errors.
func (d *PDFDocument) withReader(fn func(r *pdf.Reader)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()
	f, r, openErr := pdf.Open(d.Path)
	if openErr != nil {
		return fmt.Errorf("failed to open PDF %q: %w", d.Path, openErr)
	}
	defer f.Close()
	fn(r)
	return nil
}
