// Package tables turns recognized tabular regions into labeled records.
package tables

import (
	"strconv"
	"strings"

	"github.com/insightdelivered/card-statement-parser/internal/models"
)

// Grid is one tabular region as a 2-D grid of cell text. Row 0 is the
// header row; the remaining rows are data.
type Grid [][]string

// PageGrids holds the grids discovered on one page, in discovery order.
type PageGrids struct {
	Page  int
	Grids []Grid
}

// Normalize converts grids into per-table record lists. Each record maps a
// column label to its cell text. The column count for a row is
// max(header length, row length): rows wider than the header are fully
// represented under synthesized labels, and short rows pad with "".
// Tables that produce no records are dropped entirely. Output order follows
// page order, then within-page discovery order.
func Normalize(pages []PageGrids) []models.PageTable {
	var out []models.PageTable
	for _, pg := range pages {
		for _, grid := range pg.Grids {
			if t, ok := normalizeGrid(pg.Page, grid); ok {
				out = append(out, t)
			}
		}
	}
	return out
}

func normalizeGrid(page int, grid Grid) (models.PageTable, bool) {
	if len(grid) == 0 {
		return models.PageTable{}, false
	}
	header := grid[0]

	width := len(header)
	for _, row := range grid[1:] {
		if len(row) > width {
			width = len(row)
		}
	}

	columns := make([]string, width)
	for i := range columns {
		columns[i] = columnLabel(header, i)
	}

	var rows []models.TableRecord
	for _, row := range grid[1:] {
		rec := make(models.TableRecord, width)
		for i, label := range columns {
			if i < len(row) {
				rec[label] = row[i]
			} else {
				rec[label] = ""
			}
		}
		rows = append(rows, rec)
	}

	if len(rows) == 0 {
		return models.PageTable{}, false
	}
	return models.PageTable{Page: page, Rows: rows, Columns: columns}, true
}

// columnLabel returns the header cell for column i, or a positional label
// when the header is short or the cell is blank.
func columnLabel(header []string, i int) string {
	if i < len(header) && strings.TrimSpace(header[i]) != "" {
		return header[i]
	}
	return "col" + strconv.Itoa(i)
}
