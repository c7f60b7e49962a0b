package timesheet

import (
	"fmt"
	"strings"

	"github.com/knieriem/odf/ods"
)

// ODSReader decodes the first table of an OpenDocument spreadsheet.
type ODSReader struct{}

func (r *ODSReader) Read(path string) (*Table, error) {
	file, err := ods.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ods file %s: %w", path, err)
	}
	defer file.Close()

	var doc ods.Doc
	if err := file.ParseContent(&doc); err != nil {
		return nil, fmt.Errorf("parse ods content %s: %w", path, err)
	}
	if len(doc.Table) == 0 {
		return nil, fmt.Errorf("ods file %s has no sheets", path)
	}

	return tableFromSheet(path, doc.Table[0].Strings())
}

// tableFromSheet turns the cell grid of a sheet into a table. Blank rows are
// skipped but still counted, so row numbers match the spreadsheet.
func tableFromSheet(path string, grid [][]string) (*Table, error) {
	header := -1
	for i, cells := range grid {
		if !blankRow(cells) {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, fmt.Errorf("ods file %s has an empty first sheet", path)
	}

	var (
		rows       [][]string
		rowNumbers []int
	)
	for i := header + 1; i < len(grid); i++ {
		if blankRow(grid[i]) {
			continue
		}
		rows = append(rows, grid[i])
		rowNumbers = append(rowNumbers, i+1)
	}
	return newTable(grid[header], rows, rowNumbers), nil
}

func blankRow(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
