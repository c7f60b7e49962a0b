package output

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"redhour/timesheet"
)

const excelSheetName = "Horas"

type ExcelWriter struct{}

func (w *ExcelWriter) Extension() string { return ".xlsx" }

func (w *ExcelWriter) Write(path string, table *timesheet.Table) error {
	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName(book.GetSheetName(0), excelSheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := book.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := book.SetSheetRow(excelSheetName, "A1", &table.Headers); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	if err := book.SetRowStyle(excelSheetName, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style header row: %w", err)
	}

	for i, record := range table.Records {
		values := table.Row(record)
		cells := make([]any, len(values))
		for col, value := range values {
			cells[col] = cellValue(value)
		}
		anchor, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := book.SetSheetRow(excelSheetName, anchor, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", record.RowNumber, err)
		}
	}

	if err := book.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}
	return nil
}

// cellValue keeps numbers numeric so hours stay summable in the workbook.
func cellValue(raw string) any {
	if number, err := strconv.ParseFloat(raw, 64); err == nil {
		return number
	}
	return raw
}
