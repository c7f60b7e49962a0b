package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"redhour/timesheet"
)

type CSVWriter struct{}

func (w *CSVWriter) Extension() string { return ".csv" }

func (w *CSVWriter) Write(path string, table *timesheet.Table) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close csv output %s: %w", path, closeErr)
		}
	}()

	return encodeCSV(file, table)
}

// encodeCSV writes the header line and then every record in sheet order.
func encodeCSV(dst io.Writer, table *timesheet.Table) error {
	lines := make([][]string, 0, len(table.Records)+1)
	lines = append(lines, table.Headers)
	for _, record := range table.Records {
		lines = append(lines, table.Row(record))
	}

	if err := csv.NewWriter(dst).WriteAll(lines); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
