package timesheet

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

type CSVReader struct{}

func (r *CSVReader) Read(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file %s: %w", path, err)
	}
	defer file.Close()

	table, err := decodeCSV(file)
	if err != nil {
		return nil, fmt.Errorf("csv file %s: %w", path, err)
	}
	return table, nil
}

// decodeCSV reads a header line followed by data rows. A leading UTF-8 byte
// order mark, as written by spreadsheet exports, is dropped.
func decodeCSV(src io.Reader) (*Table, error) {
	buffered := bufio.NewReader(src)
	if head, err := buffered.Peek(3); err == nil && string(head) == "\xef\xbb\xbf" {
		_, _ = buffered.Discard(3)
	}

	reader := csv.NewReader(buffered)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("no header line")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	// Row numbers follow the sheet: the header is row 1.
	var (
		rows       [][]string
		rowNumbers []int
	)
	for next := 2; ; next++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", next, err)
		}
		rows = append(rows, row)
		rowNumbers = append(rowNumbers, next)
	}

	return newTable(headers, rows, rowNumbers), nil
}
