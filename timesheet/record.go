package timesheet

import (
	"strings"
)

type Record struct {
	RowNumber int
	Values    map[string]string
}

func (r Record) Get(keys ...string) string {
	for _, key := range keys {
		normalized := normalizeHeader(key)
		if value, ok := r.Values[normalized]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func (r Record) Set(key, value string) {
	r.Values[normalizeHeader(key)] = value
}

// Table is a decoded sheet: original header labels plus one record per data row.
type Table struct {
	Headers []string
	Records []Record
}

func (t *Table) HasColumn(name string) bool {
	normalized := normalizeHeader(name)
	for _, header := range t.Headers {
		if normalizeHeader(header) == normalized {
			return true
		}
	}
	return false
}

// Row returns the record values in header order, ready to be written back out.
func (t *Table) Row(record Record) []string {
	row := make([]string, len(t.Headers))
	for i, header := range t.Headers {
		row[i] = record.Values[normalizeHeader(header)]
	}
	return row
}

// NewTable builds a table from in-memory rows. Row numbers follow the sheet
// layout, so the first data row is row 2.
func NewTable(headers []string, rows [][]string) *Table {
	numbers := make([]int, len(rows))
	for i := range rows {
		numbers[i] = i + 2
	}
	return newTable(headers, rows, numbers)
}

func newTable(headers []string, rows [][]string, rowNumbers []int) *Table {
	cleaned := make([]string, len(headers))
	normalizedHeaders := make([]string, len(headers))
	for i, header := range headers {
		cleaned[i] = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
		normalizedHeaders[i] = normalizeHeader(cleaned[i])
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		values := make(map[string]string, len(normalizedHeaders))
		for col := range normalizedHeaders {
			if normalizedHeaders[col] == "" {
				continue
			}
			if col < len(row) {
				values[normalizedHeaders[col]] = row[col]
			} else {
				values[normalizedHeaders[col]] = ""
			}
		}
		records = append(records, Record{RowNumber: rowNumbers[i], Values: values})
	}

	return &Table{Headers: cleaned, Records: records}
}

func normalizeHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(strings.TrimPrefix(input, "\ufeff")))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}
