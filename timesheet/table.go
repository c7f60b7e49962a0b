package timesheet

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"redhour/internal/errs"
	"redhour/internal/timeutil"
	"redhour/period"
	"redhour/worklog"
)

type LoadResult struct {
	Table   *Table
	Dropped int
}

// Load decodes a time sheet and drops every row without a date, which also
// discards summary blocks appended below the data.
func Load(path string) (*LoadResult, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errs.NotFound(path)
		}
		return nil, &errs.FormatError{Path: path, Err: err}
	}

	reader, err := ReaderForPath(path)
	if err != nil {
		return nil, &errs.FormatError{Path: path, Err: err}
	}
	table, err := reader.Read(path)
	if err != nil {
		return nil, &errs.FormatError{Path: path, Err: err}
	}
	if !table.HasColumn(ColumnDate) {
		return nil, &errs.FormatError{Path: path, Err: fmt.Errorf("column %q not found after conversion", ColumnDate)}
	}

	kept := make([]Record, 0, len(table.Records))
	for _, record := range table.Records {
		if record.Get(ColumnDate) == "" {
			continue
		}
		kept = append(kept, record)
	}

	dropped := len(table.Records) - len(kept)
	table.Records = kept
	return &LoadResult{Table: table, Dropped: dropped}, nil
}

// NormalizeDates rewrites the date cell of every record from a bare day to YYYY-MM-DD.
func (t *Table) NormalizeDates(ctx period.Context) {
	for _, record := range t.Records {
		record.Set(ColumnDate, timeutil.ExpandDay(ctx, record.Values[normalizeHeader(ColumnDate)]))
	}
}

// Select keeps the records whose control cell approves them, in source order.
func Select(table *Table, control ControlColumn) []Record {
	selected := make([]Record, 0, len(table.Records))
	for _, record := range table.Records {
		if worklog.ParseControl(record.Get(control.Name)) == worklog.ControlApproved {
			selected = append(selected, record)
		}
	}
	return selected
}

// ParseEntry converts a record into a typed entry. controlColumn may be empty
// when the source has no control column.
func ParseEntry(record Record, controlColumn string) (worklog.Entry, error) {
	date := record.Get(ColumnDate)
	if _, err := timeutil.ParseDate(date); err != nil {
		return worklog.Entry{}, fmt.Errorf("row %d: %w", record.RowNumber, err)
	}

	ticket, err := parseTicketID(record.Get(ColumnTicket))
	if err != nil {
		return worklog.Entry{}, fmt.Errorf("row %d: %w", record.RowNumber, err)
	}

	hours, err := parseHours(record.Get(ColumnHours))
	if err != nil {
		return worklog.Entry{}, fmt.Errorf("row %d: %w", record.RowNumber, err)
	}

	control := worklog.ControlApproved
	if controlColumn != "" {
		control = worklog.ParseControl(record.Get(controlColumn))
	}

	return worklog.Entry{
		RowNumber: record.RowNumber,
		Date:      date,
		Project:   record.Get(ColumnProject),
		TicketID:  ticket,
		Hours:     hours,
		Comment:   record.Get(ColumnComment),
		Control:   control,
	}, nil
}

func parseTicketID(raw string) (int64, error) {
	cleaned := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "#"))
	if cleaned == "" {
		return 0, fmt.Errorf("missing ticket id")
	}
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("parse ticket id %q: %w", raw, err)
	}
	if !value.Equal(value.Truncate(0)) || value.Sign() <= 0 {
		return 0, fmt.Errorf("ticket id %q must be a positive integer", raw)
	}
	return value.IntPart(), nil
}

func parseHours(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("missing hours")
	}
	if strings.Contains(cleaned, ",") {
		if strings.Contains(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	hours, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse hours %q: %w", raw, err)
	}
	if hours.IsNegative() {
		return decimal.Zero, fmt.Errorf("hours must not be negative")
	}
	return hours, nil
}
