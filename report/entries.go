package report

import (
	"errors"

	"redhour/internal/errs"
	"redhour/period"
	"redhour/timesheet"
	"redhour/worklog"
)

// ReadEntries loads the monthly CSV produced by the loader. Every row must
// parse; the control column is optional.
func ReadEntries(path string) ([]worklog.Entry, error) {
	loaded, err := timesheet.Load(path)
	if err != nil {
		return nil, err
	}
	table := loaded.Table

	if err := timesheet.RequireColumns(table); err != nil {
		return nil, err
	}

	control := ""
	if resolved, err := timesheet.ResolveControlColumn(table); err == nil {
		control = resolved.Name
	}

	entries := make([]worklog.Entry, 0, len(table.Records))
	for _, record := range table.Records {
		entry, err := timesheet.ParseEntry(record, control)
		if err != nil {
			return nil, &errs.FormatError{Path: path, Err: err}
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, &errs.FormatError{Path: path, Err: errors.New("no dated rows")}
	}
	return entries, nil
}

// Period returns the reporting month, taken from the first entry's date.
func Period(entries []worklog.Entry) (period.Context, error) {
	if len(entries) == 0 {
		return period.Context{}, errors.New("no entries to derive the reporting month from")
	}
	return period.FromDate(entries[0].Date)
}
