package timesheet

import (
	"fmt"
	"strings"

	"redhour/internal/errs"
)

const (
	ColumnDate    = "Fecha"
	ColumnProject = "Proyecto"
	ColumnTicket  = "Ticket_ID"
	ColumnHours   = "Horas"
	ColumnComment = "Comentario"

	ColumnControl       = "Subir?"
	ColumnControlLegacy = "Cargada?"
)

// RequiredColumns lists the data columns every time sheet must carry.
var RequiredColumns = []string{ColumnDate, ColumnProject, ColumnTicket, ColumnHours, ColumnComment}

// ControlColumn is the resolved name of the column that approves rows for upload.
type ControlColumn struct {
	Name   string
	Legacy bool
}

func RequireColumns(table *Table) error {
	missing := make([]string, 0, len(RequiredColumns))
	for _, column := range RequiredColumns {
		if !table.HasColumn(column) {
			missing = append(missing, column)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &errs.SchemaError{
		Missing: missing,
		Message: fmt.Sprintf(
			"the sheet must contain the columns %s (missing: %s)",
			strings.Join(RequiredColumns, ", "),
			strings.Join(missing, ", "),
		),
	}
}

// ResolveControlColumn picks "Subir?" and falls back to the older "Cargada?".
// Sheets still using "Cargada?" should be migrated; the fallback is only kept
// for compatibility.
func ResolveControlColumn(table *Table) (ControlColumn, error) {
	if table.HasColumn(ColumnControl) {
		return ControlColumn{Name: ColumnControl}, nil
	}
	if table.HasColumn(ColumnControlLegacy) {
		return ControlColumn{Name: ColumnControlLegacy, Legacy: true}, nil
	}
	return ControlColumn{}, &errs.SchemaError{
		Missing: []string{ColumnControl},
		Message: fmt.Sprintf("a %q or %q column is required to choose which rows to upload", ColumnControl, ColumnControlLegacy),
	}
}
