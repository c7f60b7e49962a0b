package worklog

import (
	"strings"

	"github.com/shopspring/decimal"
)

type ControlFlag string

const (
	ControlPending  ControlFlag = "pending"
	ControlApproved ControlFlag = "approved"
)

// Entry is one time-tracking row once its cells have been parsed.
type Entry struct {
	RowNumber int
	Date      string // YYYY-MM-DD
	Project   string
	TicketID  int64
	Hours     decimal.Decimal
	Comment   string
	Control   ControlFlag
}

func (e Entry) Approved() bool {
	return e.Control == ControlApproved
}

// ParseControl maps a yes/no control cell to a flag. Only SI/SÍ (any case,
// surrounding blanks ignored) approve a row.
func ParseControl(raw string) ControlFlag {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "SI", "SÍ":
		return ControlApproved
	default:
		return ControlPending
	}
}
