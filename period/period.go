// Package period reads the year/month marker used to expand bare day numbers
// into full dates.
package period

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"redhour/internal/errs"
)

const (
	DefaultMarkerDir  = "Archivos"
	DefaultMarkerName = "ultimo_mes.txt"
)

// Context is the immutable year/month pair for one run.
type Context struct {
	Year  string // four digits
	Month string // two digits, 01-12
}

func (c Context) String() string {
	return c.Year + "-" + c.Month
}

func (c Context) MonthNumber() int {
	n, _ := strconv.Atoi(c.Month)
	return n
}

// Parse reads a marker shaped like YYYY-MM...: the first four characters are
// the year and characters six and seven the month.
func Parse(content string) (Context, error) {
	content = strings.TrimSpace(content)
	if len(content) < 7 {
		return Context{}, &errs.ContextError{Source: "marker", Err: fmt.Errorf("marker %q is too short (expected YYYY-MM)", content)}
	}

	year := content[:4]
	month := content[5:7]
	if !allDigits(year) {
		return Context{}, &errs.ContextError{Source: "marker", Err: fmt.Errorf("invalid year %q", year)}
	}
	if !allDigits(month) {
		return Context{}, &errs.ContextError{Source: "marker", Err: fmt.Errorf("invalid month %q", month)}
	}
	if n, _ := strconv.Atoi(month); n < 1 || n > 12 {
		return Context{}, &errs.ContextError{Source: "marker", Err: fmt.Errorf("month %q out of range", month)}
	}

	return Context{Year: year, Month: month}, nil
}

func LoadFile(path string) (Context, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Context{}, &errs.ContextError{Source: path, Err: errs.NotFound(path)}
		}
		return Context{}, &errs.ContextError{Source: path, Err: err}
	}

	ctx, err := Parse(string(content))
	if err != nil {
		var ctxErr *errs.ContextError
		if errors.As(err, &ctxErr) {
			ctxErr.Source = path
		}
		return Context{}, err
	}
	return ctx, nil
}

// DefaultMarkerPath locates the marker for a spreadsheet stored at
// <root>/<section>/<folder>/<file>: <root>/Archivos/ultimo_mes.txt.
func DefaultMarkerPath(spreadsheetPath string) (string, error) {
	abs, err := filepath.Abs(spreadsheetPath)
	if err != nil {
		return "", fmt.Errorf("resolve spreadsheet path: %w", err)
	}
	root := filepath.Dir(filepath.Dir(filepath.Dir(abs)))
	return filepath.Join(root, DefaultMarkerDir, DefaultMarkerName), nil
}

// FromDate derives a context from an already expanded YYYY-MM-DD date.
func FromDate(date string) (Context, error) {
	return Parse(date)
}

func allDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
