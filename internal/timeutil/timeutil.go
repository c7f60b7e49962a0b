package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"redhour/period"
)

const DateLayout = "2006-01-02"

var spanishMonths = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// ExpandDay turns a bare day-of-month cell into YYYY-MM-DD using ctx.
// Empty or unparsable values are returned unchanged so the row stays invalid
// downstream.
func ExpandDay(ctx period.Context, raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return raw
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(cleaned, ",", "."), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return raw
	}

	day := int(value)
	return fmt.Sprintf("%s-%s-%02d", ctx.Year, ctx.Month, day)
}

func ParseDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return parsed, nil
}

// MonthName returns the capitalized Spanish month name, or the number itself
// when out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%02d", month)
	}
	return spanishMonths[month-1]
}
