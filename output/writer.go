package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"redhour/period"
	"redhour/timesheet"
)

// Writer stores a normalized time sheet with its original headers.
type Writer interface {
	Write(path string, table *timesheet.Table) error
	Extension() string
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "", "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// TargetPath places the export next to the monthly folders:
// <grandparent of sheet>/<YYYY>/<dirName>/<sheet name><ext>.
func TargetPath(sheetPath string, ctx period.Context, dirName, ext string) (string, error) {
	abs, err := filepath.Abs(sheetPath)
	if err != nil {
		return "", fmt.Errorf("resolve sheet path %s: %w", sheetPath, err)
	}
	base := filepath.Dir(filepath.Dir(abs))
	name := strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	return filepath.Join(base, ctx.Year, dirName, name+ext), nil
}

// Export writes table to path, creating missing directories.
func Export(writer Writer, path string, table *timesheet.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return writer.Write(path, table)
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
