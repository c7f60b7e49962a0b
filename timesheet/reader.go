package timesheet

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Reader interface {
	Read(path string) (*Table, error)
}

func ReaderForFormat(format string) (Reader, error) {
	switch normalizeHeader(format) {
	case "csv":
		return &CSVReader{}, nil
	case "excel", "xlsx", "xlsm", "xltx":
		return &ExcelReader{}, nil
	case "ods", "opendocument":
		return &ODSReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

func ReaderForPath(path string) (Reader, error) {
	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if extension == "" {
		return nil, fmt.Errorf("cannot infer input format for %s", path)
	}
	return ReaderForFormat(extension)
}
