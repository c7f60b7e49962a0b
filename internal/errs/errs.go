// Package errs defines the error taxonomy shared by the load and report pipelines.
package errs

import (
	"errors"
	"fmt"
)

var ErrFileNotFound = errors.New("file not found")

// FormatError reports a source file that could not be converted or parsed.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("format error: %v", e.Err)
	}
	return fmt.Sprintf("format error in %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// SchemaError reports missing required or control columns.
type SchemaError struct {
	Missing []string
	Message string
}

func (e *SchemaError) Error() string {
	return "schema error: " + e.Message
}

// ContextError reports an unreadable or malformed period marker.
type ContextError struct {
	Source string
	Err    error
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("period context error (%s): %v", e.Source, e.Err)
}

func (e *ContextError) Unwrap() error { return e.Err }

// RemoteCallError is a per-row failure while talking to the issue tracker.
// It never aborts a batch.
type RemoteCallError struct {
	RowNumber int
	TicketID  string
	Date      string
	Err       error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("row %d (ticket %s, date %s): %v", e.RowNumber, e.TicketID, e.Date, e.Err)
}

func (e *RemoteCallError) Unwrap() error { return e.Err }

// SendError reports a failed mail dispatch.
type SendError struct {
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send mail: %v", e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

func NotFound(path string) error {
	return fmt.Errorf("%w: %s", ErrFileNotFound, path)
}
