package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotLoaded is returned when generation is requested before a table
// has been loaded successfully.
var ErrNotLoaded = errors.New("probability table not loaded")

// FormatError describes why raw table text could not be parsed.
// A FormatError is fatal to the load that produced it.
type FormatError struct {
	Line   int    // 1-based source line, 0 when the whole input is at fault
	Column string // column name, if the problem is a single cell
	Msg    string
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("format error")
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	return b.String()
}

func formatErrorf(line int, column, format string, args ...any) *FormatError {
	return &FormatError{Line: line, Column: column, Msg: fmt.Sprintf(format, args...)}
}

// IsFormatError reports whether err wraps a *FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
