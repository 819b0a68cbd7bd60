//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package asterix

import (
	"fmt"
)

// ParseError is returned for a line that is not a usable move.
// Callers ignore the line.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("not a move: %q: %s", e.Line, e.Reason)
}

// GeometryWarning describes a recoverable geometry problem; the offending
// element is skipped.
type GeometryWarning struct {
	Column   int
	StartRow int
	EndRow   int
	Reason   string
}

func (e *GeometryWarning) Error() string {
	return fmt.Sprintf("pattern [%d,%d:%d]: %s", e.Column, e.StartRow, e.EndRow, e.Reason)
}

// ConfigurationError is fatal, and aborts the transcode.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration: " + e.Reason
	}

	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// GeometryOverflowError is returned when a scan would leave the bed Y travel.
type GeometryOverflowError struct {
	Layer int
	Row   int
	Y     int
	Limit int
}

func (e *GeometryOverflowError) Error() string {
	return fmt.Sprintf("layer %d: row %d: Y%d exceeds bed maximum Y%d",
		e.Layer, e.Row, e.Y, e.Limit)
}

// BitPackingError is returned by the valve wire codec.
type BitPackingError struct {
	Value  int
	Reason string
}

func (e *BitPackingError) Error() string {
	return fmt.Sprintf("bit packing: %s (%d)", e.Reason, e.Value)
}
