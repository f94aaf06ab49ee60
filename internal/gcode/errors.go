package gcode

import "fmt"

// Code enumerates the G-code side of the error taxonomy from spec.md §7.
type Code int

const (
	// InvalidArc: the arc command has neither (I or J) nor R, or has both.
	InvalidArc Code = iota
	// UnparsableCommand: the line does not match any known alternative.
	UnparsableCommand
	// UnimplementedArcRadiusForm: the R form of G2/G3 is a known gap.
	UnimplementedArcRadiusForm
)

func (c Code) String() string {
	switch c {
	case InvalidArc:
		return "InvalidArc"
	case UnparsableCommand:
		return "UnparsableCommand"
	case UnimplementedArcRadiusForm:
		return "UnimplementedArcRadiusForm"
	default:
		return "Unknown"
	}
}

// Error is the tagged error type returned by this package.
type Error struct {
	Code Code
	Line string
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s (line %q)", e.Code, e.Msg, e.Line)
	}
	return fmt.Sprintf("%s (line %q)", e.Code, e.Line)
}

func newError(code Code, line, msg string) *Error {
	return &Error{Code: code, Line: line, Msg: msg}
}
