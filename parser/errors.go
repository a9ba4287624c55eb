package parser

import "errors"

var (
	// ErrUnexpectedToken is returned when the parser encounters a token it
	// cannot fit into the current grammar production.
	ErrUnexpectedToken = errors.New("parser: unexpected token")

	// ErrUnexpectedEOF is returned when input ends mid-production.
	ErrUnexpectedEOF = errors.New("parser: unexpected end of input")

	// ErrInvalidNumber is returned when a SIZE/MIN/MAX/INIT field does not
	// parse as a base-10 integer.
	ErrInvalidNumber = errors.New("parser: invalid number literal")

	// ErrUnknownDecl is returned when a top-level line does not start with
	// one of the recognized "event:"/"process:"/... keywords.
	ErrUnknownDecl = errors.New("parser: unknown declaration")

	// ErrUnknownAttr is returned when a location/edge attribute block
	// contains a key other than initial/committed/urgent/invariant/
	// labels/provided/do.
	ErrUnknownAttr = errors.New("parser: unknown attribute")
)
