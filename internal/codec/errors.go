package codec

import "errors"

var (
	// ErrMalformed is returned when input cannot be parsed.
	ErrMalformed = errors.New("codec: malformed vector clock")
	// ErrDuplicateNode is returned when a node appears more than once.
	ErrDuplicateNode = errors.New("codec: duplicate node")
)
