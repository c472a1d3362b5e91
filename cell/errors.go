package cell

import "errors"

var (
	ErrSelfWrite     = errors.New("self-inserting nodes are unsupported")
	ErrNotASource    = errors.New("values can only be put in source nodes")
	ErrInvalidValue  = errors.New("the invalid sentinel cannot be put")
	ErrTooManyInputs = errors.New("too many inputs")
	ErrForeignCell   = errors.New("cell belongs to another system")
)
