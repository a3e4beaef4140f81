package tline

import "errors"

var (
	// ErrNotTwoPort is returned when the source network does not have exactly 2 ports.
	ErrNotTwoPort = errors.New("tline: transmission line needs a two-port")

	// ErrInvalidLength is returned for a length that is not a positive finite number.
	ErrInvalidLength = errors.New("tline: length must be positive and finite")
)
