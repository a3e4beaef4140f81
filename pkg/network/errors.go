package network

import "errors"

var (
	// ErrShape is returned when sample matrices are not square, disagree on
	// port count, or the number of samples differs from the sweep length.
	ErrShape = errors.New("network: inconsistent shape")

	// ErrFrequencyOrder is returned when the sweep is negative, NaN or not
	// strictly increasing.
	ErrFrequencyOrder = errors.New("network: frequencies must be non-negative and strictly increasing")

	// ErrPortIndex is returned for a 1-based port index outside 1..Ports().
	ErrPortIndex = errors.New("network: port index out of range")

	// ErrUnknownParameter is returned by ParseParamType for an unknown tag.
	ErrUnknownParameter = errors.New("network: unknown parameter type")

	// ErrUnsupportedConversion marks a conversion this package does not provide.
	ErrUnsupportedConversion = errors.New("network: unsupported conversion")
)
