package touchstone

import "errors"

var (
	// ErrParse reports a malformed number or option value.
	ErrParse = errors.New("touchstone: parse error")

	// ErrUnrecognizedOption reports an unknown token on the option line.
	ErrUnrecognizedOption = errors.New("touchstone: unrecognized option")

	// ErrMissingOptionLine is returned when data appears before, or the
	// stream ends without, a "#" option line.
	ErrMissingOptionLine = errors.New("touchstone: missing option line")

	// ErrUnsupportedParameter is returned for parameter types other than S.
	ErrUnsupportedParameter = errors.New("touchstone: only S-parameters are supported")

	ErrUnknownFormat = errors.New("touchstone: unknown format")

	// ErrPortMismatch reports a record whose value count does not match the
	// port count taken from the file extension.
	ErrPortMismatch = errors.New("touchstone: ports declared vs. ports found")

	// ErrIncompleteRecord is returned when the stream ends in the middle of
	// a frequency record.
	ErrIncompleteRecord = errors.New("touchstone: incomplete record at end of data")

	ErrNilNetwork = errors.New("touchstone: nil network")

	ErrBadFilename = errors.New("touchstone: file name has no .sNp extension")
)
