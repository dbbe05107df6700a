package pmpsdb

import (
	"errors"
	"fmt"
	"net/textproto"
)

var (
	// ErrUnreachable indicates the PLC could not be contacted within
	// the configured timeout.
	ErrUnreachable = errors.New("plc unreachable")

	// ErrAuthExhausted indicates that every default credential and the
	// anonymous fallback were rejected.
	ErrAuthExhausted = errors.New("could not log into plc with default credentials")
)

// ProtocolError is a rejected FTP command reply (missing file, denied
// permission, bad path). Inspect with errors.As.
type ProtocolError = textproto.Error

// ParseError indicates malformed input: a directory listing line that
// does not match the PLC's fixed format, or configuration content that
// is not a valid two-level JSON mapping.
type ParseError struct {
	Input  string // the offending line, or the filename for config data
	Reason string
	Err    error // underlying cause, if any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DecodeError indicates a non-ASCII byte in content expected to be text.
type DecodeError struct {
	Offset int
	Byte   byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("non-ascii byte 0x%02x at offset %d", e.Byte, e.Offset)
}

// isPermissionDenied reports whether err is a permanent-failure FTP
// reply (5xx). During login these mean "wrong credential, try the next
// one"; everything else is fatal.
func isPermissionDenied(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe) && pe.Code >= 500 && pe.Code < 600
}
