package wire

import (
	"errors"
	"fmt"
)

// The codec's failure modes form a closed set. Every fallible operation
// returns one of the errors below (possibly wrapped with positional
// context); none of them panic, even on adversarial input.
var (
	// ErrBufferTooSmall reports that a destination buffer lacks capacity
	// for the next field. It is detected before writing past the end;
	// bytes already written stay in the buffer.
	ErrBufferTooSmall = errors.New("wire: buffer too small")

	// ErrOverflow reports integer overflow while summing lengths or sizes.
	ErrOverflow = errors.New("wire: integer overflow in length calculation")
)

// InvalidDataError reports a structural violation in the byte stream:
// a malformed or unterminated varint, invalid UTF-8, a declared length
// that disagrees with the actual buffer, or trailing bytes after decode.
type InvalidDataError struct {
	Reason string
}

func (e *InvalidDataError) Error() string {
	return "wire: invalid data: " + e.Reason
}

func invalidDataf(format string, args ...any) error {
	return &InvalidDataError{Reason: fmt.Sprintf(format, args...)}
}

// ChecksumError reports a content digest mismatch on a frame. Both the
// stored and recomputed digests are attached so callers can log forensic
// detail rather than a bare boolean.
type ChecksumError struct {
	Stored   []byte
	Computed []byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("wire: checksum mismatch: stored %x, computed %x", e.Stored, e.Computed)
}

// IOError wraps a lower-level read or write failure from an underlying
// stream, keeping the cause reachable through errors.Unwrap.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return "wire: i/o failure: " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}
