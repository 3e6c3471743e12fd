package protocol

import (
	"bufio"
	"errors"
	"io"
)

// Reader - recovers discrete events from a continuous byte stream.
// Frames longer than MaxFrameSize are refused with *Error before
// any decoding happens.
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader - wraps a byte stream for frame-by-frame reading.
func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), MaxFrameSize)
	return &Reader{scanner: s}
}

// Read - blocks until the next complete frame arrives and decodes it.
// Returns io.EOF on an orderly stream end, *Error on a malformed or
// oversized frame and the underlying transport error otherwise.
func (r *Reader) Read() (Event, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				return Event{}, &Error{Reason: "frame exceeds size limit"}
			}
			return Event{}, err
		}
		return Event{}, io.EOF
	}
	return Decode(r.scanner.Text())
}
