package protocol

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MaxFrameSize - upper bound (in bytes) for a single wire frame,
// including the terminating newline. Oversized frames are refused
// before decoding.
const MaxFrameSize = 8 << 10

// delimiter separates frame fields and must never appear unescaped
// inside a field.
const delimiter = '|'

// Error - reports a malformed inbound frame. A connection which
// produced it is dropped and treated as a leave.
type Error struct {
	Reason string
	Frame  string
}

func (e *Error) Error() string {
	if e.Frame == "" {
		return "protocol: " + e.Reason
	}
	return fmt.Sprintf("protocol: %s: %.40q", e.Reason, e.Frame)
}

var escaper = strings.NewReplacer(
	"%", "%25",
	string(delimiter), "%7C",
	"\n", "%0A",
	"\r", "%0D",
)

// escape makes a field safe to embed between delimiters.
func escape(field string) string {
	return escaper.Replace(field)
}

// unescape reverses escape. Only the exact sequences the encoder emits
// are accepted; truncated, non-reserved or lowercase sequences fail, so
// re-encoding a decoded frame always restores it byte for byte.
func unescape(field string) (string, error) {
	if !strings.ContainsRune(field, '%') {
		return field, nil
	}
	var b strings.Builder
	b.Grow(len(field))
	for i := 0; i < len(field); i++ {
		c := field[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+2 > len(field)-1 {
			return "", &Error{Reason: "truncated escape sequence", Frame: field}
		}
		switch field[i+1 : i+3] {
		case "25":
			b.WriteByte('%')
		case "7C":
			b.WriteByte(delimiter)
		case "0A":
			b.WriteByte('\n')
		case "0D":
			b.WriteByte('\r')
		default:
			return "", &Error{Reason: "invalid escape sequence", Frame: field}
		}
		i += 2
	}
	return b.String(), nil
}

// Encode - serializes an event into a newline-terminated frame.
// Encoding never fails: reserved characters inside fields are
// percent-escaped.
func Encode(ev Event) string {
	var b strings.Builder
	b.WriteByte(byte(ev.Kind))
	b.WriteByte(delimiter)
	switch ev.Kind {
	case KindJoin, KindLeave:
		b.WriteString(escape(ev.Pseudonym))
	case KindText:
		b.WriteString(escape(ev.Pseudonym))
		b.WriteByte(delimiter)
		b.WriteString(strconv.FormatInt(ev.Timestamp.UnixMilli(), 10))
		b.WriteByte(delimiter)
		b.WriteString(escape(ev.Body))
	case KindNotice, KindReject:
		b.WriteString(escape(ev.Body))
	}
	b.WriteByte('\n')
	return b.String()
}

// Decode - recovers an event from a single frame. The trailing
// newline is optional. Fails with *Error on unknown tag, wrong
// field count, bad escaping or an oversized frame.
func Decode(frame string) (Event, error) {
	if len(frame) > MaxFrameSize {
		return Event{}, &Error{Reason: "frame exceeds size limit", Frame: frame}
	}
	line := strings.TrimSuffix(frame, "\n")
	line = strings.TrimSuffix(line, "\r")

	fields := strings.Split(line, string(delimiter))
	if len(fields[0]) != 1 {
		return Event{}, &Error{Reason: "missing frame tag", Frame: frame}
	}

	kind := Kind(fields[0][0])
	switch kind {
	case KindJoin, KindLeave:
		if len(fields) != 2 {
			return Event{}, &Error{Reason: "unexpected field count", Frame: frame}
		}
		pseudonym, err := unescape(fields[1])
		if err != nil {
			return Event{}, err
		}
		return Event{Kind: kind, Pseudonym: pseudonym}, nil
	case KindText:
		if len(fields) != 4 {
			return Event{}, &Error{Reason: "unexpected field count", Frame: frame}
		}
		pseudonym, err := unescape(fields[1])
		if err != nil {
			return Event{}, err
		}
		ms, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return Event{}, &Error{Reason: "invalid timestamp", Frame: frame}
		}
		body, err := unescape(fields[3])
		if err != nil {
			return Event{}, err
		}
		return Event{Kind: kind, Pseudonym: pseudonym, Body: body, Timestamp: time.UnixMilli(ms).UTC()}, nil
	case KindNotice, KindReject:
		if len(fields) != 2 {
			return Event{}, &Error{Reason: "unexpected field count", Frame: frame}
		}
		body, err := unescape(fields[1])
		if err != nil {
			return Event{}, err
		}
		return Event{Kind: kind, Body: body}, nil
	default:
		return Event{}, &Error{Reason: "unknown frame tag", Frame: frame}
	}
}
