package protocol

import (
	"strings"
	"testing"
	"time"
)

func eventsEqual(a, b Event) bool {
	return a.Kind == b.Kind &&
		a.Pseudonym == b.Pseudonym &&
		a.Body == b.Body &&
		a.Timestamp.Equal(b.Timestamp)
}

func TestEncodeDecode_RoundTrip(test *testing.T) {
	at := time.UnixMilli(1700000000123).UTC()
	cases := []Event{
		Join("alice"),
		Leave("bob"),
		Text("alice", "Hi there", at),
		Text("weird|name", "body with | pipe and % percent", at),
		Text("alice", "multi\nline\r\nbody", at),
		Notice("welcome to the chat"),
		Reject("pseudonym already in use"),
		Join(""),
	}

	for _, ev := range cases {
		frame := Encode(ev)
		if !strings.HasSuffix(frame, "\n") {
			test.Errorf("Encode(%+v): frame is not newline-terminated: %q", ev, frame)
		}
		if n := strings.Count(frame, "\n"); n != 1 {
			test.Errorf("Encode(%+v): expected exactly one newline, got %d: %q", ev, n, frame)
		}
		got, err := Decode(frame)
		if err != nil {
			test.Errorf("Decode(%q): unexpected error: %v", frame, err)
			continue
		}
		if !eventsEqual(got, ev) {
			test.Errorf("round trip mismatch: sent %+v, got %+v", ev, got)
		}
	}
}

func TestDecode_EncodeRestoresFrame(test *testing.T) {
	frames := []string{
		"J|alice\n",
		"L|bob\n",
		"T|alice|1700000000123|Hi %7C there\n",
		"N|server notice\n",
		"R|refused\n",
	}
	for _, frame := range frames {
		ev, err := Decode(frame)
		if err != nil {
			test.Errorf("Decode(%q): unexpected error: %v", frame, err)
			continue
		}
		if got := Encode(ev); got != frame {
			test.Errorf("encode(decode(%q)) = %q", frame, got)
		}
	}
}

func TestDecode_Errors(test *testing.T) {
	cases := []struct {
		name  string
		frame string
	}{
		{"empty", "\n"},
		{"unknown tag", "X|alice\n"},
		{"long tag", "JJ|alice\n"},
		{"join missing field", "J\n"},
		{"join extra field", "J|alice|extra\n"},
		{"text missing body", "T|alice|1700000000123\n"},
		{"text bad timestamp", "T|alice|yesterday|hello\n"},
		{"truncated escape", "J|alice%2\n"},
		{"non-hex escape", "J|alice%zz\n"},
		{"non-reserved escape", "J|alice%41\n"},
		{"lowercase escape", "J|alice%7c\n"},
		{"oversized", "T|a|1|" + strings.Repeat("x", MaxFrameSize) + "\n"},
	}
	for _, c := range cases {
		if _, err := Decode(c.frame); err == nil {
			test.Errorf("%s: expected error, got nil", c.name)
		} else if _, ok := err.(*Error); !ok {
			test.Errorf("%s: expected *protocol.Error, got %T (%v)", c.name, err, err)
		}
	}
}

func TestEncode_EscapesReservedCharacters(test *testing.T) {
	frame := Encode(Text("a|b", "x\ny%z", time.UnixMilli(1).UTC()))
	payload := strings.TrimSuffix(frame, "\n")
	if strings.Count(payload, "|") != 3 {
		test.Errorf("reserved delimiter leaked into fields: %q", frame)
	}
	if strings.Contains(payload, "\n") || strings.Contains(payload, "\r") {
		test.Errorf("line break leaked into fields: %q", frame)
	}
}
