package client

import (
	"reflect"
	"testing"
)

func TestScrollback(test *testing.T) {
	if _, err := NewScrollback(0); err == nil {
		test.Error("NewScrollback(0): expected error, got nil")
	}
	if _, err := NewScrollback(-1); err == nil {
		test.Error("NewScrollback(-1): expected error, got nil")
	}

	s, _ := NewScrollback(2)
	if s.Len() != 0 {
		test.Error("unexpected length just after init:", s.Len())
	}
	s.Push("1")
	s.Push("2")
	s.Push("3")
	if s.Len() != 2 {
		test.Error("capacity was not enforced, length:", s.Len())
	}
	if lines := s.Lines(); !reflect.DeepEqual(lines, []string{"2", "3"}) {
		test.Error("oldest line was not evicted first:", lines)
	}

	lines := s.Lines()
	lines[0] = "mutated"
	if got := s.Lines(); !reflect.DeepEqual(got, []string{"2", "3"}) {
		test.Error("Lines() exposed internal state:", got)
	}
}
