package client

import "errors"

// Scrollback - bounded ordered history of rendered lines; the oldest
// line is evicted on every push once capacity is reached. Owned
// exclusively by the event loop, never touched concurrently, so it
// needs no locking.
type Scrollback struct {
	max   int
	lines []string
}

// NewScrollback - builds an empty scrollback with given capacity.
func NewScrollback(max int) (*Scrollback, error) {
	if max <= 0 {
		return nil, errors.New("client.NewScrollback: capacity must be greater than 0")
	}
	return &Scrollback{max: max}, nil
}

// Len - number of currently kept lines.
func (s *Scrollback) Len() int {
	return len(s.lines)
}

// Push - appends a rendered line, evicting the oldest at capacity.
func (s *Scrollback) Push(line string) {
	if len(s.lines) == s.max {
		s.lines = s.lines[1:]
	}
	s.lines = append(s.lines, line)
}

// Lines - copy of kept lines, oldest first.
func (s *Scrollback) Lines() []string {
	lines := make([]string, len(s.lines))
	copy(lines, s.lines)
	return lines
}
