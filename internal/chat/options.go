package chat

import (
	"fmt"
	"log/slog"
	"time"
)

type serverOption func(s *Server) error

// WithReadTimeout - overwrites default idle period after which a silent
// connection is dropped.
func WithReadTimeout(timeout time.Duration) serverOption {
	return func(s *Server) error {
		if timeout <= 0 {
			return fmt.Errorf("chat.WithReadTimeout: invalid timeout (%v)", timeout)
		}
		s.readTimeout = timeout
		return nil
	}
}

// WithWriteTimeout - overwrites default deadline for a single outbound
// frame write.
func WithWriteTimeout(timeout time.Duration) serverOption {
	return func(s *Server) error {
		if timeout <= 0 {
			return fmt.Errorf("chat.WithWriteTimeout: invalid timeout (%v)", timeout)
		}
		s.writeTimeout = timeout
		return nil
	}
}

// WithOutboxSize - overwrites default capacity of every connection's
// outbound frame channel. A full outbox makes broadcasts drop frames for
// that connection only.
func WithOutboxSize(size int) serverOption {
	return func(s *Server) error {
		if size <= 0 {
			return fmt.Errorf("chat.WithOutboxSize: invalid size (%d)", size)
		}
		s.outboxSize = size
		return nil
	}
}

// WithMaxPseudonymLength - overwrites default upper bound (in runes) for
// an acceptable pseudonym.
func WithMaxPseudonymLength(max int) serverOption {
	return func(s *Server) error {
		if max <= 0 {
			return fmt.Errorf("chat.WithMaxPseudonymLength: invalid length (%d)", max)
		}
		s.maxPseudonym = max
		return nil
	}
}

// WithLogger - attaches a structured logger.
func WithLogger(logger *slog.Logger) serverOption {
	return func(s *Server) error {
		if logger == nil {
			return fmt.Errorf("chat.WithLogger: logger is nil")
		}
		s.logger = logger
		return nil
	}
}
