// Package chat implements the broadcast relay: it accepts connections,
// runs one reader and one writer per connection and fans inbound
// messages out through the registry.
package chat

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"lanchat/internal/chat/registry"
	"lanchat/internal/protocol"
	"lanchat/pkg/background"
)

// Server - chat connections keeper and message router.
//
// Per accepted connection the state machine is
// Awaiting-Pseudonym -> Active -> Closed: the first frame must decode
// as a join, text frames from Active connections are re-stamped at
// receipt and broadcast excluding the sender, and any read error, EOF
// or explicit leave closes the session with a synthesized leave event.
type Server struct {
	readTimeout  time.Duration
	writeTimeout time.Duration
	outboxSize   int
	maxPseudonym int
	logger       *slog.Logger

	scope  *background.Scope
	cancel func()

	clients *registry.Registry
}

func setup(s *Server, options ...serverOption) error {
	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(s); err != nil {
			return err
		}
	}
	return nil
}

// New - builds a Server with needed options.
func New(options ...serverOption) (*Server, error) {
	scope, cancel := background.NewScope()
	s := &Server{
		readTimeout:  5 * time.Minute,
		writeTimeout: 30 * time.Second,
		outboxSize:   32,
		maxPseudonym: 24,
		logger:       slog.Default(),
		scope:        scope,
		cancel:       cancel,
		clients:      registry.New(),
	}
	if err := setup(s, options...); err != nil {
		return nil, err
	}
	return s, nil
}

// Serve - accepts connections from the listener until shutdown.
func (s *Server) Serve(listener net.Listener) {
	if listener == nil || s.scope.Context().Err() != nil {
		return
	}
	s.scope.Add(1)
	go func() {
		defer s.scope.Done()
		<-s.scope.Context().Done()
		listener.Close()
	}()

	s.scope.Add(1)
	defer s.scope.Done()
	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-s.scope.Context().Done():
				return
			default:
			}
			s.logger.Error("accept failed", "error", err)
			continue
		}
		if err := s.KeepConnection(conn); err != nil {
			conn.Close()
			return
		}
	}
}

// KeepConnection - adopts a new net connection and starts its IO
// handlers in background.
func (s *Server) KeepConnection(conn net.Conn) error {
	if s.scope.Context().Err() != nil {
		return ErrUnderStopCondition
	}
	s.scope.Add(1)
	go func() {
		defer s.scope.Done()
		s.session(conn)
	}()
	return nil
}

// Shutdown - stops accepting, cancels all connection handlers and waits
// for them up to the timeout. Returns the time spent stopping.
func (s *Server) Shutdown(timeout time.Duration) time.Duration {
	if s.scope.Context().Err() != nil {
		return 0
	}
	from := time.Now()
	done := make(chan struct{})
	go func() {
		s.cancel()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
	return time.Since(from)
}

// Online - point-in-time list of connected pseudonyms.
func (s *Server) Online() []string {
	return s.clients.Snapshot()
}

// DroppedDeliveries - total best-effort broadcast deliveries skipped
// because a recipient's outbox was full.
func (s *Server) DroppedDeliveries() uint64 {
	return s.clients.Dropped()
}

// session drives one connection through its whole lifecycle.
func (s *Server) session(conn net.Conn) {
	defer conn.Close()

	id := uuid.NewString()
	log := s.logger.With("conn", id[:8], "remote", fmt.Sprint(conn.RemoteAddr()))

	// ctx helps cancel the reader when the writer failed and vice versa
	ctx, cancel := context.WithCancel(s.scope.Context())
	defer cancel()

	outbox := make(chan string, s.outboxSize)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer func() {
			cancel()
			// release the blocked reader immediately
			conn.Close()
			wg.Done()
		}()
		s.drainOutbox(ctx, conn, outbox)
	}()
	defer wg.Wait()
	defer cancel()

	reader := protocol.NewReader(conn)

	pseudonym, err := s.awaitJoin(reader, conn, id, outbox)
	if err != nil {
		log.Info("registration refused", "error", err)
		return
	}
	log.Info("client joined", "pseudonym", pseudonym, "online", s.clients.Len())

	s.maintainInbox(ctx, reader, conn, id, pseudonym, log)

	// closed: drop the registration first, then announce the departure.
	// A connection registering in between misses the stale entry and a
	// connection registered before it receives the leave; either way no
	// ghost survives in any roster
	s.clients.Unregister(id)
	s.clients.Broadcast(protocol.Leave(pseudonym), id)
	log.Info("client left", "pseudonym", pseudonym, "online", s.clients.Len())
}

// awaitJoin runs the Awaiting-Pseudonym state: the first inbound frame
// must be a valid join the registry accepts. On refusal a reject notice
// is written directly (the writer is still idle, nothing was queued yet)
// and the session never reaches Active.
func (s *Server) awaitJoin(reader *protocol.Reader, conn net.Conn, id string, outbox chan<- string) (string, error) {
	reject := func(reason string) (string, error) {
		conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
		io.WriteString(conn, protocol.Encode(protocol.Reject(reason)))
		return "", fmt.Errorf("chat: %s", reason)
	}

	conn.SetReadDeadline(time.Now().Add(s.readTimeout))
	ev, err := reader.Read()
	if err != nil {
		return "", fmt.Errorf("chat: no join frame: %w", err)
	}
	if ev.Kind != protocol.KindJoin {
		return reject("expected a join frame first")
	}
	pseudonym := strings.TrimSpace(ev.Pseudonym)
	switch {
	case pseudonym == "":
		return reject("pseudonym must not be empty")
	case len([]rune(pseudonym)) > s.maxPseudonym:
		return reject(fmt.Sprintf("pseudonym longer than %d characters", s.maxPseudonym))
	}

	// the list of earlier members comes out of the same registry lock
	// hold as the registration, so between two racing joiners exactly
	// one replays the other and the other is reached by the broadcast
	present, err := s.clients.Register(id, pseudonym, outbox)
	if err != nil {
		return reject(fmt.Sprintf("pseudonym %q is already in use", pseudonym))
	}

	// roster sync: everyone already online arrives at the newcomer as
	// join frames, then the greeting; the outbox is empty at this point
	// and sized well above any realistic room, but stay non-blocking
	for _, name := range present {
		select {
		case outbox <- protocol.Encode(protocol.Join(name)):
		default:
		}
	}
	greeting := fmt.Sprintf("welcome, %s! %d connected. Use :name: for emojis, /quit to leave.",
		pseudonym, len(present)+1)
	select {
	case outbox <- protocol.Encode(protocol.Notice(greeting)):
	default:
	}

	s.clients.Broadcast(protocol.Join(pseudonym), id)
	return pseudonym, nil
}

// maintainInbox runs the Active state until the peer goes away.
func (s *Server) maintainInbox(ctx context.Context, reader *protocol.Reader, conn net.Conn, id, pseudonym string, log *slog.Logger) {
	for {
		conn.SetReadDeadline(time.Now().Add(s.readTimeout))
		ev, err := reader.Read()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
			}
			switch e := err.(type) {
			case *protocol.Error:
				log.Info("dropping connection on protocol error", "error", e)
			case net.Error:
				if e.Timeout() {
					log.Info("dropping idle connection")
				} else {
					log.Info("connection read failed", "error", e)
				}
			default:
				if err != io.EOF {
					log.Info("connection read failed", "error", err)
				}
			}
			return
		}

		switch ev.Kind {
		case protocol.KindText:
			body := protocol.NormalizeBody(ev.Body)
			if body == "" {
				continue
			}
			// the server is the ordering authority: stamp at receipt
			// and trust the registered pseudonym, not the frame
			s.clients.Broadcast(protocol.Text(pseudonym, body, time.Now().UTC()), id)
		case protocol.KindLeave:
			return
		default:
			// a join is accepted once; anything else from a client is noise
			log.Info("ignoring unexpected frame", "kind", string(rune(ev.Kind)))
		}
	}
}

// drainOutbox delivers queued frames over the wire, bounding every write
// with a deadline so one stalled peer never delays another.
func (s *Server) drainOutbox(ctx context.Context, conn net.Conn, outbox <-chan string) {
	for {
		select {
		case frame := <-outbox:
			conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
			if _, err := io.WriteString(conn, frame); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
