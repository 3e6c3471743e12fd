// Package registry tracks live, pseudonym-bearing connections and fans
// chat events out to them. It is the single serialization point of the
// server: register, unregister, broadcast and snapshot never interleave.
package registry

import (
	"errors"
	"sync"

	"lanchat/internal/protocol"
)

// ErrDuplicatePseudonym - returned when another live connection already
// holds the exact same pseudonym. The caller must refuse the
// registration and close the connection.
var ErrDuplicatePseudonym = errors.New("registry: pseudonym already in use")

type member struct {
	pseudonym string
	outbox    chan<- string
}

// Registry - mapping from connection identifier to its pseudonym and
// outbound frame channel. The channel stays exclusively owned by the
// connection's writer; the registry only submits into it without
// blocking.
type Registry struct {
	mu      sync.Mutex
	members map[string]*member
	order   []string // ids in registration order
	dropped uint64
}

// New - builds an empty registry.
func New() *Registry {
	return &Registry{
		members: make(map[string]*member),
	}
}

// Len - number of currently registered connections.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// Register - adds a connection under its pseudonym and returns the
// pseudonyms registered before it, in registration order. Fails with
// ErrDuplicatePseudonym on a case-sensitive exact match against any
// live member.
//
// The returned list is taken under the same lock hold as the
// registration itself, so of two concurrent registrations exactly one
// observes the other. A caller replaying the list to the newcomer plus
// the later join broadcasts therefore never misses a member.
func (r *Registry) Register(id, pseudonym string, outbox chan<- string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if m.pseudonym == pseudonym {
			return nil, ErrDuplicatePseudonym
		}
	}
	present := make([]string, 0, len(r.order))
	for _, oid := range r.order {
		present = append(present, r.members[oid].pseudonym)
	}
	r.members[id] = &member{pseudonym: pseudonym, outbox: outbox}
	r.order = append(r.order, id)
	return present, nil
}

// Unregister - removes a connection. Removing an unknown id is a no-op,
// which protects against duplicate disconnect notifications.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[id]; !ok {
		return
	}
	delete(r.members, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Broadcast - encodes the event once and delivers it to every
// registered connection except excludeID ("" includes all). Delivery to
// a full outbox is dropped for that member only; best effort, no retry.
// Returns the number of members the frame was submitted to.
//
// The registry lock makes this the global broadcast sequencing point:
// two concurrent broadcasts are observed in the same relative order by
// every recipient.
func (r *Registry) Broadcast(ev protocol.Event, excludeID string) int {
	frame := protocol.Encode(ev)
	r.mu.Lock()
	defer r.mu.Unlock()
	delivered := 0
	for _, id := range r.order {
		if id == excludeID {
			continue
		}
		m := r.members[id]
		select {
		case m.outbox <- frame:
			delivered++
		default:
			r.dropped++
		}
	}
	return delivered
}

// Snapshot - point-in-time copy of registered pseudonyms in
// registration order, never a live view.
func (r *Registry) Snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.order))
	for _, id := range r.order {
		names = append(names, r.members[id].pseudonym)
	}
	return names
}

// Dropped - total count of best-effort deliveries skipped because a
// member's outbox was full.
func (r *Registry) Dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}
