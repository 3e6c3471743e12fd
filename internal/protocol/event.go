package protocol

import "time"

// Kind - single-character frame tag which selects the event variant.
type Kind byte

const (
	// KindJoin - a peer announced itself with a pseudonym.
	KindJoin Kind = 'J'
	// KindLeave - a peer left the chat (sent or synthesized by the server).
	KindLeave Kind = 'L'
	// KindText - a chat message from a pseudonym.
	KindText Kind = 'T'
	// KindNotice - informational server line (greeting, tips).
	KindNotice Kind = 'N'
	// KindReject - registration was refused; the connection closes after it.
	KindReject Kind = 'R'
)

// Event - one discrete chat occurrence, the unit of transmission
// and of broadcast fan-out. Immutable once constructed.
type Event struct {
	Kind      Kind
	Pseudonym string
	Body      string
	Timestamp time.Time
}

// Join - builds a join event for given pseudonym.
func Join(pseudonym string) Event {
	return Event{Kind: KindJoin, Pseudonym: pseudonym}
}

// Leave - builds a leave event for given pseudonym.
func Leave(pseudonym string) Event {
	return Event{Kind: KindLeave, Pseudonym: pseudonym}
}

// Text - builds a text message event.
func Text(pseudonym, body string, at time.Time) Event {
	return Event{Kind: KindText, Pseudonym: pseudonym, Body: body, Timestamp: at}
}

// Notice - builds an informational server event.
func Notice(body string) Event {
	return Event{Kind: KindNotice, Body: body}
}

// Reject - builds a registration refusal event.
func Reject(reason string) Event {
	return Event{Kind: KindReject, Body: reason}
}
