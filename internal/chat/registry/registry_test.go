package registry

import (
	"fmt"
	"reflect"
	"sync"
	"testing"

	"lanchat/internal/protocol"
)

func TestRegistry_Register_DuplicatePseudonym(test *testing.T) {
	r := New()
	if _, err := r.Register("id-1", "alice", make(chan string, 1)); err != nil {
		test.Fatal("unexpected error:", err)
	}
	if _, err := r.Register("id-2", "alice", make(chan string, 1)); err != ErrDuplicatePseudonym {
		test.Error("expected ErrDuplicatePseudonym, got:", err)
	}
	if got := r.Snapshot(); !reflect.DeepEqual(got, []string{"alice"}) {
		test.Error("refused pseudonym appeared in snapshot:", got)
	}
	// the same pseudonym becomes available again after the holder leaves
	r.Unregister("id-1")
	if _, err := r.Register("id-2", "alice", make(chan string, 1)); err != nil {
		test.Error("expected registration after holder left, got:", err)
	}
}

func TestRegistry_Register_ReturnsEarlierMembers(test *testing.T) {
	r := New()
	first, err := r.Register("id-1", "alice", make(chan string, 1))
	if err != nil || len(first) != 0 {
		test.Error("expected no earlier members, got:", first, err)
	}
	second, err := r.Register("id-2", "bob", make(chan string, 1))
	if err != nil || !reflect.DeepEqual(second, []string{"alice"}) {
		test.Error("expected earlier member list [alice], got:", second, err)
	}
	third, _ := r.Register("id-3", "carol", make(chan string, 1))
	if !reflect.DeepEqual(third, []string{"alice", "bob"}) {
		test.Error("expected registration order preserved, got:", third)
	}
}

// Two racing registrations must never miss each other: the earlier-member
// list is taken under the same lock hold as the registration, so for every
// pair of concurrent joiners exactly one observes the other.
func TestRegistry_Register_ConcurrentJoinersObserveEachOther(test *testing.T) {
	const joiners = 16
	r := New()

	var wg sync.WaitGroup
	present := make([][]string, joiners)
	start := make(chan struct{})
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			p, err := r.Register(fmt.Sprintf("id-%d", i), fmt.Sprintf("user-%d", i), make(chan string, 1))
			if err != nil {
				test.Error("unexpected error:", err)
				return
			}
			present[i] = p
		}(i)
	}
	close(start)
	wg.Wait()

	sees := func(i, j int) bool {
		for _, name := range present[i] {
			if name == fmt.Sprintf("user-%d", j) {
				return true
			}
		}
		return false
	}
	for i := 0; i < joiners; i++ {
		for j := i + 1; j < joiners; j++ {
			if sees(i, j) == sees(j, i) {
				test.Errorf("joiners %d and %d: expected exactly one to observe the other", i, j)
			}
		}
	}
}

func TestRegistry_Unregister_Idempotent(test *testing.T) {
	r := New()
	r.Register("id-1", "alice", make(chan string, 1))
	r.Register("id-2", "bob", make(chan string, 1))

	r.Unregister("id-1")
	first := r.Snapshot()
	r.Unregister("id-1")
	second := r.Snapshot()

	if !reflect.DeepEqual(first, second) {
		test.Errorf("second unregister changed state: %v vs %v", first, second)
	}
	r.Unregister("never-registered")
	if r.Len() != 1 {
		test.Error("unexpected member count:", r.Len())
	}
}

func TestRegistry_Broadcast_ExcludesSender(test *testing.T) {
	r := New()
	a := make(chan string, 4)
	b := make(chan string, 4)
	c := make(chan string, 4)
	r.Register("id-a", "alice", a)
	r.Register("id-b", "bob", b)
	r.Register("id-c", "carol", c)

	ev := protocol.Notice("hello")
	if n := r.Broadcast(ev, "id-a"); n != 2 {
		test.Error("expected delivery to 2 members, got:", n)
	}
	if len(a) != 0 {
		test.Error("sender received its own broadcast")
	}
	frame := protocol.Encode(ev)
	for name, ch := range map[string]chan string{"bob": b, "carol": c} {
		select {
		case got := <-ch:
			if got != frame {
				test.Errorf("%s: expected frame %q, got %q", name, frame, got)
			}
		default:
			test.Errorf("%s: did not receive the broadcast", name)
		}
	}

	// exclude nobody
	if n := r.Broadcast(ev, ""); n != 3 {
		test.Error("expected delivery to all 3 members, got:", n)
	}
}

func TestRegistry_Broadcast_DropsOnFullOutbox(test *testing.T) {
	r := New()
	full := make(chan string) // unbuffered and never drained
	ok := make(chan string, 2)
	r.Register("id-full", "slowpoke", full)
	r.Register("id-ok", "bob", ok)

	if n := r.Broadcast(protocol.Notice("one"), ""); n != 1 {
		test.Error("expected delivery to 1 member, got:", n)
	}
	if n := r.Broadcast(protocol.Notice("two"), ""); n != 1 {
		test.Error("expected delivery to 1 member, got:", n)
	}
	if len(ok) != 2 {
		test.Error("healthy member missed deliveries:", len(ok))
	}
	if r.Dropped() != 2 {
		test.Error("expected 2 dropped deliveries, got:", r.Dropped())
	}
}

func TestRegistry_Snapshot_IsACopy(test *testing.T) {
	r := New()
	r.Register("id-1", "alice", make(chan string, 1))
	r.Register("id-2", "bob", make(chan string, 1))

	snap := r.Snapshot()
	if !reflect.DeepEqual(snap, []string{"alice", "bob"}) {
		test.Fatal("unexpected snapshot:", snap)
	}
	snap[0] = "mallory"
	if got := r.Snapshot(); !reflect.DeepEqual(got, []string{"alice", "bob"}) {
		test.Error("snapshot exposed internal state:", got)
	}
}
