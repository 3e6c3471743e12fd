package client

// Roster - ordered set of currently online pseudonyms, derived
// incrementally from join and leave events. Owned by the event loop.
type Roster struct {
	names []string
}

// Add - registers a pseudonym; reports false when already present.
func (r *Roster) Add(name string) bool {
	for _, n := range r.names {
		if n == name {
			return false
		}
	}
	r.names = append(r.names, name)
	return true
}

// Remove - forgets a pseudonym; reports false when not present.
func (r *Roster) Remove(name string) bool {
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			return true
		}
	}
	return false
}

// Len - number of online pseudonyms.
func (r *Roster) Len() int {
	return len(r.names)
}

// Names - copy of pseudonyms in arrival order.
func (r *Roster) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}
