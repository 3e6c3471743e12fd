// Package background joins related goroutines into cancellable scopes.
package background

import (
	"context"
	"sync"
)

// Scope - a set of background workers sharing one cancellation context.
// The server wraps every connection handler into its scope so shutdown
// can cancel and await them all at once.
type Scope struct {
	ctx       context.Context
	ctxCancel context.CancelFunc
	members   sync.WaitGroup
}

// NewScope - builds a scope together with its cancel func, which
// cancels the context and blocks until every registered member is done.
func NewScope() (scope *Scope, cancel func()) {
	ctx, cancelFunc := context.WithCancel(context.Background())
	s := &Scope{
		ctx:       ctx,
		ctxCancel: cancelFunc,
	}
	return s, func() {
		s.ctxCancel()
		s.members.Wait()
	}
}

// Context - the scope's cancellation context.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Add - registers members about to start. Based on sync.WaitGroup.
func (s *Scope) Add(delta int) {
	s.members.Add(delta)
}

// Done - reports one member as finished. Based on sync.WaitGroup.
func (s *Scope) Done() {
	s.members.Done()
}
