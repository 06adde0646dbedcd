// File: ioop/registry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared table of pending operations keyed by correlation token.
// Platform facades post completion notifications here; awaiting
// operations park on the entry's one-shot channel.

package ioop

import (
	"sync"

	"github.com/momentics/hioload-buf/buf"
)

// Completion is the result of one elementary operation.
type Completion struct {
	N   uint64
	Err error
}

// Registry maps consumed token ids to pending operations. Entries own
// the operation's memory guard and keep-alive payload until the
// completion is delivered, regardless of what the awaiting caller
// does in the meantime.
type Registry struct {
	mu      sync.Mutex
	pending map[uint64]*pendingOp
}

type pendingOp struct {
	ch    chan Completion
	guard *buf.MemoryGuard
	keep  any
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{pending: make(map[uint64]*pendingOp)}
}

// register parks a pending operation under id and returns its one-shot
// completion channel. guard and keep may be nil.
func (r *Registry) register(id uint64, guard *buf.MemoryGuard, keep any) <-chan Completion {
	op := &pendingOp{ch: make(chan Completion, 1), guard: guard, keep: keep}
	r.mu.Lock()
	if _, dup := r.pending[id]; dup {
		r.mu.Unlock()
		panic("ioop: duplicate pending token")
	}
	r.pending[id] = op
	r.mu.Unlock()
	return op.ch
}

// settle drops a registration that completed synchronously or failed
// to submit; no notification will arrive for it.
func (r *Registry) settle(id uint64) {
	r.mu.Lock()
	op := r.pending[id]
	delete(r.pending, id)
	r.mu.Unlock()
	if op != nil && op.guard != nil {
		op.guard.Release()
	}
}

// Complete delivers the platform's completion notification for token
// id. The entry's guard is released only after delivery, once the
// platform is guaranteed done with the memory. Returns false when no
// operation is pending under id.
func (r *Registry) Complete(id uint64, n uint64, err error) bool {
	r.mu.Lock()
	op := r.pending[id]
	delete(r.pending, id)
	r.mu.Unlock()
	if op == nil {
		return false
	}
	op.ch <- Completion{N: n, Err: err}
	if op.guard != nil {
		op.guard.Release()
	}
	return true
}

// Pending returns the number of operations awaiting completion.
func (r *Registry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
