// File: fake/handle.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fake I/O primitive with weak-reference semantics for testing the
// operation protocol's cancellation contract.

package fake

import (
	"sync"

	"github.com/momentics/hioload-buf/api"
)

// Handle is a closable fake I/O primitive.
type Handle struct {
	fd uintptr

	mu     sync.Mutex
	closed bool
}

// NewHandle creates an open handle with the given descriptor value.
func NewHandle(fd uintptr) *Handle {
	return &Handle{fd: fd}
}

// RawFD implements api.IOHandle.
func (h *Handle) RawFD() uintptr { return h.fd }

// Close drops the last owning reference; weak refs stop upgrading.
func (h *Handle) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
}

// WeakRef returns a non-owning reference gated on the closed flag.
func (h *Handle) WeakRef() api.WeakRef { return weakRef{h: h} }

type weakRef struct {
	h *Handle
}

func (w weakRef) Get() (api.IOHandle, bool) {
	w.h.mu.Lock()
	defer w.h.mu.Unlock()
	if w.h.closed {
		return nil, false
	}
	return w.h, true
}
