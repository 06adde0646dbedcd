// File: ioop/read.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Elementary read: fills a producer-side builder through exactly one
// native call. Reads are "at most N bytes" and are never auto-retried.

package ioop

import (
	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/buf"
)

// ReadCallback issues one native call for the submission. It must
// consume the submission's token exactly once, and either report a
// synchronous completion via CompleteSync or leave the operation
// pending for the registry. A non-nil return aborts the operation with
// that error (platform passthrough); no native call may remain in
// flight in that case.
type ReadCallback func(*Submission) error

// Read drives a single elementary read into a builder's reserved
// capacity. Construct with NewRead; each Read performs exactly one
// operation.
type Read struct {
	ref  api.WeakRef
	b    *buf.Builder
	reg  *Registry
	o    opOptions
	done bool
}

// NewRead builds a read over the target primitive and builder. The
// builder must hold nonzero unfilled capacity; a capacity-less read is
// a programmer error and panics.
func NewRead(ref api.WeakRef, b *buf.Builder, reg *Registry, options ...Option) *Read {
	if b.Remaining() == 0 {
		panic("ioop: read buffer has no remaining capacity")
	}
	r := &Read{ref: ref, b: b, reg: reg, o: defaultOptions()}
	for _, opt := range options {
		opt(&r.o)
	}
	return r
}

// Do upgrades the weak target reference, exposes the builder's
// writable capacity as a vectored write capped at the per-call limit,
// and invokes cb exactly once. On synchronous completion the reported
// count is validated against the offered capacity and committed; on
// asynchronous completion the operation parks on the registry and the
// same validation/commit path runs when the notification arrives.
// Returns api.ErrCanceled when the target is already gone.
func (r *Read) Do(cb ReadCallback) (uint64, error) {
	if r.done {
		panic("ioop: read operation already performed")
	}
	r.done = true

	h, ok := r.ref.Get()
	if !ok {
		return 0, api.ErrCanceled
	}

	capBytes := min(uint64(r.b.Remaining()), r.o.maxTransfer)
	v := r.b.BeginVectored(int(capBytes))
	tok := newToken()
	ch := r.reg.register(tok.id, r.b.ExtendLifetime(), r.o.keep)
	sub := &Submission{
		regions: v.Regions(),
		handle:  h,
		offset:  r.o.offset,
		hasOff:  r.o.hasOffset,
		tok:     tok,
	}

	if err := cb(sub); err != nil {
		r.reg.settle(tok.id)
		v.Abandon()
		return 0, err
	}
	if !tok.taken {
		panic("ioop: callback completed without consuming its token")
	}

	var n uint64
	if sub.syncSet {
		r.reg.settle(tok.id)
		n = sub.syncN
	} else {
		c := <-ch
		if c.Err != nil {
			v.Abandon()
			return 0, c.Err
		}
		n = c.N
	}

	// Exceeding offered capacity means the platform wrote past our
	// bounds; this is a memory-safety violation, never a soft error.
	if n > uint64(v.Offered()) {
		panic("ioop: completion reported more bytes than offered capacity")
	}
	v.Commit(int(n))
	return n, nil
}
