// File: ioop/write.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Elementary write: transmits a whole sequence through as many native
// calls as it takes, strictly one at a time. Not every I/O primitive
// tolerates concurrent writes, so batches never overlap.

package ioop

import (
	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/buf"
)

// WriteCallback issues one native call for the submission, under the
// same token and completion contract as ReadCallback. The elementary
// operation must write every offered byte.
type WriteCallback func(*Submission) error

// Write drives a full sequence to the target primitive. Construct
// with NewWrite; Do loops over elementary operations until the whole
// payload is consumed.
type Write struct {
	ref  api.WeakRef
	seq  *buf.Sequence
	reg  *Registry
	o    opOptions
	done bool
}

// NewWrite builds a write of seq to the target primitive. The sequence
// must be nonzero length; an empty write is a programmer error and
// panics.
func NewWrite(ref api.WeakRef, seq *buf.Sequence, reg *Registry, options ...Option) *Write {
	if seq.IsEmpty() {
		panic("ioop: write payload is empty")
	}
	w := &Write{ref: ref, seq: seq, reg: reg, o: defaultOptions()}
	for _, opt := range options {
		opt(&w.o)
	}
	return w
}

// Do loops while the sequence is non-empty: each iteration gathers up
// to the batch limit of contiguous chunks, capped at the per-call
// byte limit, and invokes cb once for them. A short write surfaces as
// api.ErrContractViolation with accurate byte accounting; writing more
// than offered is a memory-safety violation and panics. After each
// elementary operation the offset advances by the bytes written and
// the sequence is advanced before the next batch.
func (w *Write) Do(cb WriteCallback) (uint64, error) {
	if w.done {
		panic("ioop: write operation already performed")
	}
	w.done = true

	var total uint64
	offset := w.o.offset
	for !w.seq.IsEmpty() {
		h, ok := w.ref.Get()
		if !ok {
			return total, api.ErrCanceled
		}

		tok := newToken()
		ch := w.reg.register(tok.id, w.seq.ExtendLifetime(), w.o.keep)
		sub := &Submission{
			regions: w.seq.Gather(w.o.batchLimit, int(w.o.maxTransfer)),
			handle:  h,
			offset:  offset,
			hasOff:  w.o.hasOffset,
			tok:     tok,
		}
		offered := sub.Offered()

		if err := cb(sub); err != nil {
			w.reg.settle(tok.id)
			return total, err
		}
		if !tok.taken {
			panic("ioop: callback completed without consuming its token")
		}

		var n uint64
		if sub.syncSet {
			w.reg.settle(tok.id)
			n = sub.syncN
		} else {
			c := <-ch
			if c.Err != nil {
				return total, c.Err
			}
			n = c.N
		}

		if n > offered {
			panic("ioop: elementary write reported more bytes than offered")
		}
		w.seq.Advance(int(n))
		total += n
		offset += int64(n)
		if n < offered {
			return total, api.ErrContractViolation
		}
	}
	return total, nil
}
