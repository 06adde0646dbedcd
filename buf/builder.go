// File: buf/builder.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Producer side of the memory model: a queue of already-frozen spans
// followed by a queue of span builders holding reserved capacity.
//
// Cornerstone invariant: only the front span builder may hold filled
// bytes; every other entry is pure unfilled capacity. The invariant is
// dynamic queue state, so it is enforced at runtime through a single
// choke-point mutation method (recordFilled) rather than by types. It
// is suspended only while a Vectored write holds the builder and is
// restored before Commit returns.

package buf

import (
	"encoding/binary"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-buf/api"
)

// Builder accumulates bytes into provider-backed capacity and hands
// them off as immutable Sequences. Must be used by one mutating owner
// at a time and must not be copied.
type Builder struct {
	frozen    Sequence
	builders  *queue.Queue // of *SpanBuilder
	length    int          // filled bytes: frozen + front builder's prefix
	remaining int          // unfilled capacity across all builders
	vec       bool         // exclusive vectored write outstanding
}

// NewBuilder returns an empty builder with no reserved capacity.
func NewBuilder() *Builder {
	return &Builder{builders: queue.New()}
}

// Len returns the number of filled bytes in O(1).
func (b *Builder) Len() int { return b.length }

// Remaining returns the unfilled reserved capacity.
func (b *Builder) Remaining() int { return b.remaining }

// Cap returns filled bytes plus unfilled capacity.
func (b *Builder) Cap() int { return b.length + b.remaining }

// Reserve tops up capacity from the provider until at least n unfilled
// bytes are available. It does nothing when enough capacity is already
// reserved. New capacity lands at the back of the writable region;
// order among empty builders is irrelevant until bytes are written.
func (b *Builder) Reserve(n int, p Provider) {
	b.assertAvailable()
	for b.remaining < n {
		blk := p.Alloc(n - b.remaining)
		if blk == nil || blk.Cap() == 0 {
			panic("buf: provider returned an empty block")
		}
		sb := newSpanBuilder(blk)
		b.builders.Add(sb)
		b.remaining += sb.Cap()
	}
}

// Write fills the head of available capacity with p. When capacity
// runs out before p is consumed it returns the bytes written and
// api.ErrCapacityExhausted; reserve first.
func (b *Builder) Write(p []byte) (int, error) {
	b.assertAvailable()
	n := b.fill(p)
	if n < len(p) {
		return n, api.ErrCapacityExhausted
	}
	return n, nil
}

// WriteByte writes a single byte.
func (b *Builder) WriteByte(c byte) error {
	_, err := b.Write([]byte{c})
	return err
}

// PutUint64 writes v in little-endian order.
func (b *Builder) PutUint64(v uint64) error {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	_, err := b.Write(tmp[:])
	return err
}

// PutUint32 writes v in little-endian order.
func (b *Builder) PutUint32(v uint32) error {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	_, err := b.Write(tmp[:])
	return err
}

// Peek returns a consumer view over every currently filled byte,
// frozen or not, without consuming anything and without freezing.
// The view shares blocks with the builder; it is valid until the
// builder is consumed or released.
func (b *Builder) Peek() *Sequence {
	b.assertAvailable()
	out := b.frozen.Clone()
	if b.builders.Length() > 0 {
		if sb := b.front(); sb.Filled() > 0 {
			out.pushBack(newSpan(sb.b, sb.off, sb.filled))
		}
	}
	return out
}

// Consume detaches the first n filled bytes as an immutable Sequence,
// freezing just enough of the front builder to cover n first. Whole
// frozen spans are moved; at most one span is sliced. Panics when n
// exceeds the filled length.
func (b *Builder) Consume(n int) *Sequence {
	b.assertAvailable()
	if n < 0 || n > b.length {
		panic("buf: consume past builder length")
	}
	out := NewSequence()
	if n == 0 {
		return out
	}
	b.ensureFrozen(n)
	need := n
	for need > 0 {
		front := b.frozen.front()
		if front.n <= need {
			sp := b.frozen.popFront()
			need -= sp.n
			out.pushBack(sp)
			continue
		}
		out.pushBack(front.Slice(0, need))
		front.off += need
		front.n -= need
		b.frozen.length -= need
		need = 0
	}
	b.length -= n
	return out
}

// ConsumeAll detaches every filled byte.
func (b *Builder) ConsumeAll() *Sequence {
	return b.Consume(b.length)
}

// Append adopts the sequence's spans as already-frozen content without
// copying bytes. Any unfrozen filled prefix is frozen first so logical
// order is preserved. seq is emptied.
func (b *Builder) Append(seq *Sequence) {
	b.assertAvailable()
	if seq.IsEmpty() {
		return
	}
	if b.builders.Length() > 0 {
		if sb := b.front(); sb.Filled() > 0 {
			b.freezeFront(sb.Filled())
		}
	}
	b.length += seq.Len()
	b.frozen.Append(seq)
}

// ExtendLifetime returns a guard over every block currently reachable
// from frozen spans and span builders. Permitted while a vectored
// write is outstanding: keeping memory alive is exactly what a pending
// operation needs.
func (b *Builder) ExtendLifetime() *MemoryGuard {
	var set blockSet
	for i := range b.frozen.spans {
		set.add(b.frozen.spans[i].b)
	}
	for i := 0; i < b.builders.Length(); i++ {
		set.add(b.builders.Get(i).(*SpanBuilder).b)
	}
	return newMemoryGuard(set)
}

// Release drops all frozen spans and reserved capacity. The builder
// remains usable as an empty value.
func (b *Builder) Release() {
	b.assertAvailable()
	b.frozen.Release()
	for b.builders.Length() > 0 {
		b.builders.Remove().(*SpanBuilder).release()
	}
	b.length = 0
	b.remaining = 0
}

// fill copies p into the head of available capacity, builder by
// builder, and returns the number of bytes written.
func (b *Builder) fill(p []byte) int {
	total := 0
	for len(p) > 0 && b.builders.Length() > 0 {
		n := copy(b.front().unfilledBytes(), p)
		p = p[n:]
		total += n
		b.recordFilled(n)
	}
	return total
}

// recordFilled accounts for n bytes freshly written at the head of
// available capacity, freezing and dequeuing builders as their
// capacity is exhausted. This is the only code path that moves the
// filled mark, for sequential writes and vectored commits alike.
func (b *Builder) recordFilled(n int) {
	for n > 0 {
		sb := b.front()
		step := min(n, sb.Unfilled())
		sb.filled += step
		b.length += step
		b.remaining -= step
		n -= step
		if sb.Unfilled() == 0 {
			b.freezeFront(sb.Filled())
		}
	}
}

// freezeFront freezes n bytes of the front builder's filled prefix
// into the frozen queue, dropping the builder once its capacity is
// spent. Neither Len nor Cap change: bytes only move between queues.
func (b *Builder) freezeFront(n int) {
	sb := b.front()
	b.frozen.pushBack(sb.freeze(n))
	if sb.Cap() == 0 {
		b.builders.Remove()
		sb.release()
	}
}

// ensureFrozen lazily freezes just enough of the front builder so that
// at least k bytes are frozen, preserving remaining unfilled capacity.
func (b *Builder) ensureFrozen(k int) {
	if need := k - b.frozen.length; need > 0 {
		b.freezeFront(need)
	}
}

func (b *Builder) front() *SpanBuilder {
	return b.builders.Peek().(*SpanBuilder)
}

func (b *Builder) assertAvailable() {
	if b.vec {
		panic("buf: builder is exclusively borrowed by a vectored write")
	}
}
