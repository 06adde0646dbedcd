// File: buf/span_builder.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Mutable counterpart of Span: a cursor over block memory that has
// been partially filled. Freezing converts the filled prefix into an
// immutable span and keeps the tail capacity.

package buf

// SpanBuilder tracks how much of a block region has been written.
// Invariant: 0 <= filled <= cap. All mutation funnels through Builder,
// which owns the freeze bookkeeping.
type SpanBuilder struct {
	b      *Block
	off    int
	filled int
	cap    int
}

// newSpanBuilder adopts the caller's block reference and covers the
// block's whole capacity.
func newSpanBuilder(b *Block) *SpanBuilder {
	return &SpanBuilder{b: b, cap: b.Cap()}
}

// Filled returns the number of written bytes not yet frozen.
func (sb *SpanBuilder) Filled() int { return sb.filled }

// Cap returns the total region length, filled plus unfilled.
func (sb *SpanBuilder) Cap() int { return sb.cap }

// Unfilled returns the remaining writable capacity.
func (sb *SpanBuilder) Unfilled() int { return sb.cap - sb.filled }

// unfilledBytes exposes the writable tail of the region.
func (sb *SpanBuilder) unfilledBytes() []byte {
	return sb.b.window(sb.off+sb.filled, sb.cap-sb.filled)
}

// freeze splits off exactly n filled bytes as an immutable span and
// re-anchors the builder over the tail. Neither the builder's total
// bytes nor its unfilled capacity change: bytes only move between the
// mutable and frozen sides.
func (sb *SpanBuilder) freeze(n int) Span {
	if n <= 0 || n > sb.filled {
		panic("buf: freeze outside filled prefix")
	}
	sp := newSpan(sb.b, sb.off, n)
	sb.off += n
	sb.filled -= n
	sb.cap -= n
	return sp
}

// release drops the builder's block reference.
func (sb *SpanBuilder) release() {
	if sb.b != nil {
		sb.b.release()
		sb.b = nil
		sb.cap = 0
		sb.filled = 0
	}
}
