// File: buf/span.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Immutable, bounds-checked, advancing window into one block.

package buf

import "github.com/momentics/hioload-buf/api"

// Span is a window into a Block: cheap to clone, sharing the block
// through its reference count. Slicing and advancing derive narrower
// windows over the same memory in O(1).
//
// Out-of-bounds access on Slice and Advance is a programmer error and
// panics; callers that have not pre-validated bounds use the Try forms.
type Span struct {
	b   *Block
	off int
	n   int
}

// newSpan materializes a window and takes a block reference.
// Materialized spans are never empty.
func newSpan(b *Block, off, n int) Span {
	if n <= 0 {
		panic("buf: empty span materialized")
	}
	b.acquire()
	return Span{b: b, off: off, n: n}
}

// Len returns the remaining length of the window.
func (s *Span) Len() int { return s.n }

// Bytes returns the window contents without copying. The slice is
// valid for reading as long as the span holds its block reference.
func (s *Span) Bytes() []byte { return s.b.window(s.off, s.n) }

// Meta returns the underlying block's provider metadata, or nil.
func (s *Span) Meta() api.BlockMeta { return s.b.Meta() }

// Slice returns the narrower window [from, to) sharing the block.
// Panics when bounds exceed the span.
func (s *Span) Slice(from, to int) Span {
	sp, ok := s.TrySlice(from, to)
	if !ok {
		panic("buf: span slice out of bounds")
	}
	return sp
}

// TrySlice is the checked form of Slice. ok is false when bounds
// exceed the span; an in-bounds empty range is not materializable as a
// span and also reports false.
func (s *Span) TrySlice(from, to int) (Span, bool) {
	if from < 0 || to > s.n || from >= to {
		return Span{}, false
	}
	return newSpan(s.b, s.off+from, to-from), true
}

// Advance narrows the window in place by consuming n bytes from the
// front. Panics when n exceeds the remaining length. Advancing the
// full length leaves a spent span whose only valid operation is
// Release.
func (s *Span) Advance(n int) {
	if !s.TryAdvance(n) {
		panic("buf: span advanced past remaining length")
	}
}

// TryAdvance is the checked form of Advance.
func (s *Span) TryAdvance(n int) bool {
	if n < 0 || n > s.n {
		return false
	}
	s.off += n
	s.n -= n
	return true
}

// Clone returns an identical window holding its own block reference.
func (s *Span) Clone() Span {
	return newSpan(s.b, s.off, s.n)
}

// Release drops the span's block reference. The span must not be used
// afterwards.
func (s *Span) Release() {
	if s.b != nil {
		s.b.release()
		s.b = nil
		s.n = 0
	}
}
