// File: buf/sequence.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Ordered, possibly-discontiguous chain of spans presented as one
// logical byte stream.
//
// Spans are stored in reverse logical order: the logical front lives
// at the end of storage, so consuming from the front is an O(1)
// removal without shifting elements. Storage starts on an inline
// array and only spills to the heap past inlineSpans entries.

package buf

import (
	"bytes"
	"io"

	"github.com/momentics/hioload-buf/api"
)

const inlineSpans = 4

// Sequence is the consumer-side view over a chain of spans. The zero
// value is unusable; construct with NewSequence or obtain one from a
// Builder. A Sequence must not be copied by value after first use.
type Sequence struct {
	spans  []Span
	length int
	inline [inlineSpans]Span
}

// NewSequence returns an empty sequence.
func NewSequence() *Sequence {
	s := &Sequence{}
	s.spans = s.inline[:0]
	return s
}

// Len returns the total byte length in O(1).
func (s *Sequence) Len() int { return s.length }

// IsEmpty reports whether the sequence holds no bytes.
func (s *Sequence) IsEmpty() bool { return s.length == 0 }

// Chunk returns the first contiguous run of bytes, or nil when empty.
// No chunk-size guarantee is made: callers loop, consuming with
// Advance and re-requesting.
func (s *Sequence) Chunk() []byte {
	if len(s.spans) == 0 {
		return nil
	}
	return s.spans[len(s.spans)-1].Bytes()
}

// Advance consumes n bytes from the front, dropping fully-consumed
// spans and narrowing the new front span. Panics when n exceeds the
// remaining length.
func (s *Sequence) Advance(n int) {
	if !s.TryAdvance(n) {
		panic("buf: sequence advanced past remaining length")
	}
}

// TryAdvance is the checked form of Advance.
func (s *Sequence) TryAdvance(n int) bool {
	if n < 0 || n > s.length {
		return false
	}
	for n > 0 {
		front := &s.spans[len(s.spans)-1]
		if n < front.n {
			front.off += n
			front.n -= n
			s.length -= n
			return true
		}
		n -= front.n
		s.length -= front.n
		front.Release()
		s.spans = s.spans[:len(s.spans)-1]
	}
	return true
}

// Range returns the sub-sequence [from, to), sharing blocks with the
// receiver. Panics when bounds exceed the remaining length. An
// in-bounds empty range yields a valid empty sequence.
func (s *Sequence) Range(from, to int) *Sequence {
	out, ok := s.TryRange(from, to)
	if !ok {
		panic("buf: sequence range out of bounds")
	}
	return out
}

// TryRange is the checked form of Range.
//
// Two passes: the first walks spans to locate the subset and the
// leading/trailing trims, the second builds the narrowed span list.
// A span's contribution depends on the trims consumed by earlier
// spans, so a single lazy pass cannot size the result safely.
func (s *Sequence) TryRange(from, to int) (*Sequence, bool) {
	if from < 0 || from > to || to > s.length {
		return nil, false
	}
	out := NewSequence()
	if from == to {
		return out, true
	}
	i := len(s.spans) - 1
	skip := from
	for skip >= s.spans[i].n {
		skip -= s.spans[i].n
		i--
	}
	j := i
	avail := s.spans[i].n - skip
	for rem := to - from; rem > avail; {
		j--
		avail += s.spans[j].n
	}
	tail := s.spans[j].n - (avail - (to - from))

	out.spans = out.storageFor(i - j + 1)
	for k := j; k <= i; k++ {
		lo, hi := 0, s.spans[k].n
		if k == i {
			lo = skip
		}
		if k == j {
			hi = tail
		}
		out.spans = append(out.spans, s.spans[k].Slice(lo, hi))
	}
	out.length = to - from
	return out, true
}

// Append splices other onto the end of s without copying bytes: the
// other sequence's spans are reused ahead of the current storage,
// which is a logical append under reversed storage order. other is
// emptied; its spans now belong to s.
func (s *Sequence) Append(other *Sequence) {
	if other == s || other.length == 0 {
		return
	}
	if s.length == 0 {
		s.spans = append(s.storageFor(len(other.spans)), other.spans...)
	} else {
		merged := make([]Span, 0, len(other.spans)+len(s.spans))
		merged = append(merged, other.spans...)
		merged = append(merged, s.spans...)
		s.spans = merged
	}
	s.length += other.length
	other.detach()
}

// Equal reports pure content equality via a side-by-side byte walk.
// Two sequences with different span layouts but identical bytes
// compare equal; layout is never consulted.
func (s *Sequence) Equal(o *Sequence) bool {
	if s.length != o.length {
		return false
	}
	ai, ao := len(s.spans)-1, 0
	bi, bo := len(o.spans)-1, 0
	for rem := s.length; rem > 0; {
		ab := s.spans[ai].Bytes()[ao:]
		bb := o.spans[bi].Bytes()[bo:]
		n := min(len(ab), len(bb))
		if !bytes.Equal(ab[:n], bb[:n]) {
			return false
		}
		ao += n
		bo += n
		rem -= n
		if ao == s.spans[ai].n {
			ai--
			ao = 0
		}
		if bo == o.spans[bi].n {
			bi--
			bo = 0
		}
	}
	return true
}

// WalkMeta yields each chunk's block metadata in logical order over a
// private cursor, leaving the sequence untouched. The walk stops when
// fn returns false.
func (s *Sequence) WalkMeta(fn func(api.BlockMeta) bool) {
	for i := len(s.spans) - 1; i >= 0; i-- {
		if !fn(s.spans[i].Meta()) {
			return
		}
	}
}

// Bytes returns the whole content as one contiguous slice. Zero-copy
// only when the sequence resolves to exactly one span; otherwise the
// bytes are flattened into a fresh allocation, since one contiguous
// slice cannot reference disjoint regions.
func (s *Sequence) Bytes() []byte {
	switch len(s.spans) {
	case 0:
		return nil
	case 1:
		return s.spans[0].Bytes()
	}
	out := make([]byte, 0, s.length)
	for i := len(s.spans) - 1; i >= 0; i-- {
		out = append(out, s.spans[i].Bytes()...)
	}
	return out
}

// Gather returns up to maxChunks read-only chunk views from the front,
// with their aggregate length capped at maxBytes. Views are presented
// in strict front-to-back logical order with no gaps.
func (s *Sequence) Gather(maxChunks, maxBytes int) [][]byte {
	out := make([][]byte, 0, min(maxChunks, len(s.spans)))
	budget := maxBytes
	for i := len(s.spans) - 1; i >= 0 && len(out) < maxChunks && budget > 0; i-- {
		view := s.spans[i].Bytes()
		if len(view) > budget {
			view = view[:budget]
		}
		out = append(out, view)
		budget -= len(view)
	}
	return out
}

// Clone returns an independent cursor over the same blocks.
func (s *Sequence) Clone() *Sequence {
	out := NewSequence()
	out.spans = out.storageFor(len(s.spans))
	for i := range s.spans {
		out.spans = append(out.spans, s.spans[i].Clone())
	}
	out.length = s.length
	return out
}

// ExtendLifetime returns a guard keeping every reachable block alive
// independent of this sequence's own lifetime.
func (s *Sequence) ExtendLifetime() *MemoryGuard {
	var set blockSet
	for i := range s.spans {
		set.add(s.spans[i].b)
	}
	return newMemoryGuard(set)
}

// Reader returns an io.Reader draining a private clone; the sequence
// itself is left untouched.
func (s *Sequence) Reader() io.Reader {
	return &seqReader{s: s.Clone()}
}

// Release drops every span's block reference and empties the
// sequence. The sequence remains usable as an empty value.
func (s *Sequence) Release() {
	for i := range s.spans {
		s.spans[i].Release()
	}
	s.detach()
}

func (s *Sequence) detach() {
	s.spans = s.inline[:0]
	s.length = 0
}

// pushFront places sp at the logical front (storage end).
func (s *Sequence) pushFront(sp Span) {
	s.ensureStorage()
	s.spans = append(s.spans, sp)
	s.length += sp.n
}

// pushBack places sp at the logical back (storage start).
func (s *Sequence) pushBack(sp Span) {
	s.ensureStorage()
	s.spans = append(s.spans, Span{})
	copy(s.spans[1:], s.spans)
	s.spans[0] = sp
	s.length += sp.n
}

// popFront removes and returns the logical front span.
func (s *Sequence) popFront() Span {
	sp := s.spans[len(s.spans)-1]
	s.spans[len(s.spans)-1] = Span{}
	s.spans = s.spans[:len(s.spans)-1]
	s.length -= sp.n
	return sp
}

// front returns the logical front span for in-place narrowing.
func (s *Sequence) front() *Span {
	return &s.spans[len(s.spans)-1]
}

func (s *Sequence) ensureStorage() {
	if s.spans == nil {
		s.spans = s.inline[:0]
	}
}

func (s *Sequence) storageFor(n int) []Span {
	if n <= inlineSpans {
		return s.inline[:0]
	}
	return make([]Span, 0, n)
}

type seqReader struct {
	s *Sequence
}

func (r *seqReader) Read(p []byte) (int, error) {
	if r.s.IsEmpty() {
		return 0, io.EOF
	}
	n := copy(p, r.s.Chunk())
	r.s.Advance(n)
	return n, nil
}
