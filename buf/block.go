// File: buf/block.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Reference-counted raw memory allocation owned by a provider.

package buf

import (
	"sync/atomic"

	"github.com/momentics/hioload-buf/api"
)

// Block is one raw allocation handed out by a Provider. Every Span and
// SpanBuilder referencing the block shares it through the reference
// count; when the last reference drops, the release hook returns the
// memory to its provider.
type Block struct {
	data []byte
	meta api.BlockMeta
	free func(*Block)
	refs atomic.Int64
}

// NewBlock wraps a provider allocation. meta and free may be nil.
// The caller owns the initial reference.
func NewBlock(data []byte, meta api.BlockMeta, free func(*Block)) *Block {
	b := &Block{data: data, meta: meta, free: free}
	b.refs.Store(1)
	return b
}

// Cap returns the capacity of the allocation.
func (b *Block) Cap() int { return len(b.data) }

// Meta returns the provider-attached metadata, or nil.
func (b *Block) Meta() api.BlockMeta { return b.meta }

// Bytes returns the full backing slice. Providers use it to recycle
// the memory from a release hook; everyone else goes through spans.
func (b *Block) Bytes() []byte { return b.data }

// Span materializes a window over the block, taking a new reference.
// Panics when the window is empty or out of block bounds.
func (b *Block) Span(off, n int) Span {
	if off < 0 || n <= 0 || off+n > len(b.data) {
		panic("buf: span out of block bounds")
	}
	return newSpan(b, off, n)
}

// Release drops the caller's reference, typically the initial one from
// NewBlock. Spans and builders drop their own.
func (b *Block) Release() { b.release() }

// window returns the sub-slice [off, off+n) with capacity clamped so
// appends can never scribble past the window.
func (b *Block) window(off, n int) []byte {
	return b.data[off : off+n : off+n]
}

func (b *Block) acquire() {
	b.refs.Add(1)
}

func (b *Block) release() {
	switch n := b.refs.Add(-1); {
	case n == 0:
		if b.free != nil {
			b.free(b)
		}
	case n < 0:
		panic("buf: block released more times than acquired")
	}
}
