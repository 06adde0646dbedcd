// File: pool/slab_provider.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Slab provider: fixed-size block allocation per size class, with
// channel-backed freelists and allocation accounting.

package pool

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-buf/buf"
)

// DefaultClasses are the slab sizes used when none are given.
var DefaultClasses = []int{512, 4 << 10, 64 << 10, 1 << 20}

const freelistDepth = 1024

// Stats aggregates allocation/reuse accounting for observability.
type Stats struct {
	TotalAlloc int64
	TotalFree  int64
	InUse      int64
}

// SlabMeta is the metadata a SlabProvider attaches to its blocks.
type SlabMeta struct {
	Node  int
	Class int
}

// NUMANode returns the node the block was allocated for.
func (m SlabMeta) NUMANode() int { return m.Node }

// SlabProvider implements buf.Provider over size-class freelists.
// Alloc rounds the hint up to the next class, so it may over-allocate;
// hints above the largest class are served with a dedicated
// unrecycled block.
type SlabProvider struct {
	node    int
	classes []int

	mu    sync.Mutex
	lists map[int]chan []byte

	totalAlloc atomic.Int64
	totalFree  atomic.Int64
	inUse      atomic.Int64
}

// NewSlabProvider creates a provider for one NUMA node (-1 when
// locality does not matter). classes must be ascending; empty means
// DefaultClasses.
func NewSlabProvider(node int, classes ...int) *SlabProvider {
	if len(classes) == 0 {
		classes = DefaultClasses
	}
	return &SlabProvider{
		node:    node,
		classes: classes,
		lists:   make(map[int]chan []byte),
	}
}

// Alloc implements buf.Provider.
func (p *SlabProvider) Alloc(sizeHint int) *buf.Block {
	p.totalAlloc.Add(1)
	p.inUse.Add(1)

	class := p.classFor(sizeHint)
	if class == 0 {
		// Oversized request: not recyclable through a freelist.
		return buf.NewBlock(make([]byte, sizeHint), SlabMeta{Node: p.node}, p.retire)
	}
	var data []byte
	select {
	case data = <-p.freelist(class):
	default:
		data = make([]byte, class)
	}
	return buf.NewBlock(data, SlabMeta{Node: p.node, Class: class}, p.recycle)
}

// Stats exposes allocation accounting.
func (p *SlabProvider) Stats() Stats {
	return Stats{
		TotalAlloc: p.totalAlloc.Load(),
		TotalFree:  p.totalFree.Load(),
		InUse:      p.inUse.Load(),
	}
}

func (p *SlabProvider) classFor(n int) int {
	for _, c := range p.classes {
		if n <= c {
			return c
		}
	}
	return 0
}

// recycle is the release hook for class-sized blocks: memory goes back
// to its freelist, or to the GC when the freelist is full.
func (p *SlabProvider) recycle(b *buf.Block) {
	p.totalFree.Add(1)
	p.inUse.Add(-1)
	select {
	case p.freelist(b.Cap()) <- b.Bytes():
	default:
	}
}

// retire is the release hook for oversized blocks.
func (p *SlabProvider) retire(*buf.Block) {
	p.totalFree.Add(1)
	p.inUse.Add(-1)
}

func (p *SlabProvider) freelist(class int) chan []byte {
	p.mu.Lock()
	ch, ok := p.lists[class]
	if !ok {
		ch = make(chan []byte, freelistDepth)
		p.lists[class] = ch
	}
	p.mu.Unlock()
	return ch
}

var _ buf.Provider = (*SlabProvider)(nil)
