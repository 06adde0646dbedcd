// Package fake
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fake implementations for testing: predictable providers, closable
// handles, and a recording platform facade.
package fake

import (
	"sync"

	"github.com/momentics/hioload-buf/buf"
)

// Meta is the metadata a fake Provider attaches to its blocks.
type Meta struct {
	Node  int
	Seq   int // allocation order, starting at 1
	Label string
}

// NUMANode implements api.BlockMeta.
func (m Meta) NUMANode() int { return m.Node }

// Provider hands out fixed-size blocks and counts alloc/release
// traffic. BlockSize == 0 means "exactly the hint".
type Provider struct {
	BlockSize int
	Label     string

	mu       sync.Mutex
	allocs   int
	releases int
}

// Alloc implements buf.Provider.
func (p *Provider) Alloc(sizeHint int) *buf.Block {
	p.mu.Lock()
	p.allocs++
	seq := p.allocs
	p.mu.Unlock()

	size := p.BlockSize
	if size == 0 {
		size = sizeHint
	}
	return buf.NewBlock(make([]byte, size), Meta{Node: -1, Seq: seq, Label: p.Label}, p.released)
}

// Allocs returns how many blocks were handed out.
func (p *Provider) Allocs() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allocs
}

// Releases returns how many blocks came back through release hooks.
func (p *Provider) Releases() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.releases
}

func (p *Provider) released(*buf.Block) {
	p.mu.Lock()
	p.releases++
	p.mu.Unlock()
}
