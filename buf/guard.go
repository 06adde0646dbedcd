// File: buf/guard.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Keep-alive capability over a set of blocks, independent of the
// Sequence or Builder the snapshot was taken from. A pending platform
// operation holds a guard so its target memory cannot return to the
// provider before the real completion notification arrives.

package buf

import "sync/atomic"

// MemoryGuard pins a block set. Release is idempotent and safe to call
// from a completion goroutine.
type MemoryGuard struct {
	blocks   []*Block
	released atomic.Bool
}

func newMemoryGuard(set blockSet) *MemoryGuard {
	for _, b := range set.blocks {
		b.acquire()
	}
	return &MemoryGuard{blocks: set.blocks}
}

// Release drops the guard's block references.
func (g *MemoryGuard) Release() {
	if !g.released.CompareAndSwap(false, true) {
		return
	}
	for _, b := range g.blocks {
		b.release()
	}
	g.blocks = nil
}

// blockSet deduplicates blocks; span chains are short, so a linear
// scan beats a map here.
type blockSet struct {
	blocks []*Block
}

func (s *blockSet) add(b *Block) {
	for _, x := range s.blocks {
		if x == b {
			return
		}
	}
	s.blocks = append(s.blocks, b)
}
