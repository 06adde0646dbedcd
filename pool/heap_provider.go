// File: pool/heap_provider.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Plain heap provider: every allocation is fresh and the GC reclaims
// it. Fallback for paths where recycling is not worth the bookkeeping.

package pool

import "github.com/momentics/hioload-buf/buf"

// HeapProvider implements buf.Provider with bare allocations.
type HeapProvider struct{}

type heapMeta struct{}

func (heapMeta) NUMANode() int { return -1 }

// Alloc implements buf.Provider.
func (HeapProvider) Alloc(sizeHint int) *buf.Block {
	return buf.NewBlock(make([]byte, sizeHint), heapMeta{}, nil)
}

var _ buf.Provider = HeapProvider{}
