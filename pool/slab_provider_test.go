package pool_test

import (
	"testing"

	"github.com/momentics/hioload-buf/pool"
)

func TestSlabAllocRoundsUpToClass(t *testing.T) {
	p := pool.NewSlabProvider(0, 64, 256, 1024)

	for _, tc := range []struct{ hint, class int }{
		{1, 64}, {64, 64}, {65, 256}, {256, 256}, {1000, 1024},
	} {
		blk := p.Alloc(tc.hint)
		if blk.Cap() != tc.class {
			t.Errorf("Alloc(%d): cap = %d, want %d", tc.hint, blk.Cap(), tc.class)
		}
		blk.Release()
	}
}

func TestSlabFreelistReuse(t *testing.T) {
	p := pool.NewSlabProvider(0, 64)

	blk := p.Alloc(30)
	base := &blk.Bytes()[0]
	blk.Release()

	again := p.Alloc(50)
	defer again.Release()
	if &again.Bytes()[0] != base {
		t.Error("released block memory was not reused from the freelist")
	}
}

func TestSlabOversizedNotRecycled(t *testing.T) {
	p := pool.NewSlabProvider(0, 64)

	blk := p.Alloc(500)
	if blk.Cap() != 500 {
		t.Fatalf("oversized cap = %d, want exact 500", blk.Cap())
	}
	base := &blk.Bytes()[0]
	blk.Release()

	next := p.Alloc(500)
	defer next.Release()
	if &next.Bytes()[0] == base {
		t.Error("oversized block must not come back from a freelist")
	}
}

func TestSlabStatsBalance(t *testing.T) {
	p := pool.NewSlabProvider(1)

	blocks := make([]interface{ Release() }, 0, 5)
	for i := 0; i < 5; i++ {
		blocks = append(blocks, p.Alloc(100))
	}
	s := p.Stats()
	if s.TotalAlloc != 5 || s.InUse != 5 {
		t.Fatalf("stats after alloc: %+v", s)
	}

	for _, b := range blocks {
		b.Release()
	}
	s = p.Stats()
	if s.TotalFree != 5 || s.InUse != 0 {
		t.Fatalf("stats after release: %+v", s)
	}
}

func TestSlabMetaCarriesNode(t *testing.T) {
	blk := pool.NewSlabProvider(3).Alloc(100)
	defer blk.Release()
	if blk.Meta().NUMANode() != 3 {
		t.Errorf("node = %d, want 3", blk.Meta().NUMANode())
	}
}

func TestHeapProviderExactSize(t *testing.T) {
	blk := pool.HeapProvider{}.Alloc(77)
	defer blk.Release()
	if blk.Cap() != 77 {
		t.Errorf("cap = %d, want 77", blk.Cap())
	}
	if blk.Meta().NUMANode() != -1 {
		t.Errorf("node = %d, want -1", blk.Meta().NUMANode())
	}
}
