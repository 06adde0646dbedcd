// File: buf/provider.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Memory provider capability: the only allocator surface this model
// depends on.

package buf

// Provider supplies fresh blocks given a size hint. Implementations
// may over-allocate relative to the request (slab classes, hugepages)
// or hand out fixed-size blocks smaller than the hint; Builder.Reserve
// keeps asking until it holds enough capacity. The returned block's
// initial reference belongs to the caller.
type Provider interface {
	Alloc(sizeHint int) *Block
}
