// File: api/meta.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Provider-attached block metadata.

package api

// BlockMeta marks metadata a memory provider attaches to a block.
// Consumers inspect it without knowing the concrete provider: the
// common capability is the NUMA node the memory lives on; providers
// expose anything richer through their own concrete type, which
// callers downcast to.
type BlockMeta interface {
	// NUMANode returns the NUMA node the block was allocated from,
	// or -1 when the provider is not NUMA-aware.
	NUMANode() int
}
