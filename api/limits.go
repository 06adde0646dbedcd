// File: api/limits.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Hard transfer limits imposed on every platform facade.

package api

// MaxTransfer is the hard cap on the byte count of one elementary
// operation, regardless of how much buffer capacity is available.
// Facades may narrow this limit further; none may widen it.
const MaxTransfer uint64 = 1<<32 - 1
