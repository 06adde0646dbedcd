// File: api/handle.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Conditional access to I/O primitives whose owner may close them at
// any point before an operation starts.

package api

// IOHandle abstracts the OS-level identity of an I/O primitive
// (socket, file, pipe) for compatibility with custom event loops and
// zero-copy pipelines.
type IOHandle interface {
	// RawFD returns the underlying OS-level file descriptor or handle.
	RawFD() uintptr
}

// WeakRef is a non-owning reference to an I/O primitive. Get upgrades
// it for the duration of one elementary operation; ok is false when
// the last owning reference is already gone, in which case no call
// must be issued against the handle.
type WeakRef interface {
	Get() (h IOHandle, ok bool)
}
