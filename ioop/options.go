// File: ioop/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Functional options shared by Read and Write operations.

package ioop

import "github.com/momentics/hioload-buf/api"

// DefaultBatchLimit is the default number of contiguous chunks a write
// gathers into one elementary operation.
const DefaultBatchLimit = 8

type opOptions struct {
	offset      int64
	hasOffset   bool
	keep        any
	maxTransfer uint64
	batchLimit  int
}

func defaultOptions() opOptions {
	return opOptions{
		maxTransfer: api.MaxTransfer,
		batchLimit:  DefaultBatchLimit,
	}
}

// Option configures an operation.
type Option func(*opOptions)

// WithOffset seeks the target primitive to off for the first
// elementary call; writes advance it per batch afterwards.
func WithOffset(off int64) Option {
	return func(o *opOptions) {
		o.offset = off
		o.hasOffset = true
	}
}

// WithKeepAlive attaches an arbitrary payload kept alive until the
// operation's real completion arrives.
func WithKeepAlive(payload any) Option {
	return func(o *opOptions) { o.keep = payload }
}

// WithMaxTransfer narrows the per-call byte limit below the platform
// hard cap. Values above api.MaxTransfer are clamped; the cap can
// never be widened.
func WithMaxTransfer(n uint64) Option {
	return func(o *opOptions) {
		o.maxTransfer = min(n, api.MaxTransfer)
	}
}

// WithBatchLimit caps how many contiguous chunks a write gathers per
// elementary operation.
func WithBatchLimit(n int) Option {
	return func(o *opOptions) {
		if n > 0 {
			o.batchLimit = n
		}
	}
}
