// File: ioop/token.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// One-time-consumable correlation handle between an operation and its
// native platform call.

package ioop

import "sync/atomic"

var tokenIDs atomic.Uint64

// Token correlates exactly one native call with exactly one pending
// operation. A callback must consume it exactly once via Take; both
// consuming it twice and completing without consuming it are defects
// in the callback, checked fatally because a stray correlation can
// route a completion into the wrong memory.
type Token struct {
	id    uint64
	taken bool
}

func newToken() *Token {
	return &Token{id: tokenIDs.Add(1)}
}

// Take consumes the token and returns the correlation id to hand to
// the platform call. Panics on a second consumption.
func (t *Token) Take() uint64 {
	if t.taken {
		panic("ioop: token consumed twice")
	}
	t.taken = true
	return t.id
}

// Taken reports whether the token has been consumed.
func (t *Token) Taken() bool { return t.taken }
