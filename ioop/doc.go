// Package ioop
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Asynchronous, completion-based elementary I/O protocol over the buf
// memory model. An operation drives one or more native calls: the
// caller-supplied callback issues exactly one native call per
// Submission, consuming its one-shot Token, and either reports a
// synchronous byte count or leaves the operation to be completed
// through the Registry when the platform's notification arrives.
//
// The protocol suspends exactly once per elementary operation, parking
// on a one-shot completion channel. Dropping the awaiting caller does
// not cancel an operation that has started: the registry entry keeps
// the memory guard and keep-alive payload alive until the real
// completion is delivered, because the platform may still be touching
// that memory. Timeouts are a caller concern, not implemented here.
package ioop
