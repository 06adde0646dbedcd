// File: ioop/submission.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Arguments handed to an operation callback for one elementary
// platform call.

package ioop

import "github.com/momentics/hioload-buf/api"

// Submission carries everything a callback needs to issue exactly one
// native call: the memory regions, the upgraded target handle, an
// optional seek offset, and the one-shot correlation token. For reads
// the regions are writable scatter targets; for writes they are
// read-only gather views in strict front-to-back logical order with
// no gaps.
type Submission struct {
	regions [][]byte
	handle  api.IOHandle
	offset  int64
	hasOff  bool
	tok     *Token
	syncN   uint64
	syncSet bool
}

// Regions returns the memory regions of this elementary call.
func (s *Submission) Regions() [][]byte { return s.regions }

// Handle returns the upgraded target primitive.
func (s *Submission) Handle() api.IOHandle { return s.handle }

// Offset returns the seek offset and whether one was requested.
func (s *Submission) Offset() (int64, bool) { return s.offset, s.hasOff }

// Token returns the one-shot correlation token. The callback must
// consume it via Take exactly once.
func (s *Submission) Token() *Token { return s.tok }

// Offered returns the aggregate region length in bytes.
func (s *Submission) Offered() uint64 {
	var n uint64
	for _, r := range s.regions {
		n += uint64(len(r))
	}
	return n
}

// CompleteSync records that the native call completed synchronously
// with n bytes. Without this call the operation is treated as pending
// and awaits a notification through the registry.
func (s *Submission) CompleteSync(n uint64) {
	if s.syncSet {
		panic("ioop: synchronous completion reported twice")
	}
	s.syncN = n
	s.syncSet = true
}
