// File: fake/facade.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Recording platform facade: accepts submissions like a real platform
// would, consumes their tokens, and lets the test post completions
// through the registry at its leisure.

package fake

import (
	"github.com/momentics/hioload-buf/ioop"
)

// Record is one accepted submission.
type Record struct {
	Token   uint64
	Offered uint64
	Regions [][]byte
}

// Facade is a fake platform facade for asynchronous-path tests.
// Submissions are announced on Submitted; the test then fills or
// inspects the regions and calls Complete.
type Facade struct {
	reg       *ioop.Registry
	Submitted chan Record
}

// NewFacade creates a facade posting completions to reg.
func NewFacade(reg *ioop.Registry) *Facade {
	return &Facade{reg: reg, Submitted: make(chan Record, 16)}
}

// SubmitRead returns a callback that accepts the native call and
// leaves the operation pending.
func (f *Facade) SubmitRead() ioop.ReadCallback {
	return func(s *ioop.Submission) error {
		f.accept(s)
		return nil
	}
}

// SubmitWrite returns a callback that accepts the native call and
// leaves the operation pending.
func (f *Facade) SubmitWrite() ioop.WriteCallback {
	return func(s *ioop.Submission) error {
		f.accept(s)
		return nil
	}
}

// Complete posts the completion notification for a recorded token.
func (f *Facade) Complete(token uint64, n uint64, err error) bool {
	return f.reg.Complete(token, n, err)
}

func (f *Facade) accept(s *ioop.Submission) {
	f.Submitted <- Record{
		Token:   s.Token().Take(),
		Offered: s.Offered(),
		Regions: s.Regions(),
	}
}
