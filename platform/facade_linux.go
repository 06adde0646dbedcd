// File: platform/facade_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux facade: a service goroutine drains submissions and performs
// readv/writev family calls, one native call per consumed token, then
// posts the completion to the registry.

//go:build linux

package platform

import (
	"sync"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/ioop"
)

const submitDepth = 256

type request struct {
	fd      int
	read    bool
	regions [][]byte
	offset  int64
	hasOff  bool
	token   uint64
}

// Facade executes submissions against real file descriptors.
type Facade struct {
	reg  *ioop.Registry
	subs chan request
	quit chan struct{}
	done chan struct{}
	once sync.Once
}

// New starts a facade posting completions to reg.
func New(reg *ioop.Registry) *Facade {
	f := &Facade{
		reg:  reg,
		subs: make(chan request, submitDepth),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go f.serve()
	return f
}

// MaxTransfer returns this facade's per-call byte limit.
func (f *Facade) MaxTransfer() uint64 { return api.MaxTransfer }

// SubmitRead returns the callback wiring a Read operation to this facade.
func (f *Facade) SubmitRead() ioop.ReadCallback {
	return func(s *ioop.Submission) error { return f.submit(s, true) }
}

// SubmitWrite returns the callback wiring a Write operation to this facade.
func (f *Facade) SubmitWrite() ioop.WriteCallback {
	return func(s *ioop.Submission) error { return f.submit(s, false) }
}

// Close stops the service goroutine. Queued submissions are completed
// with api.ErrFacadeClosed rather than dropped, so no awaiting
// operation parks forever.
func (f *Facade) Close() {
	f.once.Do(func() { close(f.quit) })
	<-f.done
}

func (f *Facade) submit(s *ioop.Submission, read bool) error {
	select {
	case <-f.quit:
		return api.ErrFacadeClosed
	default:
	}
	off, hasOff := s.Offset()
	req := request{
		fd:      int(s.Handle().RawFD()),
		read:    read,
		regions: s.Regions(),
		offset:  off,
		hasOff:  hasOff,
		token:   s.Token().Take(),
	}
	select {
	case f.subs <- req:
		return nil
	case <-f.quit:
		f.reg.Complete(req.token, 0, api.ErrFacadeClosed)
		return nil
	}
}

func (f *Facade) serve() {
	defer close(f.done)
	for {
		select {
		case req := <-f.subs:
			n, err := execute(req)
			f.reg.Complete(req.token, uint64(n), err)
		case <-f.quit:
			f.drain()
			return
		}
	}
}

func (f *Facade) drain() {
	for {
		select {
		case req := <-f.subs:
			f.reg.Complete(req.token, 0, api.ErrFacadeClosed)
		default:
			return
		}
	}
}

// execute performs exactly one native vectored call.
func execute(req request) (int, error) {
	var n int
	var err error
	switch {
	case req.read && req.hasOff:
		n, err = unix.Preadv(req.fd, req.regions, req.offset)
	case req.read:
		n, err = unix.Readv(req.fd, req.regions)
	case req.hasOff:
		n, err = unix.Pwritev(req.fd, req.regions, req.offset)
	default:
		n, err = unix.Writev(req.fd, req.regions)
	}
	if err != nil {
		return 0, api.NewError(api.ErrCodePlatform, "vectored transfer failed").
			WithContext("errno", err)
	}
	return n, nil
}
