package ioop_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/buf"
	"github.com/momentics/hioload-buf/fake"
	"github.com/momentics/hioload-buf/ioop"
)

func writeSeq(t *testing.T, data []byte) *buf.Sequence {
	t.Helper()
	b := buf.NewBuilder()
	b.Reserve(len(data), &fake.Provider{BlockSize: 10})
	if _, err := b.Write(data); err != nil {
		t.Fatalf("write: %v", err)
	}
	return b.ConsumeAll()
}

func flatten(regions [][]byte) []byte {
	var out []byte
	for _, r := range regions {
		out = append(out, r...)
	}
	return out
}

// acceptAll writes every offered byte synchronously, recording each
// elementary call's gathered payload and offset.
type acceptAll struct {
	payloads [][]byte
	offsets  []int64
}

func (a *acceptAll) cb(s *ioop.Submission) error {
	a.payloads = append(a.payloads, flatten(s.Regions()))
	off, _ := s.Offset()
	a.offsets = append(a.offsets, off)
	s.Token().Take()
	s.CompleteSync(s.Offered())
	return nil
}

func TestWriteFullPayload(t *testing.T) {
	payload := pattern(25)
	seq := writeSeq(t, payload)
	defer seq.Release()
	h := fake.NewHandle(20)

	rec := &acceptAll{}
	n, err := ioop.NewWrite(h.WeakRef(), seq, ioop.NewRegistry()).Do(rec.cb)
	require.NoError(t, err)
	require.Equal(t, uint64(25), n)
	require.True(t, seq.IsEmpty())

	// Three 10-byte chunks fit one default batch.
	require.Len(t, rec.payloads, 1)
	require.Equal(t, payload, rec.payloads[0])
}

func TestWriteBatchLimitSplits(t *testing.T) {
	payload := pattern(25)
	seq := writeSeq(t, payload)
	defer seq.Release()

	rec := &acceptAll{}
	n, err := ioop.NewWrite(fake.NewHandle(21).WeakRef(), seq, ioop.NewRegistry(),
		ioop.WithBatchLimit(2), ioop.WithOffset(100)).Do(rec.cb)
	require.NoError(t, err)
	require.Equal(t, uint64(25), n)

	require.Equal(t, [][]byte{payload[:20], payload[20:]}, rec.payloads)
	require.Equal(t, []int64{100, 120}, rec.offsets)
}

func TestWriteMaxTransferSplits(t *testing.T) {
	payload := pattern(25)
	seq := writeSeq(t, payload)
	defer seq.Release()

	rec := &acceptAll{}
	n, err := ioop.NewWrite(fake.NewHandle(22).WeakRef(), seq, ioop.NewRegistry(),
		ioop.WithMaxTransfer(12)).Do(rec.cb)
	require.NoError(t, err)
	require.Equal(t, uint64(25), n)
	// 12-byte cap slices mid-chunk; the next batch resumes with no gap.
	require.Equal(t, [][]byte{payload[:12], payload[12:24], payload[24:]}, rec.payloads)
}

func TestWriteShortIsContractViolation(t *testing.T) {
	seq := writeSeq(t, pattern(25))
	defer seq.Release()
	reg := ioop.NewRegistry()

	n, err := ioop.NewWrite(fake.NewHandle(23).WeakRef(), seq, reg).
		Do(func(s *ioop.Submission) error {
			s.Token().Take()
			s.CompleteSync(s.Offered() - 7)
			return nil
		})
	if !errors.Is(err, api.ErrContractViolation) {
		t.Fatalf("err = %v, want ErrContractViolation", err)
	}
	if n != 18 {
		t.Errorf("accounted bytes = %d, want 18", n)
	}
	if seq.Len() != 7 {
		t.Errorf("unsent remainder = %d, want 7", seq.Len())
	}
	if reg.Pending() != 0 {
		t.Errorf("pending = %d", reg.Pending())
	}
}

func TestWriteOverReportPanics(t *testing.T) {
	seq := writeSeq(t, pattern(10))
	defer seq.Release()
	defer func() {
		if recover() == nil {
			t.Fatal("writing more than offered must panic")
		}
	}()
	ioop.NewWrite(fake.NewHandle(24).WeakRef(), seq, ioop.NewRegistry()).
		Do(func(s *ioop.Submission) error {
			s.Token().Take()
			s.CompleteSync(s.Offered() + 1)
			return nil
		})
}

func TestWriteEmptyPayloadPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("empty write must panic at construction")
		}
	}()
	ioop.NewWrite(fake.NewHandle(25).WeakRef(), buf.NewSequence(), ioop.NewRegistry())
}

func TestWriteCanceledMidStream(t *testing.T) {
	seq := writeSeq(t, pattern(25))
	defer seq.Release()
	h := fake.NewHandle(26)

	calls := 0
	n, err := ioop.NewWrite(h.WeakRef(), seq, ioop.NewRegistry(),
		ioop.WithBatchLimit(1)).
		Do(func(s *ioop.Submission) error {
			calls++
			s.Token().Take()
			s.CompleteSync(s.Offered())
			h.Close() // target dies between elementary operations
			return nil
		})
	if !errors.Is(err, api.ErrCanceled) {
		t.Fatalf("err = %v, want ErrCanceled", err)
	}
	if calls != 1 || n != 10 {
		t.Errorf("calls = %d, accounted = %d", calls, n)
	}
	if seq.Len() != 15 {
		t.Errorf("remainder = %d, want 15", seq.Len())
	}
}

func TestWriteAsynchronous(t *testing.T) {
	payload := pattern(25)
	seq := writeSeq(t, payload)
	defer seq.Release()
	reg := ioop.NewRegistry()
	f := fake.NewFacade(reg)

	var sent []byte
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 3; i++ {
			rec := <-f.Submitted
			sent = append(sent, flatten(rec.Regions)...)
			f.Complete(rec.Token, rec.Offered, nil)
		}
	}()

	n, err := ioop.NewWrite(fake.NewHandle(27).WeakRef(), seq, reg,
		ioop.WithBatchLimit(1)).Do(f.SubmitWrite())
	require.NoError(t, err)
	require.Equal(t, uint64(25), n)
	<-done
	require.Equal(t, payload, sent)
	require.Equal(t, 0, reg.Pending())
}

func TestWriteAsyncErrorStopsStream(t *testing.T) {
	seq := writeSeq(t, pattern(25))
	defer seq.Release()
	reg := ioop.NewRegistry()
	f := fake.NewFacade(reg)

	boom := errors.New("device gone")
	go func() {
		rec := <-f.Submitted
		f.Complete(rec.Token, 0, boom)
	}()

	n, err := ioop.NewWrite(fake.NewHandle(28).WeakRef(), seq, reg).Do(f.SubmitWrite())
	require.ErrorIs(t, err, boom)
	require.Equal(t, uint64(0), n)
	require.Equal(t, 25, seq.Len())
}
