package buf_test

import (
	"testing"

	"github.com/momentics/hioload-buf/buf"
	"github.com/momentics/hioload-buf/fake"
)

// seqFrom builds a sequence whose span boundaries follow the
// provider's fixed block size.
func seqFrom(t *testing.T, blockSize int, data []byte) *buf.Sequence {
	t.Helper()
	b := buf.NewBuilder()
	b.Reserve(len(data), &fake.Provider{BlockSize: blockSize})
	if _, err := b.Write(data); err != nil {
		t.Fatalf("write: %v", err)
	}
	return b.ConsumeAll()
}

// seqFromParts builds a sequence with exactly one span per part.
func seqFromParts(t *testing.T, parts ...[]byte) *buf.Sequence {
	t.Helper()
	out := buf.NewSequence()
	for _, part := range parts {
		b := buf.NewBuilder()
		b.Reserve(len(part), &fake.Provider{})
		if _, err := b.Write(part); err != nil {
			t.Fatalf("write: %v", err)
		}
		out.Append(b.ConsumeAll())
	}
	return out
}

// drain reconstructs a sequence's content through the chunk loop.
func drain(s *buf.Sequence) []byte {
	out := make([]byte, 0, s.Len())
	for !s.IsEmpty() {
		chunk := s.Chunk()
		out = append(out, chunk...)
		s.Advance(len(chunk))
	}
	return out
}
