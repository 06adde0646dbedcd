// File: buf/vectored.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Exclusive vectored write: every span builder's unfilled memory
// exposed at once as raw writable regions for concurrent external
// fill (hardware, a native I/O call). The regions are provably
// disjoint; the exclusive borrow of the builder blocks every other
// externally-visible mutation for the duration.

package buf

// Vectored is the in-flight state of a vectored write. Exactly one of
// Commit or Abandon must be called to return the builder to service.
type Vectored struct {
	b       *Builder
	regions [][]byte
	offered int
	done    bool
}

// BeginVectored takes exclusive ownership of the builder and exposes
// its unfilled capacity as writable regions, in front-to-back order,
// with the aggregate length capped at maxLen. maxLen < 0 means
// uncapped. The single-partially-filled-builder invariant is suspended
// until Commit or Abandon.
func (b *Builder) BeginVectored(maxLen int) *Vectored {
	b.assertAvailable()
	b.vec = true
	v := &Vectored{b: b}
	budget := maxLen
	if maxLen < 0 {
		budget = b.remaining
	}
	for i := 0; i < b.builders.Length() && budget > 0; i++ {
		sb := b.builders.Get(i).(*SpanBuilder)
		if i > 0 && sb.Filled() != 0 {
			panic("buf: non-front span builder holds filled bytes")
		}
		region := sb.unfilledBytes()
		if len(region) > budget {
			region = region[:budget]
		}
		v.regions = append(v.regions, region)
		v.offered += len(region)
		budget -= len(region)
	}
	return v
}

// Regions returns the writable regions. They stay valid until Commit
// or Abandon.
func (v *Vectored) Regions() [][]byte { return v.regions }

// Offered returns the aggregate writable byte count.
func (v *Vectored) Offered() int { return v.offered }

// Commit records that exactly n bytes were written across the regions
// in order, restoring the builder invariant by replaying a normal
// sequential advance over the freeze bookkeeping, one region at a
// time. Panics when n exceeds the offered length or the write already
// finished.
func (v *Vectored) Commit(n int) {
	if v.done {
		panic("buf: vectored write already finished")
	}
	if n < 0 || n > v.offered {
		panic("buf: vectored commit exceeds offered bytes")
	}
	v.done = true
	v.b.vec = false
	if n > 0 {
		v.b.recordFilled(n)
	}
}

// Abandon releases the exclusive borrow without committing. Recorded
// progress is discarded; the capacity remains, marked unfilled.
func (v *Vectored) Abandon() {
	if v.done {
		return
	}
	v.done = true
	v.b.vec = false
}
