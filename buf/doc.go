// Package buf
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Zero-copy scatter/gather byte-buffer memory model.
//
// A Block is one reference-counted allocation obtained from a Provider.
// A Span is an immutable advancing window into a Block; a SpanBuilder
// is its mutable, partially-filled counterpart. A Sequence chains spans
// into one logical byte stream on the consumer side; a Builder manages
// frozen spans plus reserved capacity on the producer side. All
// operations are zero-copy unless Bytes must flatten a discontiguous
// sequence.
//
// Values carry no concurrent-mutation guarantee: exactly one owner may
// mutate a given Sequence or Builder at a time. The vectored write is
// the sanctioned exception, exposing provably disjoint regions for
// concurrent external fill under an exclusive borrow of the builder.
package buf
