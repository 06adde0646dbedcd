// Package pool
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Memory providers for the buf model: slab allocation with size-class
// freelists and NUMA node tagging, plus a plain heap provider for
// callers that do not need recycling. Blocks return to their freelist
// through the release hook when the last span reference drops.
package pool
