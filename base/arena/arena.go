// Package arena provides a pass-scoped slab allocator for the ephemeral
// buffers produced during one evaluation pass over a provable expression
// tree. Every slice handed out stays valid until Reset; nothing allocated
// here may outlive the pass that owns the arena.
package arena

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

const minSlabLen = 1 << 10

// Arena hands out zeroed slices carved from growing slabs. It is not safe
// for concurrent use; one evaluation pass owns one arena exclusively.
type Arena struct {
	scalarSlab []fr.Element
	boolSlab   []bool
	retained   int // slices handed out since the last Reset
}

// New returns an empty arena.
func New() *Arena {
	return &Arena{}
}

// Scalars returns a zeroed field-element slice of length n.
func (a *Arena) Scalars(n int) []fr.Element {
	if n == 0 {
		return nil
	}
	if len(a.scalarSlab) < n {
		a.scalarSlab = make([]fr.Element, max(n, minSlabLen))
	}
	s := a.scalarSlab[:n:n]
	a.scalarSlab = a.scalarSlab[n:]
	a.retained++
	return s
}

// Bools returns a zeroed boolean slice of length n.
func (a *Arena) Bools(n int) []bool {
	if n == 0 {
		return nil
	}
	if len(a.boolSlab) < n {
		a.boolSlab = make([]bool, max(n, minSlabLen))
	}
	s := a.boolSlab[:n:n]
	a.boolSlab = a.boolSlab[n:]
	a.retained++
	return s
}

// Allocated reports how many slices were handed out since the last Reset.
func (a *Arena) Allocated() int {
	return a.retained
}

// Reset discards all outstanding allocations. Slices handed out before the
// call must not be used afterwards.
func (a *Arena) Reset() {
	a.scalarSlab = nil
	a.boolSlab = nil
	a.retained = 0
}
