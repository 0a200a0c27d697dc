package proof

import (
	"fmt"
)

// Counts is the predicted proof shape of one expression tree.
type Counts struct {
	// SumcheckSubpolynomials is the number of algebraic constraints the
	// prover registers.
	SumcheckSubpolynomials int
	// IntermediateMLEs is the number of auxiliary value arrays the prover
	// produces (and the verifier consumes, in order).
	IntermediateMLEs int
	// SumcheckMaxDegree is the largest constraint degree, eq multiplicand
	// included.
	SumcheckMaxDegree int
}

// CountBuilder accumulates the proof shape of a tree before any
// cryptographic work begins. Prover and verifier buffers are sized from it
// and any later disagreement with the actual artifact counts is a shape
// error.
type CountBuilder struct {
	counts Counts
}

// NewCountBuilder returns a zeroed builder.
func NewCountBuilder() *CountBuilder {
	return &CountBuilder{}
}

// CountSubpolynomials adds n sumcheck subpolynomials.
func (b *CountBuilder) CountSubpolynomials(n int) {
	b.counts.SumcheckSubpolynomials += n
}

// CountIntermediateMLEs adds n intermediate MLEs.
func (b *CountBuilder) CountIntermediateMLEs(n int) {
	b.counts.IntermediateMLEs += n
}

// CountDegree raises the running maximum constraint degree to degree. It
// errors when the protocol-wide bound is exceeded.
func (b *CountBuilder) CountDegree(degree int) error {
	if degree > MaxMultiplicandDegree {
		return fmt.Errorf("constraint degree %d exceeds the protocol bound %d", degree, MaxMultiplicandDegree)
	}
	if degree > b.counts.SumcheckMaxDegree {
		b.counts.SumcheckMaxDegree = degree
	}
	return nil
}

// Counts returns the accumulated shape.
func (b *CountBuilder) Counts() Counts {
	return b.counts
}
