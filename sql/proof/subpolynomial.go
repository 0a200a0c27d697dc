package proof

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// MaxMultiplicandDegree is the protocol-wide bound on the degree of any
// sumcheck round polynomial: at most two multilinear factors per constraint
// term plus the eq multiplicand.
const MaxMultiplicandDegree = 3

// SumcheckSubpolynomialType distinguishes how a constraint is folded into
// the batched sumcheck polynomial.
type SumcheckSubpolynomialType uint8

const (
	// Identity constraints claim the polynomial is zero at every row; they
	// are multiplied by the random eq polynomial inside the sumcheck.
	Identity SumcheckSubpolynomialType = iota
	// ZeroSum constraints claim only that the sum over all rows is zero.
	ZeroSum
)

// SumcheckTerm is one signed product inside a subpolynomial: coefficient
// times the row-wise product of its factor arrays. Each factor has table
// length entries.
type SumcheckTerm struct {
	Coefficient fr.Element
	Factors     [][]fr.Element
}

// SumcheckSubpolynomial is one algebraic constraint: a signed weighted sum
// of products of value arrays, claimed to vanish (Identity) or to sum to
// zero (ZeroSum).
type SumcheckSubpolynomial struct {
	Type  SumcheckSubpolynomialType
	Terms []SumcheckTerm
}

// Degree returns the constraint's sumcheck degree: its highest product
// arity, plus one for the eq multiplicand on Identity constraints.
func (s SumcheckSubpolynomial) Degree() int {
	d := 0
	for _, t := range s.Terms {
		if len(t.Factors) > d {
			d = len(t.Factors)
		}
	}
	if s.Type == Identity {
		d++
	}
	return d
}
