package proof

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/polynomial"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/sumcheck"
)

// ProofBuilder is the prover-side accumulator for one pass: ordered,
// append-only sequences of intermediate MLEs and sumcheck subpolynomials.
// The position of each artifact in its sequence is part of the protocol;
// the verifier consumes them in the identical order. One pass owns the
// builder exclusively.
type ProofBuilder struct {
	tableLength int
	numVars     int

	mles           [][]fr.Element
	subpolynomials []SumcheckSubpolynomial
}

// NewProofBuilder returns a builder for a table of tableLength rows, with
// buffers pre-sized from the counting pass.
func NewProofBuilder(tableLength int, counts Counts) *ProofBuilder {
	return &ProofBuilder{
		tableLength:    tableLength,
		numVars:        NumVars(tableLength),
		mles:           make([][]fr.Element, 0, counts.IntermediateMLEs),
		subpolynomials: make([]SumcheckSubpolynomial, 0, counts.SumcheckSubpolynomials),
	}
}

// NumVars returns the number of sumcheck variables for a table of n rows.
// Tables are zero-padded to 2^NumVars rows; the minimum of one variable
// keeps zero- and one-row tables inside the protocol.
func NumVars(n int) int {
	v := polynomial.Log2Ceil(n)
	if v < 1 {
		v = 1
	}
	return v
}

// TableLength returns the pass's table length.
func (b *ProofBuilder) TableLength() int {
	return b.tableLength
}

// NumVars returns the number of sumcheck variables for this pass.
func (b *ProofBuilder) NumVars() int {
	return b.numVars
}

// ProduceIntermediateMLE appends one auxiliary value array. The array must
// have table length entries; the tree contract guarantees it.
func (b *ProofBuilder) ProduceIntermediateMLE(values []fr.Element) {
	if len(values) != b.tableLength {
		panic(fmt.Sprintf("intermediate MLE has %d entries, table has %d rows", len(values), b.tableLength))
	}
	b.mles = append(b.mles, values)
}

// ProduceSumcheckSubpolynomial appends one constraint.
func (b *ProofBuilder) ProduceSumcheckSubpolynomial(typ SumcheckSubpolynomialType, terms []SumcheckTerm) {
	b.subpolynomials = append(b.subpolynomials, SumcheckSubpolynomial{Type: typ, Terms: terms})
}

// IntermediateMLEs returns the produced auxiliary arrays in order.
func (b *ProofBuilder) IntermediateMLEs() [][]fr.Element {
	return b.mles
}

// NumSumcheckSubpolynomials returns how many constraints were produced.
func (b *ProofBuilder) NumSumcheckSubpolynomials() int {
	return len(b.subpolynomials)
}

// SumcheckPolynomial batches every subpolynomial into the composed sumcheck
// polynomial Σₖ mₖ·Cₖ, with Identity constraints additionally multiplied by
// the prefolded eq table. Factor arrays are zero-padded to 2^numVars once
// and shared across terms, so the engine folds each exactly once.
func (b *ProofBuilder) SumcheckPolynomial(eq polynomial.MultiLin, multipliers []fr.Element) (*sumcheck.Polynomial, error) {
	if len(multipliers) != len(b.subpolynomials) {
		return nil, fmt.Errorf("got %d multipliers for %d subpolynomials", len(multipliers), len(b.subpolynomials))
	}
	if len(eq) != 1<<b.numVars {
		return nil, fmt.Errorf("eq table has %d entries, want %d", len(eq), 1<<b.numVars)
	}

	degree := 1
	for _, sp := range b.subpolynomials {
		if d := sp.Degree(); d > degree {
			degree = d
		}
	}

	p := sumcheck.NewPolynomial(b.numVars, degree)
	padded := make(map[*fr.Element]polynomial.MultiLin)
	var zeroTable polynomial.MultiLin
	padOnce := func(f []fr.Element) polynomial.MultiLin {
		if len(f) == 0 {
			if zeroTable == nil {
				zeroTable = make(polynomial.MultiLin, 1<<b.numVars)
			}
			return zeroTable
		}
		if t, ok := padded[&f[0]]; ok {
			return t
		}
		t := polynomial.Pad(f, b.numVars)
		padded[&f[0]] = t
		return t
	}

	var coeff fr.Element
	for k, sp := range b.subpolynomials {
		for _, term := range sp.Terms {
			coeff.Mul(&multipliers[k], &term.Coefficient)
			factors := make([]polynomial.MultiLin, 0, len(term.Factors)+1)
			if sp.Type == Identity {
				factors = append(factors, eq)
			}
			for _, f := range term.Factors {
				factors = append(factors, padOnce(f))
			}
			p.AddTerm(coeff, factors...)
		}
	}
	return p, nil
}
