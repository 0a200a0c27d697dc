// Package commitment provides the additively homomorphic column commitments
// the verifier folds linear combinations over. A commitment binds one column
// of scalars; the scheme's opening argument is an external collaborator and
// is consumed through the database.CommitmentAccessor oracle.
package commitment

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Commitment is a binding value for one column. Commitments of equal-length
// columns add homomorphically: Commit(a) + Commit(b) == Commit(a + b).
type Commitment struct {
	Point bn254.G1Affine
}

// Add returns the commitment of the column-wise sum.
func (c Commitment) Add(o Commitment) Commitment {
	var sum bn254.G1Jac
	sum.FromAffine(&c.Point)
	var op bn254.G1Jac
	op.FromAffine(&o.Point)
	sum.AddAssign(&op)

	var out Commitment
	out.Point.FromJacobian(&sum)
	return out
}

// Sub returns the commitment of the column-wise difference.
func (c Commitment) Sub(o Commitment) Commitment {
	var neg Commitment
	neg.Point.Neg(&o.Point)
	return c.Add(neg)
}

// ScalarMul returns the commitment of the column scaled by s.
func (c Commitment) ScalarMul(s fr.Element) Commitment {
	var out Commitment
	var bi big.Int
	s.BigInt(&bi)
	out.Point.ScalarMultiplication(&c.Point, &bi)
	return out
}

// Equal reports whether two commitments bind the same column.
func (c Commitment) Equal(o Commitment) bool {
	return c.Point.Equal(&o.Point)
}

// RawBytes returns the uncompressed encoding, used for transcript binding.
func (c Commitment) RawBytes() []byte {
	b := c.Point.RawBytes()
	return b[:]
}
