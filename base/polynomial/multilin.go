// Package polynomial implements the dense multilinear tables the protocol
// folds during sumcheck, together with the small univariate helpers the
// verifier needs to replay a round.
package polynomial

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// MultiLin tracks the values of a dense multilinear polynomial over the
// boolean hypercube. The first variable is the most significant bit of the
// table index; Fold binds it.
type MultiLin []fr.Element

// NumVars returns the number of variables of the table. The length must be
// a power of two.
func (m MultiLin) NumVars() int {
	return Log2Ceil(len(m))
}

// Fold fixes the first variable to r and halves the table in place:
// table[i] <- table[i] + r (table[i+mid] - table[i]).
func (m *MultiLin) Fold(r fr.Element) {
	mid := len(*m) / 2
	bottom, top := (*m)[:mid], (*m)[mid:]
	for i := range bottom {
		top[i].Sub(&top[i], &bottom[i])
		top[i].Mul(&top[i], &r)
		bottom[i].Add(&bottom[i], &top[i])
	}
	*m = (*m)[:mid]
}

// DeepCopy clones the table. Folding mutates the underlying array, so any
// caller that needs the table again must evaluate on a copy.
func (m MultiLin) DeepCopy() MultiLin {
	c := make(MultiLin, len(m))
	copy(c, m)
	return c
}

// Evaluate folds a copy of the table along every coordinate of point and
// returns the single remaining value, i.e. the multilinear extension of m
// evaluated at point.
func (m MultiLin) Evaluate(point []fr.Element) fr.Element {
	c := m.DeepCopy()
	for _, r := range point {
		c.Fold(r)
	}
	return c[0]
}

// Pad returns a table of 2^numVars values, zero-extended from values. The
// input is copied, never aliased, so later folds cannot corrupt the source.
func Pad(values []fr.Element, numVars int) MultiLin {
	padded := make(MultiLin, 1<<numVars)
	copy(padded, values)
	return padded
}

// Log2Floor computes the floored value of Log2
func Log2Floor(a int) int {
	res := 0
	for i := a; i > 1; i = i >> 1 {
		res++
	}
	return res
}

// Log2Ceil computes the ceiled value of Log2
func Log2Ceil(a int) int {
	floor := Log2Floor(a)
	if a != 1<<floor {
		floor++
	}
	return floor
}
