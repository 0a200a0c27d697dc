package sumcheck

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"
	"github.com/stretchr/testify/require"

	baseproof "github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/proof"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/polynomial"
)

func roundIDs(numVars int) []string {
	ids := make([]string, numVars)
	for i := range ids {
		ids[i] = fmt.Sprintf("s.%d", i)
	}
	return ids
}

func newTestTranscript(ids []string) *fiatshamir.Transcript {
	return fiatshamir.NewTranscript(sha256.New(), ids...)
}

func randomTable(t *testing.T, n int) polynomial.MultiLin {
	t.Helper()
	out := make(polynomial.MultiLin, n)
	for i := range out {
		_, err := out[i].SetRandom()
		require.NoError(t, err)
	}
	return out
}

// claimedProductSum computes sum_i coeff * f[i] * g[i] directly.
func claimedProductSum(coeff fr.Element, f, g polynomial.MultiLin) fr.Element {
	var sum, prod fr.Element
	for i := range f {
		prod.Mul(&f[i], &g[i])
		prod.Mul(&prod, &coeff)
		sum.Add(&sum, &prod)
	}
	return sum
}

func TestProveVerify(t *testing.T) {
	const numVars = 3
	f := randomTable(t, 1<<numVars)
	g := randomTable(t, 1<<numVars)
	var coeff fr.Element
	coeff.SetUint64(5)
	claim := claimedProductSum(coeff, f, g)

	// Prove folds the tables, so keep copies for the final opening check
	fCopy, gCopy := f.DeepCopy(), g.DeepCopy()

	p := NewPolynomial(numVars, 2)
	p.AddTerm(coeff, f, g)

	ids := roundIDs(numVars)
	proof, point, err := Prove(p, newTestTranscript(ids), ids)
	require.NoError(t, err)
	require.Len(t, point, numVars)

	gotPoint, finalValue, err := Verify(claim, numVars, 2, proof, newTestTranscript(ids), ids)
	require.NoError(t, err)
	require.Equal(t, point, gotPoint)

	// the final claim must equal coeff * f(point) * g(point)
	fEval := fCopy.Evaluate(point)
	gEval := gCopy.Evaluate(point)
	var want fr.Element
	want.Mul(&fEval, &gEval)
	want.Mul(&want, &coeff)
	require.True(t, finalValue.Equal(&want))
}

func TestVerifyRejectsWrongClaim(t *testing.T) {
	const numVars = 2
	f := randomTable(t, 1<<numVars)
	g := randomTable(t, 1<<numVars)
	var coeff fr.Element
	coeff.SetOne()
	claim := claimedProductSum(coeff, f, g)
	claim.Add(&claim, &coeff) // off by one

	p := NewPolynomial(numVars, 2)
	p.AddTerm(coeff, f, g)
	ids := roundIDs(numVars)
	proof, _, err := Prove(p, newTestTranscript(ids), ids)
	require.NoError(t, err)

	_, _, err = Verify(claim, numVars, 2, proof, newTestTranscript(ids), ids)
	require.ErrorIs(t, err, baseproof.ErrVerificationFailed)
}

func TestVerifyRejectsTamperedRound(t *testing.T) {
	const numVars = 2
	f := randomTable(t, 1<<numVars)
	var coeff fr.Element
	coeff.SetOne()
	var claim fr.Element
	for i := range f {
		claim.Add(&claim, &f[i])
	}

	p := NewPolynomial(numVars, 1)
	p.AddTerm(coeff, f.DeepCopy())
	ids := roundIDs(numVars)
	proof, _, err := Prove(p, newTestTranscript(ids), ids)
	require.NoError(t, err)

	var one fr.Element
	one.SetOne()
	proof.RoundEvaluations[1][0].Add(&proof.RoundEvaluations[1][0], &one)
	_, _, err = Verify(claim, numVars, 1, proof, newTestTranscript(ids), ids)
	require.ErrorIs(t, err, baseproof.ErrVerificationFailed)
}

func TestVerifyRejectsWrongShape(t *testing.T) {
	ids := roundIDs(2)
	var claim fr.Element

	// wrong round count
	proof := Proof{RoundEvaluations: [][]fr.Element{make([]fr.Element, 2)}}
	_, _, err := Verify(claim, 2, 1, proof, newTestTranscript(ids), ids)
	require.ErrorIs(t, err, baseproof.ErrInvalidProofShape)

	// wrong evaluation count in a round
	proof = Proof{RoundEvaluations: [][]fr.Element{
		make([]fr.Element, 2),
		make([]fr.Element, 3),
	}}
	_, _, err = Verify(claim, 2, 1, proof, newTestTranscript(ids), ids)
	require.ErrorIs(t, err, baseproof.ErrInvalidProofShape)

	// shape errors must not be mistaken for failed verification
	require.False(t, errors.Is(err, baseproof.ErrVerificationFailed))
}

func TestSharedTableFoldsOnce(t *testing.T) {
	// f appears in two terms; the claim counts it twice, the engine must
	// register it once
	const numVars = 2
	f := randomTable(t, 1<<numVars)
	g := randomTable(t, 1<<numVars)
	var one fr.Element
	one.SetOne()

	claim := claimedProductSum(one, f, g)
	var fSum fr.Element
	for i := range f {
		fSum.Add(&fSum, &f[i])
	}
	claim.Add(&claim, &fSum)

	p := NewPolynomial(numVars, 2)
	p.AddTerm(one, f, g)
	p.AddTerm(one, f)

	ids := roundIDs(numVars)
	proof, _, err := Prove(p, newTestTranscript(ids), ids)
	require.NoError(t, err)
	_, _, err = Verify(claim, numVars, 2, proof, newTestTranscript(ids), ids)
	require.NoError(t, err)
}

func TestAddTermContractViolations(t *testing.T) {
	p := NewPolynomial(2, 1)
	f := make(polynomial.MultiLin, 4)
	g := make(polynomial.MultiLin, 4)
	var one fr.Element
	one.SetOne()

	require.Panics(t, func() { p.AddTerm(one, f, g) })                          // arity above degree
	require.Panics(t, func() { p.AddTerm(one, make(polynomial.MultiLin, 3)) }) // wrong length
	require.Panics(t, func() { NewPolynomial(0, 1) })
}
