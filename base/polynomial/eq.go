package polynomial

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// EvalEq computes Eq(q1, ..., qn, h1, ..., hn) = Π Eq(qi, hi)
// where Eq(x,y) = xy + (1-x)(1-y) interpolates the equality indicator on
// {0,1}².
func EvalEq(q, h []fr.Element) fr.Element {
	var res, nxt, one, sum fr.Element
	one.SetOne()
	res.SetOne()
	for i := 0; i < len(q); i++ {
		nxt.Mul(&q[i], &h[i]) // nxt <- qi * hi
		nxt.Add(&nxt, &nxt)   // nxt <- 2 qi hi
		nxt.Add(&nxt, &one)   // nxt <- 1 + 2 qi hi
		sum.Add(&q[i], &h[i]) // sum <- qi + hi
		nxt.Sub(&nxt, &sum)   // nxt <- 1 + 2 qi hi - qi - hi
		res.Mul(&res, &nxt)
	}
	return res
}

// OnesPrefixEvaluation evaluates, at point, the multilinear extension of
// the column that is one on the first n rows and zero on the padding. It is
// what a literal's verifier evaluation scales by.
func OnesPrefixEvaluation(n int, point []fr.Element) fr.Element {
	t := make(MultiLin, 1<<len(point))
	one := fr.One()
	for i := 0; i < n && i < len(t); i++ {
		t[i] = one
	}
	return t.Evaluate(point)
}

// FoldedEqTable directly computes the table of length 2^n containing the
// values of Eq(q1, ..., qn, *, ..., *), i.e. the eq polynomial prefolded on
// the challenge point q.
func FoldedEqTable(q []fr.Element) MultiLin {
	n := len(q)
	eq := make(MultiLin, 1<<n)
	eq[0].SetOne()

	for i := range q {
		for j := 0; j < (1 << i); j++ {
			J := j << (n - i)
			JNext := J + 1<<(n-1-i)
			eq[JNext].Mul(&q[i], &eq[J])
			eq[J].Sub(&eq[J], &eq[JNext])
		}
	}
	return eq
}
