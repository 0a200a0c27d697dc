// Package sumcheck implements the sumcheck protocol over a composed
// polynomial given as a weighted sum of products of dense multilinear
// tables. The proof-of-sql builders hand it the batched constraint
// polynomial; prover and verifier share a Fiat-Shamir transcript.
package sumcheck

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"

	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/polynomial"
)

// Proof is the object produced by the prover: one list of evaluations on
// [0, degree] per round.
type Proof struct {
	RoundEvaluations [][]fr.Element
}

type term struct {
	coeff   fr.Element
	factors []int
}

// Polynomial is a sum of terms, each a coefficient times a product of
// multilinear tables over the same variable set. Tables shared between
// terms are registered once so each round folds them once.
type Polynomial struct {
	numVars int
	degree  int
	tables  []polynomial.MultiLin
	index   map[*fr.Element]int
	terms   []term
}

// NewPolynomial returns an empty polynomial in numVars variables whose
// round polynomials have degree at most degree. Both must be at least 1.
func NewPolynomial(numVars, degree int) *Polynomial {
	if numVars < 1 || degree < 1 {
		panic("sumcheck polynomial needs at least one variable and degree one")
	}
	return &Polynomial{
		numVars: numVars,
		degree:  degree,
		index:   make(map[*fr.Element]int),
	}
}

// NumVars returns the number of rounds the protocol will run.
func (p *Polynomial) NumVars() int { return p.numVars }

// Degree returns the declared round-polynomial degree bound.
func (p *Polynomial) Degree() int { return p.degree }

// AddTerm appends coeff · Π factors. Every factor must have 2^numVars
// entries and the product arity must respect the degree bound; violations
// are contract errors on the caller's side and panic.
func (p *Polynomial) AddTerm(coeff fr.Element, factors ...polynomial.MultiLin) {
	if len(factors) > p.degree {
		panic(fmt.Sprintf("term arity %d exceeds degree bound %d", len(factors), p.degree))
	}
	t := term{coeff: coeff, factors: make([]int, len(factors))}
	for i, f := range factors {
		if len(f) != 1<<p.numVars {
			panic(fmt.Sprintf("factor has %d entries, want %d", len(f), 1<<p.numVars))
		}
		key := &f[0]
		idx, ok := p.index[key]
		if !ok {
			idx = len(p.tables)
			p.index[key] = idx
			p.tables = append(p.tables, f)
		}
		t.factors[i] = idx
	}
	p.terms = append(p.terms, t)
}

// bindAndChallenge feeds one round's evaluations into the transcript and
// derives the round challenge.
func bindAndChallenge(fs *fiatshamir.Transcript, id string, evals []fr.Element) (fr.Element, error) {
	var r fr.Element
	for i := range evals {
		if err := fs.Bind(id, evals[i].Marshal()); err != nil {
			return r, err
		}
	}
	b, err := fs.ComputeChallenge(id)
	if err != nil {
		return r, err
	}
	r.SetBytes(b)
	return r, nil
}
