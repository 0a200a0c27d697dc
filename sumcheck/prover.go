package sumcheck

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"
)

// Prove runs the sumcheck prover. Round j evaluates the round polynomial on
// [0, degree], binds the evaluations into the transcript, derives the round
// challenge and folds every table on it. It returns the proof and the final
// evaluation point at which the caller must open the factor tables.
//
// Prove consumes p: the factor tables are folded in place.
func Prove(p *Polynomial, fs *fiatshamir.Transcript, roundIDs []string) (Proof, []fr.Element, error) {
	if len(roundIDs) != p.numVars {
		return Proof{}, nil, fmt.Errorf("got %d round challenge ids, want %d", len(roundIDs), p.numVars)
	}

	proof := Proof{RoundEvaluations: make([][]fr.Element, p.numVars)}
	point := make([]fr.Element, p.numVars)
	size := 1 << p.numVars

	var t, v, prod fr.Element
	for j := 0; j < p.numVars; j++ {
		half := size / 2
		evals := make([]fr.Element, p.degree+1)
		for d := 0; d <= p.degree; d++ {
			t.SetUint64(uint64(d))
			for i := 0; i < half; i++ {
				for _, tm := range p.terms {
					prod = tm.coeff
					for _, fi := range tm.factors {
						f := p.tables[fi]
						// f(d, i) = f[i] + d (f[half+i] - f[i])
						v.Sub(&f[half+i], &f[i])
						v.Mul(&v, &t)
						v.Add(&v, &f[i])
						prod.Mul(&prod, &v)
					}
					evals[d].Add(&evals[d], &prod)
				}
			}
		}

		r, err := bindAndChallenge(fs, roundIDs[j], evals)
		if err != nil {
			return Proof{}, nil, err
		}
		for i := range p.tables {
			p.tables[i].Fold(r)
		}
		proof.RoundEvaluations[j] = evals
		point[j] = r
		size = half
	}

	return proof, point, nil
}
