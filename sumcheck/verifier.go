package sumcheck

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"

	baseproof "github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/proof"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/polynomial"
)

// Verify replays the rounds against claimedSum. Each round checks
// g(0) + g(1) against the running claim, then reduces the claim to g(r) for
// the transcript challenge r. It returns the final evaluation point and the
// final claimed value; the caller still has to confront that value with the
// oracle openings of the factor tables.
func Verify(claimedSum fr.Element, numVars, degree int, proof Proof, fs *fiatshamir.Transcript, roundIDs []string) ([]fr.Element, fr.Element, error) {
	var zero fr.Element
	if len(proof.RoundEvaluations) != numVars {
		return nil, zero, fmt.Errorf("%w: %d sumcheck rounds, want %d", baseproof.ErrInvalidProofShape, len(proof.RoundEvaluations), numVars)
	}
	if len(roundIDs) != numVars {
		return nil, zero, fmt.Errorf("got %d round challenge ids, want %d", len(roundIDs), numVars)
	}

	claim := claimedSum
	point := make([]fr.Element, numVars)
	var sum fr.Element
	for j := 0; j < numVars; j++ {
		evals := proof.RoundEvaluations[j]
		if len(evals) != degree+1 {
			return nil, zero, fmt.Errorf("%w: round %d has %d evaluations, want %d", baseproof.ErrInvalidProofShape, j, len(evals), degree+1)
		}

		// g(0) + g(1) must reproduce the running claim
		sum.Add(&evals[0], &evals[1])
		if !sum.Equal(&claim) {
			return nil, zero, fmt.Errorf("%w: sumcheck round %d", baseproof.ErrVerificationFailed, j)
		}

		r, err := bindAndChallenge(fs, roundIDs[j], evals)
		if err != nil {
			return nil, zero, err
		}
		coeffs := polynomial.InterpolateOnRange(evals)
		claim = polynomial.EvaluatePolynomial(coeffs, r)
		point[j] = r
	}

	return point, claim, nil
}
