// Package proof defines the typed errors the protocol surfaces. The two
// rejection kinds are deliberately distinct: a shape mismatch is caught
// before any cryptographic check, while a verification failure means the
// algebra itself did not hold.
package proof

import (
	"errors"
)

// ErrInvalidProofShape reports that the counted and actually supplied proof
// artifacts (intermediate MLEs, subpolynomial evaluations) disagree. Such
// proofs are rejected before any cryptographic work.
var ErrInvalidProofShape = errors.New("proof shape does not match the expression's counted shape")

// ErrVerificationFailed reports that the aggregate sumcheck equality or the
// final commitment equality did not hold.
var ErrVerificationFailed = errors.New("proof verification failed")
