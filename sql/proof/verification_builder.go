package proof

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	baseproof "github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/proof"
)

// VerificationBuilder is the verifier-side accumulator for one pass. It
// holds the sumcheck evaluation point, ordered queues of the prover's
// claimed intermediate-MLE evaluations and of the constraint batching
// multipliers, and folds every constraint evaluation into one aggregate.
// Individual constraints are never checked in isolation; only the final
// aggregate is confronted with the sumcheck claim.
type VerificationBuilder struct {
	evaluationPoint  []fr.Element
	randomEvaluation fr.Element
	oneEvaluation    fr.Element

	mleEvaluations []fr.Element
	multipliers    []fr.Element
	consumedMLEs   int
	consumedSubs   int

	aggregate fr.Element
}

// NewVerificationBuilder returns a builder over the evaluation point, the
// eq ("random") evaluation at that point, the all-ones-prefix evaluation,
// and the prover-claimed artifact queues taken from the transmitted proof.
func NewVerificationBuilder(point []fr.Element, randomEvaluation, oneEvaluation fr.Element, mleEvaluations, multipliers []fr.Element) *VerificationBuilder {
	return &VerificationBuilder{
		evaluationPoint:  point,
		randomEvaluation: randomEvaluation,
		oneEvaluation:    oneEvaluation,
		mleEvaluations:   mleEvaluations,
		multipliers:      multipliers,
	}
}

// EvaluationPoint returns the sumcheck challenge point.
func (b *VerificationBuilder) EvaluationPoint() []fr.Element {
	return b.evaluationPoint
}

// RandomEvaluation returns eq(r, q): the random eq polynomial evaluated at
// the sumcheck point. Identity constraint evaluations are scaled by it.
func (b *VerificationBuilder) RandomEvaluation() fr.Element {
	return b.randomEvaluation
}

// OneEvaluation returns the evaluation of the column that is one on every
// table row and zero on the padding.
func (b *VerificationBuilder) OneEvaluation() fr.Element {
	return b.oneEvaluation
}

// ConsumeIntermediateMLE pops the next claimed auxiliary evaluation. An
// exhausted queue means the prover under-supplied artifacts relative to the
// predicted count.
func (b *VerificationBuilder) ConsumeIntermediateMLE() (fr.Element, error) {
	if b.consumedMLEs >= len(b.mleEvaluations) {
		return fr.Element{}, fmt.Errorf("%w: intermediate MLE evaluations exhausted after %d", baseproof.ErrInvalidProofShape, b.consumedMLEs)
	}
	e := b.mleEvaluations[b.consumedMLEs]
	b.consumedMLEs++
	return e, nil
}

// ProduceSumcheckSubpolynomialEvaluation folds one constraint evaluation
// into the aggregate, scaled by the next batching multiplier.
func (b *VerificationBuilder) ProduceSumcheckSubpolynomialEvaluation(eval fr.Element) error {
	if b.consumedSubs >= len(b.multipliers) {
		return fmt.Errorf("%w: subpolynomial multipliers exhausted after %d", baseproof.ErrInvalidProofShape, b.consumedSubs)
	}
	var scaled fr.Element
	scaled.Mul(&b.multipliers[b.consumedSubs], &eval)
	b.aggregate.Add(&b.aggregate, &scaled)
	b.consumedSubs++
	return nil
}

// Aggregate returns the folded constraint evaluation.
func (b *VerificationBuilder) Aggregate() fr.Element {
	return b.aggregate
}

// Finish checks that the pass consumed exactly the counted artifacts.
func (b *VerificationBuilder) Finish(counts Counts) error {
	if b.consumedMLEs != len(b.mleEvaluations) || b.consumedMLEs != counts.IntermediateMLEs {
		return fmt.Errorf("%w: consumed %d intermediate MLEs, counted %d", baseproof.ErrInvalidProofShape, b.consumedMLEs, counts.IntermediateMLEs)
	}
	if b.consumedSubs != len(b.multipliers) || b.consumedSubs != counts.SumcheckSubpolynomials {
		return fmt.Errorf("%w: consumed %d subpolynomials, counted %d", baseproof.ErrInvalidProofShape, b.consumedSubs, counts.SumcheckSubpolynomials)
	}
	return nil
}
