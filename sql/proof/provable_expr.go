// Package proof implements the provable-expression evaluation protocol: the
// counting pass that predicts proof shape, the prover pass that accumulates
// algebraic evidence, the verifier pass that folds claimed evaluations into
// one aggregate check, and the end-to-end QueryProof tying them to the
// sumcheck engine and the commitment scheme.
package proof

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/arena"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/database"
)

// ProvableExpr is the capability set every provable expression node
// implements. A tree is immutable once built and is reused unchanged across
// the three passes; prover and verifier must derive the identical tree from
// the same query text and schema.
type ProvableExpr interface {
	// Count tallies this node's and its children's contribution to proof
	// shape. It is a pure function of tree shape, independent of data.
	Count(b *CountBuilder) error

	// DataType is the node's static result type.
	DataType() database.ColumnType

	// ResultEvaluate computes the plain result column with no proof side
	// effects. The tree must be well typed; violations panic.
	ResultEvaluate(tableLength int, a *arena.Arena, accessor database.DataAccessor) database.Column

	// ProverEvaluate computes the identical column while recording every
	// intermediate MLE and sumcheck subpolynomial needed to prove it.
	ProverEvaluate(b *ProofBuilder, a *arena.Arena, accessor database.DataAccessor) database.Column

	// VerifierEvaluate computes the evaluation of this node's output at the
	// verifier's challenge point from the children's evaluations and the
	// prover's claimed intermediate evaluations, consumed in the exact
	// order the prover produced them.
	VerifierEvaluate(b *VerificationBuilder, accessor database.CommitmentAccessor) (fr.Element, error)

	// ColumnReferences inserts the column identities of every leaf into
	// refs.
	ColumnReferences(refs map[database.ColumnRef]struct{})
}
