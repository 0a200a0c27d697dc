package ast

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/arena"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/database"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/sql/proof"
)

// ColumnExpr is a leaf reading one committed table column.
type ColumnExpr struct {
	Ref database.ColumnRef
}

// NewColumnExpr returns a leaf for the referenced column.
func NewColumnExpr(ref database.ColumnRef) *ColumnExpr {
	return &ColumnExpr{Ref: ref}
}

func (e *ColumnExpr) Count(b *proof.CountBuilder) error {
	return nil
}

func (e *ColumnExpr) DataType() database.ColumnType {
	return e.Ref.Type
}

func (e *ColumnExpr) ResultEvaluate(tableLength int, a *arena.Arena, accessor database.DataAccessor) database.Column {
	col, err := accessor.Column(e.Ref)
	if err != nil {
		// column presence is validated before evaluation starts
		panic(err)
	}
	return col
}

func (e *ColumnExpr) ProverEvaluate(b *proof.ProofBuilder, a *arena.Arena, accessor database.DataAccessor) database.Column {
	return e.ResultEvaluate(b.TableLength(), a, accessor)
}

func (e *ColumnExpr) VerifierEvaluate(b *proof.VerificationBuilder, accessor database.CommitmentAccessor) (fr.Element, error) {
	return accessor.OpeningEvaluation(e.Ref, b.EvaluationPoint())
}

func (e *ColumnExpr) ColumnReferences(refs map[database.ColumnRef]struct{}) {
	refs[e.Ref] = struct{}{}
}
