package ast

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/arena"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/database"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/sql/proof"
)

// NotExpr is logical negation. NOT is linear over the field embedding, so it
// adds nothing to the proof: the verifier computes 1 - x from the child's
// evaluation, where 1 is the all-ones column restricted to the table rows.
type NotExpr struct {
	Expr proof.ProvableExpr
}

// NewNotExpr negates a boolean expression.
func NewNotExpr(inner proof.ProvableExpr) *NotExpr {
	mustBoolean(inner.DataType())
	return &NotExpr{Expr: inner}
}

func (e *NotExpr) Count(b *proof.CountBuilder) error {
	return e.Expr.Count(b)
}

func (e *NotExpr) DataType() database.ColumnType {
	return database.NewColumnType(database.KindBoolean)
}

func (e *NotExpr) ResultEvaluate(tableLength int, a *arena.Arena, accessor database.DataAccessor) database.Column {
	in := e.Expr.ResultEvaluate(tableLength, a, accessor).Bools()
	out := a.Bools(len(in))
	for i := range in {
		out[i] = !in[i]
	}
	return database.BoolsView(out)
}

func (e *NotExpr) ProverEvaluate(b *proof.ProofBuilder, a *arena.Arena, accessor database.DataAccessor) database.Column {
	in := e.Expr.ProverEvaluate(b, a, accessor).Bools()
	out := a.Bools(len(in))
	for i := range in {
		out[i] = !in[i]
	}
	return database.BoolsView(out)
}

func (e *NotExpr) VerifierEvaluate(b *proof.VerificationBuilder, accessor database.CommitmentAccessor) (fr.Element, error) {
	in, err := e.Expr.VerifierEvaluate(b, accessor)
	if err != nil {
		return fr.Element{}, err
	}
	one := b.OneEvaluation()
	var out fr.Element
	out.Sub(&one, &in)
	return out, nil
}

func (e *NotExpr) ColumnReferences(refs map[database.ColumnRef]struct{}) {
	e.Expr.ColumnReferences(refs)
}
