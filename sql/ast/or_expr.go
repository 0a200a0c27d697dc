package ast

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/arena"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/database"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/sql/proof"
)

// OrExpr is logical disjunction, expressed through the same committed
// product as AndExpr: lhs OR rhs = lhs + rhs - lhs*rhs, which is linear once
// the product is available.
type OrExpr struct {
	Lhs proof.ProvableExpr
	Rhs proof.ProvableExpr
}

// NewOrExpr disjoins two boolean expressions.
func NewOrExpr(lhs, rhs proof.ProvableExpr) *OrExpr {
	mustBoolean(lhs.DataType())
	mustBoolean(rhs.DataType())
	return &OrExpr{Lhs: lhs, Rhs: rhs}
}

func (e *OrExpr) Count(b *proof.CountBuilder) error {
	if err := e.Lhs.Count(b); err != nil {
		return err
	}
	if err := e.Rhs.Count(b); err != nil {
		return err
	}
	return countBooleanProduct(b)
}

func (e *OrExpr) DataType() database.ColumnType {
	return database.NewColumnType(database.KindBoolean)
}

func (e *OrExpr) ResultEvaluate(tableLength int, a *arena.Arena, accessor database.DataAccessor) database.Column {
	lhs := e.Lhs.ResultEvaluate(tableLength, a, accessor).Bools()
	rhs := e.Rhs.ResultEvaluate(tableLength, a, accessor).Bools()
	out := a.Bools(len(lhs))
	for i := range out {
		out[i] = lhs[i] || rhs[i]
	}
	return database.BoolsView(out)
}

func (e *OrExpr) ProverEvaluate(b *proof.ProofBuilder, a *arena.Arena, accessor database.DataAccessor) database.Column {
	lhs := e.Lhs.ProverEvaluate(b, a, accessor).Bools()
	rhs := e.Rhs.ProverEvaluate(b, a, accessor).Bools()
	proveBooleanProduct(b, a, lhs, rhs)
	out := a.Bools(len(lhs))
	for i := range out {
		out[i] = lhs[i] || rhs[i]
	}
	return database.BoolsView(out)
}

func (e *OrExpr) VerifierEvaluate(b *proof.VerificationBuilder, accessor database.CommitmentAccessor) (fr.Element, error) {
	lhs, err := e.Lhs.VerifierEvaluate(b, accessor)
	if err != nil {
		return fr.Element{}, err
	}
	rhs, err := e.Rhs.VerifierEvaluate(b, accessor)
	if err != nil {
		return fr.Element{}, err
	}
	prod, err := verifyProduct(b, lhs, rhs)
	if err != nil {
		return fr.Element{}, err
	}
	var out fr.Element
	out.Add(&lhs, &rhs)
	out.Sub(&out, &prod)
	return out, nil
}

func (e *OrExpr) ColumnReferences(refs map[database.ColumnRef]struct{}) {
	e.Lhs.ColumnReferences(refs)
	e.Rhs.ColumnReferences(refs)
}
