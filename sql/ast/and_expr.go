package ast

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/arena"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/database"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/scalar"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/sql/proof"
)

// AndExpr is logical conjunction. Its output is the row-wise product of the
// operands, committed as one intermediate MLE and tied to the operands by
// the identity constraint prod - lhs*rhs = 0.
type AndExpr struct {
	Lhs proof.ProvableExpr
	Rhs proof.ProvableExpr
}

// NewAndExpr conjoins two boolean expressions.
func NewAndExpr(lhs, rhs proof.ProvableExpr) *AndExpr {
	mustBoolean(lhs.DataType())
	mustBoolean(rhs.DataType())
	return &AndExpr{Lhs: lhs, Rhs: rhs}
}

func (e *AndExpr) Count(b *proof.CountBuilder) error {
	if err := e.Lhs.Count(b); err != nil {
		return err
	}
	if err := e.Rhs.Count(b); err != nil {
		return err
	}
	return countBooleanProduct(b)
}

func (e *AndExpr) DataType() database.ColumnType {
	return database.NewColumnType(database.KindBoolean)
}

func (e *AndExpr) ResultEvaluate(tableLength int, a *arena.Arena, accessor database.DataAccessor) database.Column {
	lhs := e.Lhs.ResultEvaluate(tableLength, a, accessor).Bools()
	rhs := e.Rhs.ResultEvaluate(tableLength, a, accessor).Bools()
	out := a.Bools(len(lhs))
	for i := range out {
		out[i] = lhs[i] && rhs[i]
	}
	return database.BoolsView(out)
}

func (e *AndExpr) ProverEvaluate(b *proof.ProofBuilder, a *arena.Arena, accessor database.DataAccessor) database.Column {
	lhs := e.Lhs.ProverEvaluate(b, a, accessor).Bools()
	rhs := e.Rhs.ProverEvaluate(b, a, accessor).Bools()
	prod, _ := proveBooleanProduct(b, a, lhs, rhs)
	return database.BoolsView(prod)
}

func (e *AndExpr) VerifierEvaluate(b *proof.VerificationBuilder, accessor database.CommitmentAccessor) (fr.Element, error) {
	lhs, err := e.Lhs.VerifierEvaluate(b, accessor)
	if err != nil {
		return fr.Element{}, err
	}
	rhs, err := e.Rhs.VerifierEvaluate(b, accessor)
	if err != nil {
		return fr.Element{}, err
	}
	return verifyProduct(b, lhs, rhs)
}

func (e *AndExpr) ColumnReferences(refs map[database.ColumnRef]struct{}) {
	e.Lhs.ColumnReferences(refs)
	e.Rhs.ColumnReferences(refs)
}

func countBooleanProduct(b *proof.CountBuilder) error {
	b.CountIntermediateMLEs(1)
	b.CountSubpolynomials(1)
	return b.CountDegree(3)
}

// proveBooleanProduct records the product column prod = lhs*rhs as an
// intermediate MLE together with its defining constraint, and returns the
// product both as booleans and as the committed scalar table.
func proveBooleanProduct(b *proof.ProofBuilder, a *arena.Arena, lhs, rhs []bool) ([]bool, []fr.Element) {
	n := len(lhs)
	prod := a.Bools(n)
	for i := range prod {
		prod[i] = lhs[i] && rhs[i]
	}

	ls := a.Scalars(n)
	scalar.FromBools(ls, lhs)
	rs := a.Scalars(n)
	scalar.FromBools(rs, rhs)
	ps := a.Scalars(n)
	scalar.FromBools(ps, prod)

	b.ProduceIntermediateMLE(ps)

	var minusOne fr.Element
	minusOne.SetOne()
	minusOne.Neg(&minusOne)
	b.ProduceSumcheckSubpolynomial(proof.Identity, []proof.SumcheckTerm{
		{Coefficient: scalar.One(), Factors: [][]fr.Element{ps}},
		{Coefficient: minusOne, Factors: [][]fr.Element{ls, rs}},
	})
	return prod, ps
}

// verifyProduct consumes the claimed product evaluation, folds the defining
// constraint into the aggregate, and returns the product evaluation.
func verifyProduct(b *proof.VerificationBuilder, lhs, rhs fr.Element) (fr.Element, error) {
	prod, err := b.ConsumeIntermediateMLE()
	if err != nil {
		return fr.Element{}, err
	}
	var c fr.Element
	c.Mul(&lhs, &rhs)
	c.Sub(&prod, &c)
	rand := b.RandomEvaluation()
	c.Mul(&c, &rand)
	if err := b.ProduceSumcheckSubpolynomialEvaluation(c); err != nil {
		return fr.Element{}, err
	}
	return prod, nil
}
