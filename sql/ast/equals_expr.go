package ast

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/arena"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/database"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/sql/proof"
)

// EqualsExpr tests row-wise equality of its operands over their field
// embedding. With d = lhs - rhs it commits two auxiliary columns, the
// inverse of d where d is nonzero and the negated selection
// selNot = (d != 0), tied together by
//
//	d - selNot*d = 0
//	selNot - d*inv = 0
//
// Both identities hold on zero padding, so no padding-specific terms are
// needed. The output is NOT selNot, which the verifier derives from the
// all-ones evaluation.
type EqualsExpr struct {
	Lhs proof.ProvableExpr
	Rhs proof.ProvableExpr
}

// NewEqualsExpr compares two expressions of compatible types. Text compares
// only with text; every numeric and boolean kind compares through its field
// embedding.
func NewEqualsExpr(lhs, rhs proof.ProvableExpr) *EqualsExpr {
	lk := lhs.DataType().Kind
	rk := rhs.DataType().Kind
	if (lk == database.KindVarChar) != (rk == database.KindVarChar) {
		panic(fmt.Sprintf("cannot compare %s with %s", lhs.DataType(), rhs.DataType()))
	}
	return &EqualsExpr{Lhs: lhs, Rhs: rhs}
}

func (e *EqualsExpr) Count(b *proof.CountBuilder) error {
	if err := e.Lhs.Count(b); err != nil {
		return err
	}
	if err := e.Rhs.Count(b); err != nil {
		return err
	}
	b.CountIntermediateMLEs(2)
	b.CountSubpolynomials(2)
	return b.CountDegree(3)
}

func (e *EqualsExpr) DataType() database.ColumnType {
	return database.NewColumnType(database.KindBoolean)
}

func (e *EqualsExpr) ResultEvaluate(tableLength int, a *arena.Arena, accessor database.DataAccessor) database.Column {
	lhs := e.Lhs.ResultEvaluate(tableLength, a, accessor).ToScalars(a)
	rhs := e.Rhs.ResultEvaluate(tableLength, a, accessor).ToScalars(a)
	out := a.Bools(len(lhs))
	for i := range out {
		out[i] = lhs[i].Equal(&rhs[i])
	}
	return database.BoolsView(out)
}

func (e *EqualsExpr) ProverEvaluate(b *proof.ProofBuilder, a *arena.Arena, accessor database.DataAccessor) database.Column {
	lhs := e.Lhs.ProverEvaluate(b, a, accessor).ToScalars(a)
	rhs := e.Rhs.ProverEvaluate(b, a, accessor).ToScalars(a)
	n := len(lhs)

	d := a.Scalars(n)
	for i := range d {
		d[i].Sub(&lhs[i], &rhs[i])
	}
	// zero entries stay zero
	inv := fr.BatchInvert(d)

	selNot := a.Scalars(n)
	out := a.Bools(n)
	for i := range d {
		if d[i].IsZero() {
			out[i] = true
		} else {
			selNot[i].SetOne()
		}
	}

	b.ProduceIntermediateMLE(inv)
	b.ProduceIntermediateMLE(selNot)

	var minusOne fr.Element
	minusOne.SetOne()
	minusOne.Neg(&minusOne)
	var one fr.Element
	one.SetOne()

	b.ProduceSumcheckSubpolynomial(proof.Identity, []proof.SumcheckTerm{
		{Coefficient: one, Factors: [][]fr.Element{d}},
		{Coefficient: minusOne, Factors: [][]fr.Element{selNot, d}},
	})
	b.ProduceSumcheckSubpolynomial(proof.Identity, []proof.SumcheckTerm{
		{Coefficient: one, Factors: [][]fr.Element{selNot}},
		{Coefficient: minusOne, Factors: [][]fr.Element{d, inv}},
	})
	return database.BoolsView(out)
}

func (e *EqualsExpr) VerifierEvaluate(b *proof.VerificationBuilder, accessor database.CommitmentAccessor) (fr.Element, error) {
	lhs, err := e.Lhs.VerifierEvaluate(b, accessor)
	if err != nil {
		return fr.Element{}, err
	}
	rhs, err := e.Rhs.VerifierEvaluate(b, accessor)
	if err != nil {
		return fr.Element{}, err
	}
	var d fr.Element
	d.Sub(&lhs, &rhs)

	inv, err := b.ConsumeIntermediateMLE()
	if err != nil {
		return fr.Element{}, err
	}
	selNot, err := b.ConsumeIntermediateMLE()
	if err != nil {
		return fr.Element{}, err
	}
	rand := b.RandomEvaluation()

	var c1 fr.Element
	c1.Mul(&selNot, &d)
	c1.Sub(&d, &c1)
	c1.Mul(&c1, &rand)
	if err := b.ProduceSumcheckSubpolynomialEvaluation(c1); err != nil {
		return fr.Element{}, err
	}

	var c2 fr.Element
	c2.Mul(&d, &inv)
	c2.Sub(&selNot, &c2)
	c2.Mul(&c2, &rand)
	if err := b.ProduceSumcheckSubpolynomialEvaluation(c2); err != nil {
		return fr.Element{}, err
	}

	one := b.OneEvaluation()
	var out fr.Element
	out.Sub(&one, &selNot)
	return out, nil
}

func (e *EqualsExpr) ColumnReferences(refs map[database.ColumnRef]struct{}) {
	e.Lhs.ColumnReferences(refs)
	e.Rhs.ColumnReferences(refs)
}
