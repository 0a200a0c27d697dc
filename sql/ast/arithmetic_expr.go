package ast

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/arena"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/database"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/scalar"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/sql/proof"
)

// Arithmetic nodes operate on the field embedding of their operands and
// produce scalar columns. Addition and subtraction are linear and add
// nothing to the proof; multiplication commits its product column like
// AndExpr does.

// AddExpr is row-wise addition.
type AddExpr struct {
	Lhs proof.ProvableExpr
	Rhs proof.ProvableExpr
}

// NewAddExpr adds two numeric expressions.
func NewAddExpr(lhs, rhs proof.ProvableExpr) *AddExpr {
	mustNumeric(lhs.DataType())
	mustNumeric(rhs.DataType())
	return &AddExpr{Lhs: lhs, Rhs: rhs}
}

func (e *AddExpr) Count(b *proof.CountBuilder) error {
	if err := e.Lhs.Count(b); err != nil {
		return err
	}
	return e.Rhs.Count(b)
}

func (e *AddExpr) DataType() database.ColumnType {
	return database.NewColumnType(database.KindScalar)
}

func (e *AddExpr) ResultEvaluate(tableLength int, a *arena.Arena, accessor database.DataAccessor) database.Column {
	lhs := e.Lhs.ResultEvaluate(tableLength, a, accessor).ToScalars(a)
	rhs := e.Rhs.ResultEvaluate(tableLength, a, accessor).ToScalars(a)
	out := a.Scalars(len(lhs))
	for i := range out {
		out[i].Add(&lhs[i], &rhs[i])
	}
	return database.ScalarsView(out)
}

func (e *AddExpr) ProverEvaluate(b *proof.ProofBuilder, a *arena.Arena, accessor database.DataAccessor) database.Column {
	lhs := e.Lhs.ProverEvaluate(b, a, accessor).ToScalars(a)
	rhs := e.Rhs.ProverEvaluate(b, a, accessor).ToScalars(a)
	out := a.Scalars(len(lhs))
	for i := range out {
		out[i].Add(&lhs[i], &rhs[i])
	}
	return database.ScalarsView(out)
}

func (e *AddExpr) VerifierEvaluate(b *proof.VerificationBuilder, accessor database.CommitmentAccessor) (fr.Element, error) {
	lhs, err := e.Lhs.VerifierEvaluate(b, accessor)
	if err != nil {
		return fr.Element{}, err
	}
	rhs, err := e.Rhs.VerifierEvaluate(b, accessor)
	if err != nil {
		return fr.Element{}, err
	}
	var out fr.Element
	out.Add(&lhs, &rhs)
	return out, nil
}

func (e *AddExpr) ColumnReferences(refs map[database.ColumnRef]struct{}) {
	e.Lhs.ColumnReferences(refs)
	e.Rhs.ColumnReferences(refs)
}

// SubtractExpr is row-wise subtraction.
type SubtractExpr struct {
	Lhs proof.ProvableExpr
	Rhs proof.ProvableExpr
}

// NewSubtractExpr subtracts rhs from lhs.
func NewSubtractExpr(lhs, rhs proof.ProvableExpr) *SubtractExpr {
	mustNumeric(lhs.DataType())
	mustNumeric(rhs.DataType())
	return &SubtractExpr{Lhs: lhs, Rhs: rhs}
}

func (e *SubtractExpr) Count(b *proof.CountBuilder) error {
	if err := e.Lhs.Count(b); err != nil {
		return err
	}
	return e.Rhs.Count(b)
}

func (e *SubtractExpr) DataType() database.ColumnType {
	return database.NewColumnType(database.KindScalar)
}

func (e *SubtractExpr) ResultEvaluate(tableLength int, a *arena.Arena, accessor database.DataAccessor) database.Column {
	lhs := e.Lhs.ResultEvaluate(tableLength, a, accessor).ToScalars(a)
	rhs := e.Rhs.ResultEvaluate(tableLength, a, accessor).ToScalars(a)
	out := a.Scalars(len(lhs))
	for i := range out {
		out[i].Sub(&lhs[i], &rhs[i])
	}
	return database.ScalarsView(out)
}

func (e *SubtractExpr) ProverEvaluate(b *proof.ProofBuilder, a *arena.Arena, accessor database.DataAccessor) database.Column {
	lhs := e.Lhs.ProverEvaluate(b, a, accessor).ToScalars(a)
	rhs := e.Rhs.ProverEvaluate(b, a, accessor).ToScalars(a)
	out := a.Scalars(len(lhs))
	for i := range out {
		out[i].Sub(&lhs[i], &rhs[i])
	}
	return database.ScalarsView(out)
}

func (e *SubtractExpr) VerifierEvaluate(b *proof.VerificationBuilder, accessor database.CommitmentAccessor) (fr.Element, error) {
	lhs, err := e.Lhs.VerifierEvaluate(b, accessor)
	if err != nil {
		return fr.Element{}, err
	}
	rhs, err := e.Rhs.VerifierEvaluate(b, accessor)
	if err != nil {
		return fr.Element{}, err
	}
	var out fr.Element
	out.Sub(&lhs, &rhs)
	return out, nil
}

func (e *SubtractExpr) ColumnReferences(refs map[database.ColumnRef]struct{}) {
	e.Lhs.ColumnReferences(refs)
	e.Rhs.ColumnReferences(refs)
}

// MultiplyExpr is row-wise multiplication. The product column is committed
// as an intermediate MLE and tied to the operands by prod - lhs*rhs = 0.
type MultiplyExpr struct {
	Lhs proof.ProvableExpr
	Rhs proof.ProvableExpr
}

// NewMultiplyExpr multiplies two numeric expressions.
func NewMultiplyExpr(lhs, rhs proof.ProvableExpr) *MultiplyExpr {
	mustNumeric(lhs.DataType())
	mustNumeric(rhs.DataType())
	return &MultiplyExpr{Lhs: lhs, Rhs: rhs}
}

func (e *MultiplyExpr) Count(b *proof.CountBuilder) error {
	if err := e.Lhs.Count(b); err != nil {
		return err
	}
	if err := e.Rhs.Count(b); err != nil {
		return err
	}
	b.CountIntermediateMLEs(1)
	b.CountSubpolynomials(1)
	return b.CountDegree(3)
}

func (e *MultiplyExpr) DataType() database.ColumnType {
	return database.NewColumnType(database.KindScalar)
}

func (e *MultiplyExpr) ResultEvaluate(tableLength int, a *arena.Arena, accessor database.DataAccessor) database.Column {
	lhs := e.Lhs.ResultEvaluate(tableLength, a, accessor).ToScalars(a)
	rhs := e.Rhs.ResultEvaluate(tableLength, a, accessor).ToScalars(a)
	out := a.Scalars(len(lhs))
	for i := range out {
		out[i].Mul(&lhs[i], &rhs[i])
	}
	return database.ScalarsView(out)
}

func (e *MultiplyExpr) ProverEvaluate(b *proof.ProofBuilder, a *arena.Arena, accessor database.DataAccessor) database.Column {
	lhs := e.Lhs.ProverEvaluate(b, a, accessor).ToScalars(a)
	rhs := e.Rhs.ProverEvaluate(b, a, accessor).ToScalars(a)
	out := a.Scalars(len(lhs))
	for i := range out {
		out[i].Mul(&lhs[i], &rhs[i])
	}

	b.ProduceIntermediateMLE(out)

	var minusOne fr.Element
	minusOne.SetOne()
	minusOne.Neg(&minusOne)
	b.ProduceSumcheckSubpolynomial(proof.Identity, []proof.SumcheckTerm{
		{Coefficient: scalar.One(), Factors: [][]fr.Element{out}},
		{Coefficient: minusOne, Factors: [][]fr.Element{lhs, rhs}},
	})
	return database.ScalarsView(out)
}

func (e *MultiplyExpr) VerifierEvaluate(b *proof.VerificationBuilder, accessor database.CommitmentAccessor) (fr.Element, error) {
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

func (e *MultiplyExpr) ColumnReferences(refs map[database.ColumnRef]struct{}) {
	e.Lhs.ColumnReferences(refs)
	e.Rhs.ColumnReferences(refs)
}
