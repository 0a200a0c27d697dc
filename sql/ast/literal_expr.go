package ast

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/arena"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/database"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/scalar"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/sql/proof"
)

// LiteralValue is a typed constant embedded in a query.
type LiteralValue struct {
	Type database.ColumnType
	Bool bool
	Int  int64
}

// BoolLiteral wraps a boolean constant.
func BoolLiteral(v bool) LiteralValue {
	return LiteralValue{Type: database.NewColumnType(database.KindBoolean), Bool: v}
}

// BigIntLiteral wraps an integer constant.
func BigIntLiteral(v int64) LiteralValue {
	return LiteralValue{Type: database.NewColumnType(database.KindBigInt), Int: v}
}

// Scalar returns the field embedding of the constant.
func (v LiteralValue) Scalar() fr.Element {
	switch v.Type.Kind {
	case database.KindBoolean:
		return scalar.FromBool(v.Bool)
	case database.KindBigInt:
		return scalar.FromInt64(v.Int)
	default:
		panic(fmt.Sprintf("unsupported literal type %s", v.Type))
	}
}

// LiteralExpr is a leaf repeating one constant on every row. It needs no
// proof artifacts of its own: the verifier scales the constant by the
// evaluation of the all-ones column.
type LiteralExpr struct {
	Value LiteralValue
}

// NewLiteralExpr returns a leaf for the constant.
func NewLiteralExpr(v LiteralValue) *LiteralExpr {
	return &LiteralExpr{Value: v}
}

func (e *LiteralExpr) Count(b *proof.CountBuilder) error {
	return nil
}

func (e *LiteralExpr) DataType() database.ColumnType {
	return e.Value.Type
}

func (e *LiteralExpr) ResultEvaluate(tableLength int, a *arena.Arena, accessor database.DataAccessor) database.Column {
	switch e.Value.Type.Kind {
	case database.KindBoolean:
		vals := a.Bools(tableLength)
		for i := range vals {
			vals[i] = e.Value.Bool
		}
		return database.BoolsView(vals)
	case database.KindBigInt:
		vals := make([]int64, tableLength)
		for i := range vals {
			vals[i] = e.Value.Int
		}
		return database.BigIntsView(vals)
	default:
		panic(fmt.Sprintf("unsupported literal type %s", e.Value.Type))
	}
}

func (e *LiteralExpr) ProverEvaluate(b *proof.ProofBuilder, a *arena.Arena, accessor database.DataAccessor) database.Column {
	return e.ResultEvaluate(b.TableLength(), a, accessor)
}

func (e *LiteralExpr) VerifierEvaluate(b *proof.VerificationBuilder, accessor database.CommitmentAccessor) (fr.Element, error) {
	v := e.Value.Scalar()
	one := b.OneEvaluation()
	var out fr.Element
	out.Mul(&v, &one)
	return out, nil
}

func (e *LiteralExpr) ColumnReferences(refs map[database.ColumnRef]struct{}) {}
