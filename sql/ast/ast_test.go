package ast

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/arena"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/commitment"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/database"
	baseproof "github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/proof"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/sql/proof"
)

var testTable = database.MustParseTableRef("public.t")

func newAccessor(t *testing.T, cols map[string]database.OwnedColumn) (*database.TestAccessor, *commitment.Key) {
	t.Helper()
	key, err := commitment.NewKey(64)
	require.NoError(t, err)
	acc := database.NewTestAccessor(key)
	tbl := database.NewOwnedTable()
	for name, col := range cols {
		require.NoError(t, tbl.Insert(name, col))
	}
	acc.AddTable(testTable, tbl)
	return acc, key
}

func boolRef(name string) database.ColumnRef {
	return database.NewColumnRef(testTable, name, database.NewColumnType(database.KindBoolean))
}

func bigIntRef(name string) database.ColumnRef {
	return database.NewColumnRef(testTable, name, database.NewColumnType(database.KindBigInt))
}

func proveAndVerify(t *testing.T, expr proof.ProvableExpr, acc *database.TestAccessor, key *commitment.Key) *proof.ProvableQueryResult {
	t.Helper()
	qp, result, err := proof.Prove(expr, testTable, acc, key)
	require.NoError(t, err)
	require.NoError(t, proof.Verify(expr, testTable, acc, result, qp))
	return result
}

func TestOrTruthTable(t *testing.T) {
	acc, key := newAccessor(t, map[string]database.OwnedColumn{
		"l": database.BoolsColumn(true, false, true, false),
		"r": database.BoolsColumn(false, false, true, true),
	})
	expr := NewOrExpr(NewColumnExpr(boolRef("l")), NewColumnExpr(boolRef("r")))

	result := proveAndVerify(t, expr, acc, key)
	require.Equal(t, []bool{true, false, true, true}, result.Column().Bools())
}

func TestAndNotComposition(t *testing.T) {
	acc, key := newAccessor(t, map[string]database.OwnedColumn{
		"l": database.BoolsColumn(true, true, false, false, true),
		"r": database.BoolsColumn(true, false, true, false, true),
	})
	// l AND NOT r
	expr := NewAndExpr(
		NewColumnExpr(boolRef("l")),
		NewNotExpr(NewColumnExpr(boolRef("r"))),
	)

	result := proveAndVerify(t, expr, acc, key)
	require.Equal(t, []bool{false, true, false, false, false}, result.Column().Bools())
}

func TestEqualsColumnLiteral(t *testing.T) {
	acc, key := newAccessor(t, map[string]database.OwnedColumn{
		"a": database.BigIntsColumn(5, -5, 0, 5, 123),
	})
	expr := NewEqualsExpr(NewColumnExpr(bigIntRef("a")), NewLiteralExpr(BigIntLiteral(5)))

	result := proveAndVerify(t, expr, acc, key)
	require.Equal(t, []bool{true, false, false, true, false}, result.Column().Bools())
}

func TestEqualsColumnColumn(t *testing.T) {
	acc, key := newAccessor(t, map[string]database.OwnedColumn{
		"a": database.BigIntsColumn(1, 2, 3),
		"b": database.BigIntsColumn(1, 5, 3),
	})
	expr := NewEqualsExpr(NewColumnExpr(bigIntRef("a")), NewColumnExpr(bigIntRef("b")))

	result := proveAndVerify(t, expr, acc, key)
	require.Equal(t, []bool{true, false, true}, result.Column().Bools())
}

func TestEqualsVarChar(t *testing.T) {
	acc, key := newAccessor(t, map[string]database.OwnedColumn{
		"s": database.VarCharColumn("apple", "pear", "apple"),
		"u": database.VarCharColumn("apple", "apple", "plum"),
	})
	ref := func(name string) database.ColumnRef {
		return database.NewColumnRef(testTable, name, database.NewColumnType(database.KindVarChar))
	}
	expr := NewEqualsExpr(NewColumnExpr(ref("s")), NewColumnExpr(ref("u")))

	result := proveAndVerify(t, expr, acc, key)
	require.Equal(t, []bool{true, false, false}, result.Column().Bools())
}

func TestArithmetic(t *testing.T) {
	acc, key := newAccessor(t, map[string]database.OwnedColumn{
		"a": database.BigIntsColumn(1, 2, 3, 4),
		"b": database.BigIntsColumn(10, 20, 30, 40),
	})
	a := bigIntRef("a")
	b := bigIntRef("b")

	// (a + b) * (b - a) == b*b - a*a, provable on both sides
	lhs := NewMultiplyExpr(
		NewAddExpr(NewColumnExpr(a), NewColumnExpr(b)),
		NewSubtractExpr(NewColumnExpr(b), NewColumnExpr(a)),
	)
	rhs := NewSubtractExpr(
		NewMultiplyExpr(NewColumnExpr(b), NewColumnExpr(b)),
		NewMultiplyExpr(NewColumnExpr(a), NewColumnExpr(a)),
	)
	expr := NewEqualsExpr(lhs, rhs)

	result := proveAndVerify(t, expr, acc, key)
	require.Equal(t, []bool{true, true, true, true}, result.Column().Bools())
}

func TestEmptyTable(t *testing.T) {
	acc, key := newAccessor(t, map[string]database.OwnedColumn{
		"a": database.BigIntsColumn(),
	})
	expr := NewEqualsExpr(NewColumnExpr(bigIntRef("a")), NewLiteralExpr(BigIntLiteral(0)))

	result := proveAndVerify(t, expr, acc, key)
	require.Equal(t, 0, result.Column().Len())
}

func TestResultAndProverPassesAgree(t *testing.T) {
	acc, _ := newAccessor(t, map[string]database.OwnedColumn{
		"a": database.BigIntsColumn(3, 1, 4, 1, 5, 9, 2),
	})
	expr := NewEqualsExpr(NewColumnExpr(bigIntRef("a")), NewLiteralExpr(BigIntLiteral(1)))

	cb := proof.NewCountBuilder()
	require.NoError(t, expr.Count(cb))

	a1 := arena.New()
	resultCol := expr.ResultEvaluate(7, a1, acc)

	pb := proof.NewProofBuilder(7, cb.Counts())
	a2 := arena.New()
	proverCol := expr.ProverEvaluate(pb, a2, acc)

	require.Equal(t, resultCol.Bools(), proverCol.Bools())
}

func TestCountIsPureAndMatchesProver(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	acc, _ := newAccessor(t, map[string]database.OwnedColumn{
		"l": database.BoolsColumn(true, false, true),
		"r": database.BoolsColumn(false, true, true),
	})

	// generate random boolean trees over the two columns
	var genTree func(depth int) gopter.Gen
	genTree = func(depth int) gopter.Gen {
		leaf := gen.OneConstOf(
			proof.ProvableExpr(NewColumnExpr(boolRef("l"))),
			proof.ProvableExpr(NewColumnExpr(boolRef("r"))),
			proof.ProvableExpr(NewLiteralExpr(BoolLiteral(true))),
		)
		if depth == 0 {
			return leaf
		}
		return gen.Weighted([]gen.WeightedGen{
			{Weight: 1, Gen: leaf},
			{Weight: 2, Gen: gopter.CombineGens(genTree(depth-1), genTree(depth-1)).Map(
				func(vs []interface{}) proof.ProvableExpr {
					return NewAndExpr(vs[0].(proof.ProvableExpr), vs[1].(proof.ProvableExpr))
				})},
			{Weight: 2, Gen: gopter.CombineGens(genTree(depth-1), genTree(depth-1)).Map(
				func(vs []interface{}) proof.ProvableExpr {
					return NewOrExpr(vs[0].(proof.ProvableExpr), vs[1].(proof.ProvableExpr))
				})},
		})
	}

	properties.Property("count is repeatable and matches the prover pass", prop.ForAll(
		func(expr proof.ProvableExpr) bool {
			c1 := proof.NewCountBuilder()
			if err := expr.Count(c1); err != nil {
				return false
			}
			c2 := proof.NewCountBuilder()
			if err := expr.Count(c2); err != nil {
				return false
			}
			if c1.Counts() != c2.Counts() {
				return false
			}

			pb := proof.NewProofBuilder(3, c1.Counts())
			a := arena.New()
			expr.ProverEvaluate(pb, a, acc)
			return len(pb.IntermediateMLEs()) == c1.Counts().IntermediateMLEs &&
				pb.NumSumcheckSubpolynomials() == c1.Counts().SumcheckSubpolynomials
		},
		genTree(3),
	))

	properties.TestingRun(t)
}

func TestVerifyRejectsSwappedExpression(t *testing.T) {
	acc, key := newAccessor(t, map[string]database.OwnedColumn{
		"l": database.BoolsColumn(true, false, true, false),
		"r": database.BoolsColumn(false, false, true, true),
	})
	orExpr := NewOrExpr(NewColumnExpr(boolRef("l")), NewColumnExpr(boolRef("r")))
	andExpr := NewAndExpr(NewColumnExpr(boolRef("l")), NewColumnExpr(boolRef("r")))

	qp, result, err := proof.Prove(orExpr, testTable, acc, key)
	require.NoError(t, err)

	// same shape, different semantics: the proof must not transfer
	err = proof.Verify(andExpr, testTable, acc, result, qp)
	require.ErrorIs(t, err, baseproof.ErrVerificationFailed)
}

func TestVerifyRejectsBitFlip(t *testing.T) {
	acc, key := newAccessor(t, map[string]database.OwnedColumn{
		"a": database.BigIntsColumn(2, 4, 6, 8),
	})
	expr := NewEqualsExpr(NewColumnExpr(bigIntRef("a")), NewLiteralExpr(BigIntLiteral(4)))

	qp, result, err := proof.Prove(expr, testTable, acc, key)
	require.NoError(t, err)

	var one fr.Element
	one.SetOne()
	qp.Sumcheck.RoundEvaluations[0][0].Add(&qp.Sumcheck.RoundEvaluations[0][0], &one)
	err = proof.Verify(expr, testTable, acc, result, qp)
	require.ErrorIs(t, err, baseproof.ErrVerificationFailed)
}

func TestConstructorTypeChecks(t *testing.T) {
	boolCol := NewColumnExpr(boolRef("l"))
	intCol := NewColumnExpr(bigIntRef("a"))

	require.Panics(t, func() { NewNotExpr(intCol) })
	require.Panics(t, func() { NewAndExpr(boolCol, intCol) })
	require.Panics(t, func() { NewOrExpr(intCol, boolCol) })
	require.Panics(t, func() { NewAddExpr(boolCol, intCol) })
	require.Panics(t, func() { NewMultiplyExpr(intCol, boolCol) })

	varCharCol := NewColumnExpr(database.NewColumnRef(testTable, "s", database.NewColumnType(database.KindVarChar)))
	require.Panics(t, func() { NewEqualsExpr(varCharCol, intCol) })
}

func TestExprSerializationRoundTrip(t *testing.T) {
	expr := NewOrExpr(
		NewAndExpr(
			NewColumnExpr(boolRef("l")),
			NewNotExpr(NewColumnExpr(boolRef("r"))),
		),
		NewEqualsExpr(
			NewAddExpr(NewColumnExpr(bigIntRef("a")), NewLiteralExpr(BigIntLiteral(7))),
			NewColumnExpr(bigIntRef("b")),
		),
	)

	data, err := ExprToBytes(expr)
	require.NoError(t, err)

	// deterministic encoding
	data2, err := ExprToBytes(expr)
	require.NoError(t, err)
	require.Equal(t, data, data2)

	back, err := ExprFromBytes(data)
	require.NoError(t, err)
	require.Equal(t, expr, back)

	_, err = ExprFromBytes([]byte("not cbor"))
	require.Error(t, err)
}

func TestDecodedExpressionStillVerifies(t *testing.T) {
	acc, key := newAccessor(t, map[string]database.OwnedColumn{
		"l": database.BoolsColumn(true, false, true, false),
		"r": database.BoolsColumn(false, false, true, true),
	})
	expr := NewOrExpr(NewColumnExpr(boolRef("l")), NewColumnExpr(boolRef("r")))

	data, err := ExprToBytes(expr)
	require.NoError(t, err)
	back, err := ExprFromBytes(data)
	require.NoError(t, err)

	qp, result, err := proof.Prove(expr, testTable, acc, key)
	require.NoError(t, err)
	require.NoError(t, proof.Verify(back, testTable, acc, result, qp))
}
