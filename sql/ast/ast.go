// Package ast provides the provable expression nodes. Each node implements
// proof.ProvableExpr: it evaluates its output column, records the algebraic
// evidence proving that evaluation, and replays the corresponding checks on
// the verifier side. Trees are built once and shared by all passes; a
// malformed tree is a programmer error and panics at construction.
package ast

import (
	"fmt"

	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/database"
)

func mustBoolean(c database.ColumnType) {
	if c.Kind != database.KindBoolean {
		panic(fmt.Sprintf("expression is %s, want boolean", c))
	}
}

func mustNumeric(c database.ColumnType) {
	switch c.Kind {
	case database.KindSmallInt, database.KindInt, database.KindBigInt, database.KindScalar, database.KindDecimal75:
	default:
		panic(fmt.Sprintf("expression is %s, want a numeric type", c))
	}
}
