package database

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/scalar"
)

// OwnedColumn is the independently owned form of a column, used for
// materialized query results and for test tables.
type OwnedColumn struct {
	typ       ColumnType
	bools     []bool
	smallInts []int16
	ints      []int32
	bigInts   []int64
	varChar   []string
	scalars   []fr.Element
}

// BoolsColumn builds an owned boolean column.
func BoolsColumn(vals ...bool) OwnedColumn {
	return OwnedColumn{typ: NewColumnType(KindBoolean), bools: vals}
}

// SmallIntsColumn builds an owned int16 column.
func SmallIntsColumn(vals ...int16) OwnedColumn {
	return OwnedColumn{typ: NewColumnType(KindSmallInt), smallInts: vals}
}

// IntsColumn builds an owned int32 column.
func IntsColumn(vals ...int32) OwnedColumn {
	return OwnedColumn{typ: NewColumnType(KindInt), ints: vals}
}

// BigIntsColumn builds an owned int64 column.
func BigIntsColumn(vals ...int64) OwnedColumn {
	return OwnedColumn{typ: NewColumnType(KindBigInt), bigInts: vals}
}

// VarCharColumn builds an owned text column.
func VarCharColumn(vals ...string) OwnedColumn {
	return OwnedColumn{typ: NewColumnType(KindVarChar), varChar: vals}
}

// ScalarsColumn builds an owned field-element column.
func ScalarsColumn(vals ...fr.Element) OwnedColumn {
	return OwnedColumn{typ: NewColumnType(KindScalar), scalars: vals}
}

// DecimalsColumn builds an owned decimal column.
func DecimalsColumn(precision, scale uint8, vals ...fr.Element) OwnedColumn {
	return OwnedColumn{typ: NewDecimalType(precision, scale), scalars: vals}
}

// OwnedColumnFromView deep-copies a borrowed view into an owned column.
func OwnedColumnFromView(c Column) OwnedColumn {
	switch c.typ.Kind {
	case KindBoolean:
		return OwnedColumn{typ: c.typ, bools: append([]bool(nil), c.bools...)}
	case KindSmallInt:
		return OwnedColumn{typ: c.typ, smallInts: append([]int16(nil), c.smallInts...)}
	case KindInt:
		return OwnedColumn{typ: c.typ, ints: append([]int32(nil), c.ints...)}
	case KindBigInt:
		return OwnedColumn{typ: c.typ, bigInts: append([]int64(nil), c.bigInts...)}
	case KindVarChar:
		return OwnedColumn{typ: c.typ, varChar: append([]string(nil), c.varChar...)}
	default:
		return OwnedColumn{typ: c.typ, scalars: append([]fr.Element(nil), c.scalars...)}
	}
}

// Type returns the column's declared type.
func (c OwnedColumn) Type() ColumnType {
	return c.typ
}

// Len returns the number of rows.
func (c OwnedColumn) Len() int {
	return c.View().Len()
}

// View returns a borrowed view over the owned data.
func (c OwnedColumn) View() Column {
	return Column{
		typ:       c.typ,
		bools:     c.bools,
		smallInts: c.smallInts,
		ints:      c.ints,
		bigInts:   c.bigInts,
		varChar:   c.varChar,
		scalars:   c.scalars,
	}
}

// Bools returns the boolean values, panicking on a kind mismatch.
func (c OwnedColumn) Bools() []bool {
	return c.View().Bools()
}

// BigInts returns the int64 values, panicking on a kind mismatch.
func (c OwnedColumn) BigInts() []int64 {
	return c.View().BigInts()
}

// Strings returns the text values, panicking on a kind mismatch.
func (c OwnedColumn) Strings() []string {
	return c.View().Strings()
}

// Scalars materializes the field-element image of the column. Text values
// are hashed into the field; all other kinds embed directly.
func (c OwnedColumn) Scalars() []fr.Element {
	n := c.Len()
	s := make([]fr.Element, n)
	switch c.typ.Kind {
	case KindBoolean:
		scalar.FromBools(s, c.bools)
	case KindSmallInt:
		scalar.FromInt16s(s, c.smallInts)
	case KindInt:
		scalar.FromInt32s(s, c.ints)
	case KindBigInt:
		scalar.FromInt64s(s, c.bigInts)
	case KindVarChar:
		scalar.FromStrings(s, c.varChar)
	default:
		copy(s, c.scalars)
	}
	return s
}

// OwnedTable is a set of equal-length owned columns keyed by name.
type OwnedTable struct {
	names   []string
	columns map[string]OwnedColumn
}

// NewOwnedTable returns an empty table.
func NewOwnedTable() *OwnedTable {
	return &OwnedTable{columns: make(map[string]OwnedColumn)}
}

// Insert adds a named column, rejecting duplicates and length mismatches.
func (t *OwnedTable) Insert(name string, col OwnedColumn) error {
	if _, ok := t.columns[name]; ok {
		return fmt.Errorf("duplicate column %q", name)
	}
	if len(t.names) > 0 && col.Len() != t.NumRows() {
		return fmt.Errorf("column %q has %d rows, table has %d", name, col.Len(), t.NumRows())
	}
	t.names = append(t.names, name)
	t.columns[name] = col
	return nil
}

// Column returns the named column.
func (t *OwnedTable) Column(name string) (OwnedColumn, bool) {
	c, ok := t.columns[name]
	return c, ok
}

// Names returns the column names in insertion order.
func (t *OwnedTable) Names() []string {
	return t.names
}

// NumRows returns the table length.
func (t *OwnedTable) NumRows() int {
	if len(t.names) == 0 {
		return 0
	}
	return t.columns[t.names[0]].Len()
}
