// Package database defines the typed columnar data model the protocol
// evaluates over: column types, borrowed column views for one evaluation
// pass, independently owned result columns, and the accessor contracts
// through which column data and commitments are consumed.
package database

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/arena"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/scalar"
)

// ColumnKind tags the supported column value kinds.
type ColumnKind uint8

const (
	KindBoolean ColumnKind = iota + 1
	KindSmallInt
	KindInt
	KindBigInt
	KindVarChar
	KindScalar
	KindDecimal75
)

func (k ColumnKind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindSmallInt:
		return "smallint"
	case KindInt:
		return "int"
	case KindBigInt:
		return "bigint"
	case KindVarChar:
		return "varchar"
	case KindScalar:
		return "scalar"
	case KindDecimal75:
		return "decimal75"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// ColumnType is a column kind plus precision and scale for decimals.
type ColumnType struct {
	Kind      ColumnKind
	Precision uint8
	Scale     uint8
}

// NewColumnType returns the type for a kind without precision or scale.
func NewColumnType(k ColumnKind) ColumnType {
	return ColumnType{Kind: k}
}

// NewDecimalType returns a decimal type with the given precision and scale.
func NewDecimalType(precision, scale uint8) ColumnType {
	return ColumnType{Kind: KindDecimal75, Precision: precision, Scale: scale}
}

func (t ColumnType) String() string {
	if t.Kind == KindDecimal75 {
		return fmt.Sprintf("decimal75(%d,%d)", t.Precision, t.Scale)
	}
	return t.Kind.String()
}

// Column is a borrowed, typed view over one table's values for one
// evaluation pass. The backing slices belong to the pass's arena or to the
// accessor that produced them; a Column must not outlive its pass.
type Column struct {
	typ       ColumnType
	bools     []bool
	smallInts []int16
	ints      []int32
	bigInts   []int64
	varChar   []string
	scalars   []fr.Element
}

// BoolsView wraps a boolean slice as a column view.
func BoolsView(vals []bool) Column {
	return Column{typ: NewColumnType(KindBoolean), bools: vals}
}

// SmallIntsView wraps an int16 slice as a column view.
func SmallIntsView(vals []int16) Column {
	return Column{typ: NewColumnType(KindSmallInt), smallInts: vals}
}

// IntsView wraps an int32 slice as a column view.
func IntsView(vals []int32) Column {
	return Column{typ: NewColumnType(KindInt), ints: vals}
}

// BigIntsView wraps an int64 slice as a column view.
func BigIntsView(vals []int64) Column {
	return Column{typ: NewColumnType(KindBigInt), bigInts: vals}
}

// VarCharView wraps a string slice as a column view.
func VarCharView(vals []string) Column {
	return Column{typ: NewColumnType(KindVarChar), varChar: vals}
}

// ScalarsView wraps a field-element slice as a column view.
func ScalarsView(vals []fr.Element) Column {
	return Column{typ: NewColumnType(KindScalar), scalars: vals}
}

// DecimalsView wraps a field-element slice as a decimal column view.
func DecimalsView(t ColumnType, vals []fr.Element) Column {
	return Column{typ: t, scalars: vals}
}

// Type returns the column's declared type.
func (c Column) Type() ColumnType {
	return c.typ
}

// Len returns the number of rows in the view.
func (c Column) Len() int {
	switch c.typ.Kind {
	case KindBoolean:
		return len(c.bools)
	case KindSmallInt:
		return len(c.smallInts)
	case KindInt:
		return len(c.ints)
	case KindBigInt:
		return len(c.bigInts)
	case KindVarChar:
		return len(c.varChar)
	default:
		return len(c.scalars)
	}
}

// Bools returns the boolean values. The caller must hold a type-checked
// tree; a kind mismatch here is a contract violation and panics.
func (c Column) Bools() []bool {
	if c.typ.Kind != KindBoolean {
		panic(fmt.Sprintf("column is %s, not boolean", c.typ))
	}
	return c.bools
}

// SmallInts returns the int16 values, panicking on a kind mismatch.
func (c Column) SmallInts() []int16 {
	if c.typ.Kind != KindSmallInt {
		panic(fmt.Sprintf("column is %s, not smallint", c.typ))
	}
	return c.smallInts
}

// Ints returns the int32 values, panicking on a kind mismatch.
func (c Column) Ints() []int32 {
	if c.typ.Kind != KindInt {
		panic(fmt.Sprintf("column is %s, not int", c.typ))
	}
	return c.ints
}

// BigInts returns the int64 values, panicking on a kind mismatch.
func (c Column) BigInts() []int64 {
	if c.typ.Kind != KindBigInt {
		panic(fmt.Sprintf("column is %s, not bigint", c.typ))
	}
	return c.bigInts
}

// Strings returns the text values, panicking on a kind mismatch.
func (c Column) Strings() []string {
	if c.typ.Kind != KindVarChar {
		panic(fmt.Sprintf("column is %s, not varchar", c.typ))
	}
	return c.varChar
}

// Scalars returns the field-element values, panicking on a kind mismatch.
func (c Column) Scalars() []fr.Element {
	if c.typ.Kind != KindScalar && c.typ.Kind != KindDecimal75 {
		panic(fmt.Sprintf("column is %s, not scalar", c.typ))
	}
	return c.scalars
}

// ToScalars converts the view into field elements allocated from the
// pass's arena. Scalar-backed kinds are returned as-is without copying.
func (c Column) ToScalars(a *arena.Arena) []fr.Element {
	switch c.typ.Kind {
	case KindScalar, KindDecimal75:
		return c.scalars
	case KindBoolean:
		s := a.Scalars(len(c.bools))
		scalar.FromBools(s, c.bools)
		return s
	case KindSmallInt:
		s := a.Scalars(len(c.smallInts))
		scalar.FromInt16s(s, c.smallInts)
		return s
	case KindInt:
		s := a.Scalars(len(c.ints))
		scalar.FromInt32s(s, c.ints)
		return s
	case KindBigInt:
		s := a.Scalars(len(c.bigInts))
		scalar.FromInt64s(s, c.bigInts)
		return s
	case KindVarChar:
		s := a.Scalars(len(c.varChar))
		scalar.FromStrings(s, c.varChar)
		return s
	default:
		panic(fmt.Sprintf("unsupported column kind %s", c.typ.Kind))
	}
}
