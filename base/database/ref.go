package database

import (
	"fmt"
	"strings"
)

// TableRef identifies a table as schema.name.
type TableRef struct {
	Schema string
	Name   string
}

// ParseTableRef parses "schema.table".
func ParseTableRef(s string) (TableRef, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return TableRef{}, fmt.Errorf("invalid table reference %q, want schema.table", s)
	}
	return TableRef{Schema: parts[0], Name: parts[1]}, nil
}

// MustParseTableRef parses "schema.table" and panics on malformed input.
// Intended for tests and static references.
func MustParseTableRef(s string) TableRef {
	t, err := ParseTableRef(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TableRef) String() string {
	return t.Schema + "." + t.Name
}

// ColumnRef is the identity key of a column: table, name and declared type.
// Data and commitment lookups are keyed by it, so the type carried here must
// agree with the expression node that produced the reference.
type ColumnRef struct {
	Table TableRef
	Name  string
	Type  ColumnType
}

// NewColumnRef builds a column reference.
func NewColumnRef(table TableRef, name string, typ ColumnType) ColumnRef {
	return ColumnRef{Table: table, Name: name, Type: typ}
}

func (c ColumnRef) String() string {
	return c.Table.String() + "." + c.Name + ":" + c.Type.String()
}
