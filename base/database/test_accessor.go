package database

import (
	"fmt"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/commitment"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/polynomial"
)

// TestAccessor is an in-memory DataAccessor and CommitmentAccessor over
// owned tables. Commitments use the real commitment key; opening
// evaluations are computed directly from the data, standing in for the
// external commitment scheme's opening argument.
type TestAccessor struct {
	key    *commitment.Key
	tables map[TableRef]*OwnedTable

	mu          sync.Mutex
	commitments map[ColumnRef]commitment.Commitment
}

// NewTestAccessor returns an accessor committing with key.
func NewTestAccessor(key *commitment.Key) *TestAccessor {
	return &TestAccessor{
		key:         key,
		tables:      make(map[TableRef]*OwnedTable),
		commitments: make(map[ColumnRef]commitment.Commitment),
	}
}

// AddTable registers a table. Re-registering a table replaces it.
func (a *TestAccessor) AddTable(table TableRef, t *OwnedTable) {
	a.tables[table] = t
}

// TableLength implements MetadataAccessor.
func (a *TestAccessor) TableLength(table TableRef) int {
	t, ok := a.tables[table]
	if !ok {
		return 0
	}
	return t.NumRows()
}

func (a *TestAccessor) lookup(ref ColumnRef) (OwnedColumn, error) {
	t, ok := a.tables[ref.Table]
	if !ok {
		return OwnedColumn{}, fmt.Errorf("unknown table %s", ref.Table)
	}
	col, ok := t.Column(ref.Name)
	if !ok {
		return OwnedColumn{}, fmt.Errorf("unknown column %s", ref)
	}
	if col.Type() != ref.Type {
		return OwnedColumn{}, fmt.Errorf("column %s has type %s, reference expects %s", ref.Name, col.Type(), ref.Type)
	}
	return col, nil
}

// Column implements DataAccessor.
func (a *TestAccessor) Column(ref ColumnRef) (Column, error) {
	col, err := a.lookup(ref)
	if err != nil {
		return Column{}, err
	}
	return col.View(), nil
}

// Commitment implements CommitmentAccessor. Commitments are computed on
// first use and cached.
func (a *TestAccessor) Commitment(ref ColumnRef) (commitment.Commitment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if c, ok := a.commitments[ref]; ok {
		return c, nil
	}
	col, err := a.lookup(ref)
	if err != nil {
		return commitment.Commitment{}, err
	}
	c, err := a.key.Commit(col.Scalars())
	if err != nil {
		return commitment.Commitment{}, err
	}
	a.commitments[ref] = c
	return c, nil
}

// OpeningEvaluation implements CommitmentAccessor by evaluating the padded
// multilinear extension of the column data at point.
func (a *TestAccessor) OpeningEvaluation(ref ColumnRef, point []fr.Element) (fr.Element, error) {
	col, err := a.lookup(ref)
	if err != nil {
		return fr.Element{}, err
	}
	values := col.Scalars()
	if len(values) > 1<<len(point) {
		return fr.Element{}, fmt.Errorf("column %s has %d rows, point only covers %d", ref, len(values), 1<<len(point))
	}
	return polynomial.Pad(values, len(point)).Evaluate(point), nil
}
