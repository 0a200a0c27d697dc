package database

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/commitment"
)

// MetadataAccessor reports table-level metadata both parties agree on.
type MetadataAccessor interface {
	// TableLength returns the number of rows in the table, or 0 when the
	// table is unknown.
	TableLength(table TableRef) int
}

// DataAccessor resolves column references to column values for one table
// window. Only the prover holds one.
type DataAccessor interface {
	MetadataAccessor

	// Column returns the values for ref. The view stays valid for the
	// duration of one evaluation pass.
	Column(ref ColumnRef) (Column, error)
}

// CommitmentAccessor resolves column references to commitments and to
// opening evaluations at a challenge point. The opening itself is produced
// by the external commitment scheme; this interface consumes it as an
// oracle.
type CommitmentAccessor interface {
	MetadataAccessor

	// Commitment returns the binding value for ref.
	Commitment(ref ColumnRef) (commitment.Commitment, error)

	// OpeningEvaluation returns the multilinear extension of the committed
	// column, zero-padded to 2^len(point) rows, evaluated at point.
	OpeningEvaluation(ref ColumnRef, point []fr.Element) (fr.Element, error)
}
