package proof

import (
	"encoding/binary"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/database"
	baseproof "github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/proof"
)

func roundTrip(t *testing.T, r *ProvableQueryResult) *ProvableQueryResult {
	t.Helper()
	data, err := r.Bytes()
	require.NoError(t, err)
	back, err := ProvableQueryResultFromBytes(data)
	require.NoError(t, err)
	require.Equal(t, r.Column().Type(), back.Column().Type())
	require.Equal(t, r.Column().Len(), back.Column().Len())
	return back
}

func TestResultBytesBooleans(t *testing.T) {
	r := NewProvableQueryResult(database.BoolsColumn(true, false, true, true, false))
	back := roundTrip(t, r)
	require.Equal(t, r.Column().Bools(), back.Column().Bools())
}

func TestResultBytesBigInts(t *testing.T) {
	r := NewProvableQueryResult(database.BigIntsColumn(0, 1, -1, 1<<40, -(1 << 40)))
	back := roundTrip(t, r)
	require.Equal(t, r.Column().BigInts(), back.Column().BigInts())
}

func TestResultBytesVarChar(t *testing.T) {
	r := NewProvableQueryResult(database.VarCharColumn("", "a", "hello world"))
	back := roundTrip(t, r)
	require.Equal(t, r.Column().Strings(), back.Column().Strings())
}

func TestResultBytesScalars(t *testing.T) {
	vals := make([]fr.Element, 3)
	for i := range vals {
		_, err := vals[i].SetRandom()
		require.NoError(t, err)
	}
	r := NewProvableQueryResult(database.ScalarsColumn(vals...))
	back := roundTrip(t, r)
	require.Equal(t, r.Column().Scalars(), back.Column().Scalars())
}

func TestResultBytesEmptyColumn(t *testing.T) {
	r := NewProvableQueryResult(database.BoolsColumn())
	back := roundTrip(t, r)
	require.Equal(t, 0, back.Column().Len())
}

func TestResultBytesEncodingIsDeterministic(t *testing.T) {
	r := NewProvableQueryResult(database.BigIntsColumn(4, 5, 6))
	a, err := r.Bytes()
	require.NoError(t, err)
	b, err := r.Bytes()
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestResultFromBytesRejectsGarbage(t *testing.T) {
	_, err := ProvableQueryResultFromBytes(nil)
	require.Error(t, err)

	_, err = ProvableQueryResultFromBytes([]byte{0xff, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0})
	require.Error(t, err)
}

func TestResultFromBytesRejectsHostileLengths(t *testing.T) {
	header := func(kind database.ColumnKind, n uint64) []byte {
		b := []byte{byte(kind), 0, 0}
		return binary.LittleEndian.AppendUint64(b, n)
	}
	u64 := binary.LittleEndian.AppendUint64

	// compressed word count far past the payload
	data := u64(header(database.KindBigInt, 1), 1<<60)
	_, err := ProvableQueryResultFromBytes(data)
	require.ErrorIs(t, err, baseproof.ErrInvalidProofShape)

	// bitset byte count far past the payload
	data = u64(header(database.KindBoolean, 1), 1<<60)
	_, err = ProvableQueryResultFromBytes(data)
	require.ErrorIs(t, err, baseproof.ErrInvalidProofShape)

	// row count past what the bitset payload can hold
	honest, err := NewProvableQueryResult(database.BoolsColumn(true)).Bytes()
	require.NoError(t, err)
	binary.LittleEndian.PutUint64(honest[3:], 1<<40)
	_, err = ProvableQueryResultFromBytes(honest)
	require.ErrorIs(t, err, baseproof.ErrInvalidProofShape)

	// varchar row count with no payload behind it
	_, err = ProvableQueryResultFromBytes(header(database.KindVarChar, 1<<60))
	require.ErrorIs(t, err, baseproof.ErrInvalidProofShape)

	// string length past the remaining bytes
	data = append(header(database.KindVarChar, 1), 0xff, 0xff, 0xff, 0xff)
	_, err = ProvableQueryResultFromBytes(data)
	require.ErrorIs(t, err, baseproof.ErrInvalidProofShape)

	// scalar row count with no payload behind it
	_, err = ProvableQueryResultFromBytes(header(database.KindScalar, 1<<60))
	require.ErrorIs(t, err, baseproof.ErrInvalidProofShape)

	// block header whose step of zero would stall the integer decoder
	data = u64(u64(u64(header(database.KindBigInt, 1), 2), 1), 0)
	_, err = ProvableQueryResultFromBytes(data)
	require.ErrorIs(t, err, baseproof.ErrInvalidProofShape)
}

func TestResultFromBytesRejectsTruncation(t *testing.T) {
	honest, err := NewProvableQueryResult(database.ScalarsColumn(fr.One(), fr.One())).Bytes()
	require.NoError(t, err)
	// a cut payload must error rather than decode into zero-filled values
	_, err = ProvableQueryResultFromBytes(honest[:len(honest)-8])
	require.Error(t, err)
}

func TestResultEvaluateMatchesData(t *testing.T) {
	r := NewProvableQueryResult(database.BigIntsColumn(1, 2, 3))
	// evaluation at a corner reads one table entry
	var zero fr.Element
	var one fr.Element
	one.SetOne()
	got := r.Evaluate([]fr.Element{zero, one})
	var want fr.Element
	want.SetUint64(2)
	require.True(t, got.Equal(&want))
}

func TestZigzag(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 1 << 62, -(1 << 62)} {
		require.Equal(t, v, unzigzag(zigzag(v)))
	}
	// small magnitudes map to small codes
	require.Equal(t, uint64(0), zigzag(0))
	require.Equal(t, uint64(1), zigzag(-1))
	require.Equal(t, uint64(2), zigzag(1))
}
