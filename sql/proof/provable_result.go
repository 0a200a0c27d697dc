package proof

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/ronanh/intcomp"

	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/database"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/polynomial"
	baseproof "github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/proof"
)

// ProvableQueryResult is the materialized result column in the transmissible
// form the transcript binds: the verifier re-derives the result's multilinear
// evaluation from these bytes rather than trusting a prover claim.
type ProvableQueryResult struct {
	column database.OwnedColumn
}

// NewProvableQueryResult wraps an owned result column.
func NewProvableQueryResult(col database.OwnedColumn) *ProvableQueryResult {
	return &ProvableQueryResult{column: col}
}

// Column returns the result column.
func (r *ProvableQueryResult) Column() database.OwnedColumn {
	return r.column
}

// Evaluate computes the multilinear extension of the result column,
// zero-padded to 2^len(point) rows, at point.
func (r *ProvableQueryResult) Evaluate(point []fr.Element) fr.Element {
	return polynomial.Pad(r.column.Scalars(), len(point)).Evaluate(point)
}

func zigzag(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

func unzigzag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// Bytes returns the deterministic wire encoding of the result: a small
// header, then a kind-specific payload (bitset for booleans, compressed
// integers for the integer widths, length-prefixed strings for text, raw
// field elements otherwise).
func (r *ProvableQueryResult) Bytes() ([]byte, error) {
	typ := r.column.Type()
	n := r.column.Len()

	var buf bytes.Buffer
	buf.WriteByte(byte(typ.Kind))
	buf.WriteByte(typ.Precision)
	buf.WriteByte(typ.Scale)
	if err := binary.Write(&buf, binary.LittleEndian, uint64(n)); err != nil {
		return nil, err
	}

	switch typ.Kind {
	case database.KindBoolean:
		bs := bitset.New(uint(n))
		for i, v := range r.column.Bools() {
			if v {
				bs.Set(uint(i))
			}
		}
		data, err := bs.MarshalBinary()
		if err != nil {
			return nil, err
		}
		if err := binary.Write(&buf, binary.LittleEndian, uint64(len(data))); err != nil {
			return nil, err
		}
		buf.Write(data)

	case database.KindSmallInt, database.KindInt, database.KindBigInt:
		u := make([]uint64, n)
		view := r.column.View()
		switch typ.Kind {
		case database.KindSmallInt:
			for i, v := range view.SmallInts() {
				u[i] = zigzag(int64(v))
			}
		case database.KindInt:
			for i, v := range view.Ints() {
				u[i] = zigzag(int64(v))
			}
		default:
			for i, v := range view.BigInts() {
				u[i] = zigzag(v)
			}
		}
		if err := writeCompressedUints(&buf, u); err != nil {
			return nil, err
		}

	case database.KindVarChar:
		for _, s := range r.column.Strings() {
			if err := binary.Write(&buf, binary.LittleEndian, uint32(len(s))); err != nil {
				return nil, err
			}
			buf.WriteString(s)
		}

	case database.KindScalar, database.KindDecimal75:
		for _, e := range r.column.Scalars() {
			b := e.Bytes()
			buf.Write(b[:])
		}

	default:
		return nil, fmt.Errorf("unsupported result column kind %s", typ.Kind)
	}

	return buf.Bytes(), nil
}

// ProvableQueryResultFromBytes decodes a result encoded by Bytes. The input
// is untrusted; every declared length is checked against the bytes that
// actually remain before anything is allocated.
func ProvableQueryResultFromBytes(data []byte) (*ProvableQueryResult, error) {
	buf := bytes.NewReader(data)

	var header [3]byte
	if _, err := io.ReadFull(buf, header[:]); err != nil {
		return nil, fmt.Errorf("reading result header: %w", err)
	}
	typ := database.ColumnType{
		Kind:      database.ColumnKind(header[0]),
		Precision: header[1],
		Scale:     header[2],
	}
	var n64 uint64
	if err := binary.Read(buf, binary.LittleEndian, &n64); err != nil {
		return nil, fmt.Errorf("reading result length: %w", err)
	}
	n := int(n64)

	switch typ.Kind {
	case database.KindBoolean:
		var dataLen uint64
		if err := binary.Read(buf, binary.LittleEndian, &dataLen); err != nil {
			return nil, err
		}
		if dataLen > uint64(buf.Len()) {
			return nil, fmt.Errorf("%w: boolean payload declares %d bytes, %d remain", baseproof.ErrInvalidProofShape, dataLen, buf.Len())
		}
		raw := make([]byte, dataLen)
		if _, err := io.ReadFull(buf, raw); err != nil {
			return nil, err
		}
		var bs bitset.BitSet
		if err := bs.UnmarshalBinary(raw); err != nil {
			return nil, err
		}
		if n64 > dataLen*8 {
			return nil, fmt.Errorf("%w: boolean result declares %d rows, payload holds at most %d", baseproof.ErrInvalidProofShape, n64, dataLen*8)
		}
		vals := make([]bool, n)
		for i := range vals {
			vals[i] = bs.Test(uint(i))
		}
		return NewProvableQueryResult(database.BoolsColumn(vals...)), nil

	case database.KindSmallInt, database.KindInt, database.KindBigInt:
		u, err := readCompressedUints(buf, n)
		if err != nil {
			return nil, err
		}
		if len(u) != n {
			return nil, fmt.Errorf("result declares %d rows, payload has %d", n, len(u))
		}
		switch typ.Kind {
		case database.KindSmallInt:
			vals := make([]int16, n)
			for i := range u {
				vals[i] = int16(unzigzag(u[i]))
			}
			return NewProvableQueryResult(database.SmallIntsColumn(vals...)), nil
		case database.KindInt:
			vals := make([]int32, n)
			for i := range u {
				vals[i] = int32(unzigzag(u[i]))
			}
			return NewProvableQueryResult(database.IntsColumn(vals...)), nil
		default:
			vals := make([]int64, n)
			for i := range u {
				vals[i] = unzigzag(u[i])
			}
			return NewProvableQueryResult(database.BigIntsColumn(vals...)), nil
		}

	case database.KindVarChar:
		if n64 > uint64(buf.Len())/4 {
			return nil, fmt.Errorf("%w: varchar result declares %d rows, %d bytes remain", baseproof.ErrInvalidProofShape, n64, buf.Len())
		}
		vals := make([]string, n)
		for i := range vals {
			var l uint32
			if err := binary.Read(buf, binary.LittleEndian, &l); err != nil {
				return nil, err
			}
			if uint64(l) > uint64(buf.Len()) {
				return nil, fmt.Errorf("%w: string declares %d bytes, %d remain", baseproof.ErrInvalidProofShape, l, buf.Len())
			}
			raw := make([]byte, l)
			if _, err := io.ReadFull(buf, raw); err != nil {
				return nil, err
			}
			vals[i] = string(raw)
		}
		return NewProvableQueryResult(database.VarCharColumn(vals...)), nil

	case database.KindScalar, database.KindDecimal75:
		if n64 > uint64(buf.Len())/fr.Bytes {
			return nil, fmt.Errorf("%w: scalar result declares %d rows, %d bytes remain", baseproof.ErrInvalidProofShape, n64, buf.Len())
		}
		vals := make([]fr.Element, n)
		var raw [fr.Bytes]byte
		for i := range vals {
			if _, err := io.ReadFull(buf, raw[:]); err != nil {
				return nil, err
			}
			vals[i].SetBytes(raw[:])
		}
		if typ.Kind == database.KindDecimal75 {
			return NewProvableQueryResult(database.DecimalsColumn(typ.Precision, typ.Scale, vals...)), nil
		}
		return NewProvableQueryResult(database.ScalarsColumn(vals...)), nil

	default:
		return nil, fmt.Errorf("unsupported result column kind %d", header[0])
	}
}

func writeCompressedUints(buf *bytes.Buffer, u []uint64) error {
	compressed := intcomp.CompressUint64(u, nil)
	if err := binary.Write(buf, binary.LittleEndian, uint64(len(compressed))); err != nil {
		return err
	}
	return binary.Write(buf, binary.LittleEndian, compressed)
}

func readCompressedUints(r *bytes.Reader, maxRows int) ([]uint64, error) {
	var length uint64
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return nil, err
	}
	if length > uint64(r.Len())/8 {
		return nil, fmt.Errorf("%w: compressed payload declares %d words, %d bytes remain", baseproof.ErrInvalidProofShape, length, r.Len())
	}
	buffer := make([]uint64, length)
	if err := binary.Read(r, binary.LittleEndian, buffer); err != nil {
		return nil, err
	}
	if err := checkCompressedBlocks(buffer, maxRows); err != nil {
		return nil, err
	}
	return intcomp.UncompressUint64(buffer, nil), nil
}

// checkCompressedBlocks walks the intcomp block headers before decompression.
// The decoder sizes its output and advances its cursor from these headers, so
// a header that jumps out of the stream or claims more rows than the result
// length must be rejected up front.
func checkCompressedBlocks(buffer []uint64, maxRows int) error {
	blocks := buffer
	if len(blocks) > 0 {
		// last word is the trailing block-length marker, not a header
		blocks = blocks[:len(blocks)-1]
	}
	rows := 0
	for i := 0; i < len(blocks); {
		count := int(int32(blocks[i]))
		step := int(blocks[i] >> 32)
		if count < 0 || step <= 0 || step > len(blocks)-i {
			return fmt.Errorf("%w: malformed compressed integer block header", baseproof.ErrInvalidProofShape)
		}
		rows += count
		if rows > maxRows {
			return fmt.Errorf("%w: compressed payload expands past the declared %d rows", baseproof.ErrInvalidProofShape, maxRows)
		}
		i += step
	}
	return nil
}
