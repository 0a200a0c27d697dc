// Package scalar converts column values into bn254 scalar field elements.
// All protocol arithmetic (intermediate MLEs, sumcheck subpolynomials,
// commitment openings) happens over this field.
package scalar

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// One returns the field element 1.
func One() fr.Element {
	return fr.One()
}

// FromBool returns 1 for true and 0 for false.
func FromBool(b bool) fr.Element {
	var e fr.Element
	if b {
		e.SetOne()
	}
	return e
}

// FromInt64 maps a signed integer into the field; negative values wrap to
// their additive inverse modulo the field order.
func FromInt64(v int64) fr.Element {
	var e fr.Element
	e.SetInt64(v)
	return e
}

// FromString hashes a string into the field. Equal strings map to equal
// scalars; the map is injective up to hash collisions, which is what the
// equality argument over text columns relies on.
func FromString(s string) fr.Element {
	h := mimc.NewMiMC()
	var block [fr.Bytes]byte
	for i := 0; i < len(s); i += fr.Bytes - 1 {
		for j := range block {
			block[j] = 0
		}
		copy(block[1:], s[i:min(len(s), i+fr.Bytes-1)])
		_, _ = h.Write(block[:])
	}
	var e fr.Element
	e.SetBytes(h.Sum(nil))
	return e
}

// FromBools fills dst with the field images of src.
func FromBools(dst []fr.Element, src []bool) {
	for i := range src {
		dst[i] = FromBool(src[i])
	}
}

// FromInt16s fills dst with the field images of src.
func FromInt16s(dst []fr.Element, src []int16) {
	for i := range src {
		dst[i].SetInt64(int64(src[i]))
	}
}

// FromInt32s fills dst with the field images of src.
func FromInt32s(dst []fr.Element, src []int32) {
	for i := range src {
		dst[i].SetInt64(int64(src[i]))
	}
}

// FromInt64s fills dst with the field images of src.
func FromInt64s(dst []fr.Element, src []int64) {
	for i := range src {
		dst[i].SetInt64(src[i])
	}
}

// FromStrings fills dst with the field images of src.
func FromStrings(dst []fr.Element, src []string) {
	for i := range src {
		dst[i] = FromString(src[i])
	}
}
