package commitment

import (
	"encoding/binary"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// domain separation tag for deriving the commitment bases
const keyDST = "sxt-proof-of-sql:commitment-key:v1"

// Key holds one independent G1 base per table row. Prover and verifier must
// derive the key from the same domain tag for commitments to match.
type Key struct {
	bases []bn254.G1Affine
}

// NewKey derives a key supporting columns of up to maxLength rows. The bases
// come from hash-to-curve, so no party knows their discrete logarithms.
func NewKey(maxLength int) (*Key, error) {
	bases := make([]bn254.G1Affine, maxLength)
	var msg [8]byte
	for i := range bases {
		binary.BigEndian.PutUint64(msg[:], uint64(i))
		p, err := bn254.HashToG1(msg[:], []byte(keyDST))
		if err != nil {
			return nil, fmt.Errorf("deriving commitment base %d: %w", i, err)
		}
		bases[i] = p
	}
	return &Key{bases: bases}, nil
}

// MaxLength returns the longest column the key can commit to.
func (k *Key) MaxLength() int {
	return len(k.bases)
}

// Commit computes the multi-scalar product of values against the first
// len(values) bases.
func (k *Key) Commit(values []fr.Element) (Commitment, error) {
	var c Commitment
	if len(values) > len(k.bases) {
		return c, fmt.Errorf("column of length %d exceeds commitment key length %d", len(values), len(k.bases))
	}
	if len(values) == 0 {
		// commitment to the empty column is the identity
		return c, nil
	}
	if _, err := c.Point.MultiExp(k.bases[:len(values)], values, ecc.MultiExpConfig{}); err != nil {
		return c, err
	}
	return c, nil
}
