package proof

import (
	"bytes"
	"fmt"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"

	proofofsql "github.com/Ramirodiegolandscape/sxt-proof-of-sql"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/database"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/logger"
)

// VerifiableQueryResult bundles a query result with its proof so the pair can
// travel as one artifact.
type VerifiableQueryResult struct {
	Version string
	Result  []byte
	Proof   *QueryProof
}

// NewVerifiableQueryResult packages a result and proof under the current
// library version.
func NewVerifiableQueryResult(result *ProvableQueryResult, qp *QueryProof) (*VerifiableQueryResult, error) {
	resultBytes, err := result.Bytes()
	if err != nil {
		return nil, err
	}
	return &VerifiableQueryResult{
		Version: proofofsql.Version.String(),
		Result:  resultBytes,
		Proof:   qp,
	}, nil
}

// ToBytes serializes deterministically; equal artifacts produce equal bytes.
func (v *VerifiableQueryResult) ToBytes() ([]byte, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err := enc.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// VerifiableQueryResultFromBytes deserializes and checks the version header.
// A version mismatch is logged, not rejected; compatibility is then the
// caller's gamble.
func VerifiableQueryResultFromBytes(data []byte) (*VerifiableQueryResult, error) {
	dm, err := cbor.DecOptions{
		MaxArrayElements: 2147483647,
		MaxMapPairs:      2147483647,
	}.DecMode()
	if err != nil {
		return nil, err
	}
	v := new(VerifiableQueryResult)
	if err := dm.NewDecoder(bytes.NewReader(data)).Decode(v); err != nil {
		return nil, err
	}
	objectVersion, err := semver.Parse(v.Version)
	if err != nil {
		return nil, fmt.Errorf("when parsing artifact version: %w", err)
	}
	if proofofsql.Version.Compare(objectVersion) != 0 {
		log := logger.Logger()
		log.Warn().Str("binary", proofofsql.Version.String()).Str("object", objectVersion.String()).Msg("version mismatch with serialized query result. there are no guarantees on compatibility")
	}
	return v, nil
}

// Verify decodes the embedded result and checks it against the proof.
// It returns the decoded result on success.
func (v *VerifiableQueryResult) Verify(expr ProvableExpr, table database.TableRef, accessor database.CommitmentAccessor, opts ...Option) (*ProvableQueryResult, error) {
	result, err := ProvableQueryResultFromBytes(v.Result)
	if err != nil {
		return nil, err
	}
	if err := Verify(expr, table, accessor, result, v.Proof, opts...); err != nil {
		return nil, err
	}
	return result, nil
}
