package ast

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"

	proofofsql "github.com/Ramirodiegolandscape/sxt-proof-of-sql"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/logger"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/sql/proof"
)

// exprEnvelope versions the serialized tree so decoders can detect artifacts
// written by other releases.
type exprEnvelope struct {
	Version string
	Expr    proof.ProvableExpr
}

func getTagSet() cbor.TagSet {
	ts := cbor.NewTagSet()
	// https://www.iana.org/assignments/cbor-tags/cbor-tags.xhtml
	// 65536-15309735 Unassigned
	tagNum := uint64(5317400)
	addType := func(t reflect.Type) {
		if err := ts.Add(
			cbor.TagOptions{EncTag: cbor.EncTagRequired, DecTag: cbor.DecTagRequired},
			t,
			tagNum,
		); err != nil {
			panic(err)
		}
		tagNum++
	}

	addType(reflect.TypeOf(ColumnExpr{}))
	addType(reflect.TypeOf(LiteralExpr{}))
	addType(reflect.TypeOf(NotExpr{}))
	addType(reflect.TypeOf(AndExpr{}))
	addType(reflect.TypeOf(OrExpr{}))
	addType(reflect.TypeOf(EqualsExpr{}))
	addType(reflect.TypeOf(AddExpr{}))
	addType(reflect.TypeOf(SubtractExpr{}))
	addType(reflect.TypeOf(MultiplyExpr{}))

	return ts
}

// ExprToBytes serializes an expression tree deterministically; the node set
// is closed, so every concrete type carries a fixed CBOR tag.
func ExprToBytes(expr proof.ProvableExpr) ([]byte, error) {
	enc, err := cbor.CoreDetEncOptions().EncModeWithTags(getTagSet())
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	env := exprEnvelope{Version: proofofsql.Version.String(), Expr: expr}
	if err := enc.NewEncoder(buf).Encode(&env); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExprFromBytes deserializes an expression tree and checks the version
// header. A version mismatch is logged, not rejected.
func ExprFromBytes(data []byte) (proof.ProvableExpr, error) {
	dm, err := cbor.DecOptions{
		MaxArrayElements: 2147483647,
		MaxMapPairs:      2147483647,
	}.DecModeWithTags(getTagSet())
	if err != nil {
		return nil, err
	}
	var env exprEnvelope
	if err := dm.NewDecoder(bytes.NewReader(data)).Decode(&env); err != nil {
		return nil, err
	}
	objectVersion, err := semver.Parse(env.Version)
	if err != nil {
		return nil, fmt.Errorf("when parsing expression version: %w", err)
	}
	if proofofsql.Version.Compare(objectVersion) != 0 {
		log := logger.Logger()
		log.Warn().Str("binary", proofofsql.Version.String()).Str("object", objectVersion.String()).Msg("version mismatch with serialized expression. there are no guarantees on compatibility")
	}
	if env.Expr == nil {
		return nil, fmt.Errorf("serialized expression is empty")
	}
	return env.Expr, nil
}
