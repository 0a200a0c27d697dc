// Package proofofsql implements a proof-of-SQL protocol: a prover evaluates a
// SQL expression over a committed database and produces a succinct argument
// that the result is correct, so a verifier can accept the result using only
// column commitments and the transmitted proof.
//
// The cryptographic core lives under sql/proof (the count/prover/verifier
// builders and the end-to-end QueryProof) and sql/ast (the closed set of
// provable expression nodes). Supporting primitives live under base/.
package proofofsql

import (
	"github.com/blang/semver/v4"
)

// Version of the proof format. Serialized artifacts embed it and
// deserialization warns when the binary and the artifact disagree.
var Version = semver.MustParse("0.1.0")
