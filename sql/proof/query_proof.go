package proof

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"runtime"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"
	"golang.org/x/sync/errgroup"

	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/arena"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/commitment"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/database"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/polynomial"
	baseproof "github.com/Ramirodiegolandscape/sxt-proof-of-sql/base/proof"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/logger"
	"github.com/Ramirodiegolandscape/sxt-proof-of-sql/sumcheck"
)

// Accessor is what the prover holds: column data plus the commitments the
// verifier will check against.
type Accessor interface {
	database.DataAccessor
	database.CommitmentAccessor
}

// QueryProof is the transmissible proof artifact: commitments to every
// intermediate MLE, the sumcheck transcript, and the claimed openings of the
// intermediate MLEs at the sumcheck point. Order is part of the protocol.
type QueryProof struct {
	MLECommitments []commitment.Commitment
	Sumcheck       sumcheck.Proof
	MLEEvaluations []fr.Element
}

type config struct {
	nbTasks int
}

// Option configures proving and verifying.
type Option func(*config)

// WithNbTasks bounds the parallelism used to commit intermediate MLEs.
func WithNbTasks(n int) Option {
	return func(c *config) {
		c.nbTasks = n
	}
}

func newConfig(opts []Option) config {
	cfg := config{nbTasks: runtime.NumCPU()}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// Prove evaluates expr over the table and produces the result together with
// a proof of its correctness. Referenced columns are validated against the
// table length before any cryptographic work.
func Prove(expr ProvableExpr, table database.TableRef, accessor Accessor, key *commitment.Key, opts ...Option) (*QueryProof, *ProvableQueryResult, error) {
	cfg := newConfig(opts)
	n := accessor.TableLength(table)
	log := logger.Logger().With().Str("table", table.String()).Int("rows", n).Logger()
	log.Debug().Msg("prover started")
	start := time.Now()

	// shape pass
	cb := NewCountBuilder()
	if err := expr.Count(cb); err != nil {
		return nil, nil, err
	}
	counts := cb.Counts()

	// reject malformed inputs before any cryptographic work
	refs := make(map[database.ColumnRef]struct{})
	expr.ColumnReferences(refs)
	sortedRefs := sortColumnRefs(refs)
	for _, ref := range sortedRefs {
		col, err := accessor.Column(ref)
		if err != nil {
			return nil, nil, err
		}
		if col.Len() != n {
			return nil, nil, fmt.Errorf("column %s has %d rows, table %s has %d", ref, col.Len(), table, n)
		}
	}

	// result pass
	resultArena := arena.New()
	resultCol := expr.ResultEvaluate(n, resultArena, accessor)
	result := NewProvableQueryResult(database.OwnedColumnFromView(resultCol))
	resultArena.Reset()

	// prover pass
	builder := NewProofBuilder(n, counts)
	proverArena := arena.New()
	expr.ProverEvaluate(builder, proverArena, accessor)
	if len(builder.IntermediateMLEs()) != counts.IntermediateMLEs ||
		builder.NumSumcheckSubpolynomials() != counts.SumcheckSubpolynomials {
		return nil, nil, fmt.Errorf("%w: counted (%d MLEs, %d subpolynomials), produced (%d, %d)",
			baseproof.ErrInvalidProofShape,
			counts.IntermediateMLEs, counts.SumcheckSubpolynomials,
			len(builder.IntermediateMLEs()), builder.NumSumcheckSubpolynomials())
	}

	// commit to the intermediate MLEs; order is preserved, work is not
	mles := builder.IntermediateMLEs()
	mleComms := make([]commitment.Commitment, len(mles))
	var g errgroup.Group
	g.SetLimit(cfg.nbTasks)
	for i := range mles {
		i := i
		g.Go(func() error {
			var err error
			mleComms[i], err = key.Commit(mles[i])
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	// transcript: everything both parties know, then challenges
	resultBytes, err := result.Bytes()
	if err != nil {
		return nil, nil, err
	}
	colComms := make([]commitment.Commitment, len(sortedRefs))
	for i, ref := range sortedRefs {
		if colComms[i], err = accessor.Commitment(ref); err != nil {
			return nil, nil, err
		}
	}
	fs, rIDs, mIDs, sIDs := newTranscript(builder.NumVars(), counts.SumcheckSubpolynomials)
	if err := bindStatement(fs, rIDs[0], n, resultBytes, colComms, mleComms); err != nil {
		return nil, nil, err
	}
	r, err := deriveChallenges(fs, rIDs)
	if err != nil {
		return nil, nil, err
	}
	multipliers, err := deriveChallenges(fs, mIDs)
	if err != nil {
		return nil, nil, err
	}

	// sumcheck over the batched constraint polynomial
	eq := polynomial.FoldedEqTable(r)
	poly, err := builder.SumcheckPolynomial(eq, multipliers)
	if err != nil {
		return nil, nil, err
	}
	scProof, point, err := sumcheck.Prove(poly, fs, sIDs)
	if err != nil {
		return nil, nil, err
	}

	// open the intermediate MLEs at the sumcheck point
	evals := make([]fr.Element, len(mles))
	for i := range mles {
		evals[i] = polynomial.Pad(mles[i], builder.NumVars()).Evaluate(point)
	}
	proverArena.Reset()

	log.Debug().
		Dur("took", time.Since(start)).
		Int("constraints", counts.SumcheckSubpolynomials).
		Int("intermediateMLEs", counts.IntermediateMLEs).
		Msg("prover done")

	return &QueryProof{
		MLECommitments: mleComms,
		Sumcheck:       scProof,
		MLEEvaluations: evals,
	}, result, nil
}

// Verify checks a claimed result against a proof using only commitments and
// the transmitted artifacts. Shape mismatches are rejected before the
// cryptographic checks and surface as ErrInvalidProofShape; a failing
// equality surfaces as ErrVerificationFailed.
func Verify(expr ProvableExpr, table database.TableRef, accessor database.CommitmentAccessor, result *ProvableQueryResult, qp *QueryProof, opts ...Option) error {
	n := accessor.TableLength(table)
	log := logger.Logger().With().Str("table", table.String()).Int("rows", n).Logger()
	log.Debug().Msg("verifier started")
	start := time.Now()

	cb := NewCountBuilder()
	if err := expr.Count(cb); err != nil {
		return err
	}
	counts := cb.Counts()
	numVars := NumVars(n)
	degree := counts.SumcheckMaxDegree
	if degree < 1 {
		degree = 1
	}

	// shape checks come first, before any cryptographic work
	if len(qp.MLECommitments) != counts.IntermediateMLEs || len(qp.MLEEvaluations) != counts.IntermediateMLEs {
		return fmt.Errorf("%w: proof carries %d MLE commitments and %d evaluations, counted %d",
			baseproof.ErrInvalidProofShape, len(qp.MLECommitments), len(qp.MLEEvaluations), counts.IntermediateMLEs)
	}
	if result.Column().Len() != n {
		return fmt.Errorf("%w: result has %d rows, table %s has %d", baseproof.ErrInvalidProofShape, result.Column().Len(), table, n)
	}
	if result.Column().Type() != expr.DataType() {
		return fmt.Errorf("%w: result is %s, expression produces %s", baseproof.ErrInvalidProofShape, result.Column().Type(), expr.DataType())
	}

	// transcript replay
	resultBytes, err := result.Bytes()
	if err != nil {
		return err
	}
	refs := make(map[database.ColumnRef]struct{})
	expr.ColumnReferences(refs)
	sortedRefs := sortColumnRefs(refs)
	colComms := make([]commitment.Commitment, len(sortedRefs))
	for i, ref := range sortedRefs {
		if colComms[i], err = accessor.Commitment(ref); err != nil {
			return err
		}
	}
	fs, rIDs, mIDs, sIDs := newTranscript(numVars, counts.SumcheckSubpolynomials)
	if err := bindStatement(fs, rIDs[0], n, resultBytes, colComms, qp.MLECommitments); err != nil {
		return err
	}
	r, err := deriveChallenges(fs, rIDs)
	if err != nil {
		return err
	}
	multipliers, err := deriveChallenges(fs, mIDs)
	if err != nil {
		return err
	}

	// the constraints all claim zero, so the sumcheck claim is zero
	var zero fr.Element
	point, finalValue, err := sumcheck.Verify(zero, numVars, degree, qp.Sumcheck, fs, sIDs)
	if err != nil {
		return err
	}

	// fold the claimed evaluations through the tree
	builder := NewVerificationBuilder(
		point,
		polynomial.EvalEq(r, point),
		polynomial.OnesPrefixEvaluation(n, point),
		qp.MLEEvaluations,
		multipliers,
	)
	rootEval, err := expr.VerifierEvaluate(builder, accessor)
	if err != nil {
		return err
	}
	if err := builder.Finish(counts); err != nil {
		return err
	}

	// single aggregate equality against the sumcheck claim
	aggregate := builder.Aggregate()
	if !aggregate.Equal(&finalValue) {
		return fmt.Errorf("%w: constraint aggregate does not match the sumcheck claim", baseproof.ErrVerificationFailed)
	}

	// the root must open to the transmitted result
	resultEval := result.Evaluate(point)
	if !rootEval.Equal(&resultEval) {
		return fmt.Errorf("%w: expression evaluation does not match the claimed result", baseproof.ErrVerificationFailed)
	}

	log.Debug().Dur("took", time.Since(start)).Msg("verifier done")
	return nil
}

func sortColumnRefs(refs map[database.ColumnRef]struct{}) []database.ColumnRef {
	sorted := make([]database.ColumnRef, 0, len(refs))
	for ref := range refs {
		sorted = append(sorted, ref)
	}
	// canonical order shared by prover and verifier
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].String() < sorted[j-1].String(); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted
}

// newTranscript registers every challenge the protocol will derive, in
// order: the evaluation point r, the constraint batching multipliers, the
// sumcheck round challenges.
func newTranscript(numVars, numSubpolynomials int) (*fiatshamir.Transcript, []string, []string, []string) {
	rIDs := make([]string, numVars)
	for i := range rIDs {
		rIDs[i] = fmt.Sprintf("r.%d", i)
	}
	mIDs := make([]string, numSubpolynomials)
	for i := range mIDs {
		mIDs[i] = fmt.Sprintf("m.%d", i)
	}
	sIDs := make([]string, numVars)
	for i := range sIDs {
		sIDs[i] = fmt.Sprintf("s.%d", i)
	}
	all := make([]string, 0, len(rIDs)+len(mIDs)+len(sIDs))
	all = append(all, rIDs...)
	all = append(all, mIDs...)
	all = append(all, sIDs...)
	return fiatshamir.NewTranscript(sha256.New(), all...), rIDs, mIDs, sIDs
}

// bindStatement feeds everything both parties agree on into the transcript
// before the first challenge: table length, result bytes, column
// commitments in canonical order, intermediate MLE commitments in protocol
// order.
func bindStatement(fs *fiatshamir.Transcript, challenge string, tableLength int, resultBytes []byte, colComms, mleComms []commitment.Commitment) error {
	var lenBytes [8]byte
	binary.BigEndian.PutUint64(lenBytes[:], uint64(tableLength))
	if err := fs.Bind(challenge, lenBytes[:]); err != nil {
		return err
	}
	if err := fs.Bind(challenge, resultBytes); err != nil {
		return err
	}
	for i := range colComms {
		if err := fs.Bind(challenge, colComms[i].RawBytes()); err != nil {
			return err
		}
	}
	for i := range mleComms {
		if err := fs.Bind(challenge, mleComms[i].RawBytes()); err != nil {
			return err
		}
	}
	return nil
}

// deriveChallenges computes each named challenge in registration order. The
// transcript chains the previous challenge into the next, so one statement
// binding seeds the whole sequence.
func deriveChallenges(fs *fiatshamir.Transcript, ids []string) ([]fr.Element, error) {
	out := make([]fr.Element, len(ids))
	for i, id := range ids {
		if err := fs.Bind(id, []byte(id)); err != nil {
			return nil, err
		}
		b, err := fs.ComputeChallenge(id)
		if err != nil {
			return nil, err
		}
		out[i].SetBytes(b)
	}
	return out, nil
}
