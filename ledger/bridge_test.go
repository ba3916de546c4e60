package ledger

import (
	"context"
	"encoding/binary"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/enclavegrants/grantledger/oracle"
	"github.com/enclavegrants/grantledger/types"
)

// resultWords builds a 64-byte cleartext payload from the two result values.
func resultWords(approved, funding uint64) []byte {
	out := make([]byte, types.ResultWords*types.ResultWordSize)
	binary.BigEndian.PutUint64(out[types.ResultWordSize-8:types.ResultWordSize], approved)
	binary.BigEndian.PutUint64(out[2*types.ResultWordSize-8:], funding)
	return out
}

// setupClosedBatch opens a batch, fills it with one proposal from provA and
// one vote from provB, and closes it.
func setupClosedBatch(c *qt.C, tl *testLedger) {
	tl.addProvider(c, provA)
	tl.addProvider(c, provB)
	_, err := tl.OpenBatch(ownerAddr)
	c.Assert(err, qt.IsNil)
	_, err = tl.SubmitProposal(provA, handle(1), handle(2), handle(3), handle(4))
	c.Assert(err, qt.IsNil)
	_, err = tl.SubmitVote(provB, 1, provA, handle(5))
	c.Assert(err, qt.IsNil)
	c.Assert(tl.CloseBatch(ownerAddr), qt.IsNil)
}

func TestRequestDecryption(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	tl := newTestLedger(t)
	tl.addProvider(c, provA)

	// Nothing to decrypt yet.
	_, err := tl.RequestBatchResultDecryption(ctx, ownerAddr, 1)
	c.Assert(err, qt.Equals, ErrInvalidBatchState)

	_, err = tl.OpenBatch(ownerAddr)
	c.Assert(err, qt.IsNil)
	_, err = tl.SubmitProposal(provA, handle(1), handle(2), handle(3), handle(4))
	c.Assert(err, qt.IsNil)

	// Owner only.
	_, err = tl.RequestBatchResultDecryption(ctx, provA, 1)
	c.Assert(err, qt.Equals, ErrUnauthorized)
	// The currently open batch is never decryptable.
	_, err = tl.RequestBatchResultDecryption(ctx, ownerAddr, 1)
	c.Assert(err, qt.Equals, ErrInvalidBatchState)
	// Batch ids 0 and future ones do not exist.
	_, err = tl.RequestBatchResultDecryption(ctx, ownerAddr, 0)
	c.Assert(err, qt.Equals, ErrInvalidBatchState)
	_, err = tl.RequestBatchResultDecryption(ctx, ownerAddr, 2)
	c.Assert(err, qt.Equals, ErrInvalidBatchState)

	c.Assert(tl.CloseBatch(ownerAddr), qt.IsNil)

	dc, err := tl.RequestBatchResultDecryption(ctx, ownerAddr, 1)
	c.Assert(err, qt.IsNil)
	c.Assert(dc.RequestID, qt.Equals, uint64(1))
	c.Assert(uint64(dc.BatchID), qt.Equals, uint64(1))
	c.Assert(dc.Processed, qt.IsFalse)

	// The stored hash binds the canonical handle set and the identity.
	expected := oracle.StateHash([]types.CiphertextHandle{handle(1)}, identity)
	c.Assert([]byte(dc.StateHash), qt.DeepEquals, []byte(expected))

	// The decryption clock rate-limits repeat requests.
	_, err = tl.RequestBatchResultDecryption(ctx, ownerAddr, 1)
	c.Assert(err, qt.Equals, ErrCooldownActive)
	tl.clock.Advance(types.DefaultDecryptionCooldown)
	dc2, err := tl.RequestBatchResultDecryption(ctx, ownerAddr, 1)
	c.Assert(err, qt.IsNil)
	c.Assert(dc2.RequestID, qt.Equals, uint64(2))
}

func TestRequestDecryptionEmptyBatch(t *testing.T) {
	c := qt.New(t)
	tl := newTestLedger(t)

	_, err := tl.OpenBatch(ownerAddr)
	c.Assert(err, qt.IsNil)
	c.Assert(tl.CloseBatch(ownerAddr), qt.IsNil)

	// A batch with no proposals and no votes has no ciphertexts to fold.
	_, err = tl.RequestBatchResultDecryption(context.Background(), ownerAddr, 1)
	c.Assert(err, qt.Equals, ErrUninitializedHandle)
}

func TestDecryptionCallback(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	tl := newTestLedger(t)
	setupClosedBatch(c, tl)

	tl.engine.Resolver = func(_ []types.CiphertextHandle) []byte {
		return resultWords(1, 5000)
	}

	dc, err := tl.RequestBatchResultDecryption(ctx, ownerAddr, 1)
	c.Assert(err, qt.IsNil)

	cb, err := tl.engine.Resolve(dc.RequestID)
	c.Assert(err, qt.IsNil)

	// Unknown request ids are rejected outright.
	_, err = tl.OnDecryptionResult(999, cb.Cleartexts, cb.Proof)
	c.Assert(err, qt.Equals, ErrUnknownRequest)

	// A proof over different bytes does not verify.
	_, err = tl.OnDecryptionResult(dc.RequestID, cb.Cleartexts, handle(0xee))
	c.Assert(err, qt.Equals, ErrInvalidProof)

	result, err := tl.OnDecryptionResult(dc.RequestID, cb.Cleartexts, cb.Proof)
	c.Assert(err, qt.IsNil)
	c.Assert(result.ApprovedCount.String(), qt.Equals, "1")
	c.Assert(result.TotalFunding.String(), qt.Equals, "5000")
	c.Assert(uint64(result.BatchID), qt.Equals, uint64(1))

	stored, err := tl.DecryptionContext(dc.RequestID)
	c.Assert(err, qt.IsNil)
	c.Assert(stored.Processed, qt.IsTrue)

	// Exactly once: the identical delivery is a replay now.
	_, err = tl.OnDecryptionResult(dc.RequestID, cb.Cleartexts, cb.Proof)
	c.Assert(err, qt.Equals, ErrReplayAttempt)
}

func TestDecryptionCallbackCleartextLength(t *testing.T) {
	c := qt.New(t)
	tl := newTestLedger(t)
	setupClosedBatch(c, tl)

	// A validly proven payload of the wrong size must still be rejected.
	tl.engine.Resolver = func(_ []types.CiphertextHandle) []byte {
		return []byte{0x01, 0x02, 0x03}
	}

	dc, err := tl.RequestBatchResultDecryption(context.Background(), ownerAddr, 1)
	c.Assert(err, qt.IsNil)
	cb, err := tl.engine.Resolve(dc.RequestID)
	c.Assert(err, qt.IsNil)

	_, err = tl.OnDecryptionResult(dc.RequestID, cb.Cleartexts, cb.Proof)
	c.Assert(err, qt.Equals, ErrInvalidCleartextLength)

	// The context stays pending; a correct delivery can still land.
	stored, err := tl.DecryptionContext(dc.RequestID)
	c.Assert(err, qt.IsNil)
	c.Assert(stored.Processed, qt.IsFalse)
}

func TestDecryptionStateMismatch(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	tl := newTestLedger(t)
	setupClosedBatch(c, tl)

	dc, err := tl.RequestBatchResultDecryption(ctx, ownerAddr, 1)
	c.Assert(err, qt.IsNil)
	cb, err := tl.engine.Resolve(dc.RequestID)
	c.Assert(err, qt.IsNil)

	// Mutate the batch's encrypted state behind the bridge's back.
	p, err := tl.store.Proposal(1, provA)
	c.Assert(err, qt.IsNil)
	p.Funding = handle(0xaa)
	tx := tl.store.WriteTx()
	c.Assert(tl.store.SetProposal(tx, p), qt.IsNil)
	c.Assert(tx.Commit(), qt.IsNil)

	_, err = tl.OnDecryptionResult(dc.RequestID, cb.Cleartexts, cb.Proof)
	c.Assert(err, qt.Equals, ErrStateMismatch)

	// The context survives unprocessed and keeps rejecting the stale result.
	stored, err := tl.DecryptionContext(dc.RequestID)
	c.Assert(err, qt.IsNil)
	c.Assert(stored.Processed, qt.IsFalse)
	_, err = tl.OnDecryptionResult(dc.RequestID, cb.Cleartexts, cb.Proof)
	c.Assert(err, qt.Equals, ErrStateMismatch)

	// A fresh request binds the current state and supersedes the stuck one.
	tl.clock.Advance(types.DefaultDecryptionCooldown)
	dc2, err := tl.RequestBatchResultDecryption(ctx, ownerAddr, 1)
	c.Assert(err, qt.IsNil)
	c.Assert(dc2.RequestID, qt.Not(qt.Equals), dc.RequestID)
	cb2, err := tl.engine.Resolve(dc2.RequestID)
	c.Assert(err, qt.IsNil)
	_, err = tl.OnDecryptionResult(cb2.RequestID, cb2.Cleartexts, cb2.Proof)
	c.Assert(err, qt.IsNil)
}
