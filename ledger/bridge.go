package ledger

import (
	"bytes"
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/enclavegrants/grantledger/log"
	"github.com/enclavegrants/grantledger/oracle"
	"github.com/enclavegrants/grantledger/storage"
	"github.com/enclavegrants/grantledger/types"
)

// batchHandles collects the exact ordered ciphertext set that represents a
// batch's aggregate: every proposal's funding handle (providers ascending)
// followed by every vote handle ((provider, voter) ascending). Request and
// callback both derive the state hash from this list, so the ordering rule
// is part of the protocol.
func (l *Ledger) batchHandles(batch types.BatchID) ([]types.CiphertextHandle, error) {
	proposals, err := l.store.ListProposals(batch)
	if err != nil {
		return nil, err
	}
	votes, err := l.store.ListVotes(batch)
	if err != nil {
		return nil, err
	}
	handles := make([]types.CiphertextHandle, 0, len(proposals)+len(votes))
	for _, p := range proposals {
		handles = append(handles, p.Funding)
	}
	for _, v := range votes {
		handles = append(handles, v.Choice)
	}
	return handles, nil
}

// RequestBatchResultDecryption submits the aggregate ciphertext set of a
// closed batch to the external engine for decryption. Owner only, unpaused,
// rate limited on the decryption clock. The target batch must exist and
// must not be the currently open one. The returned context is pending until
// the engine delivers a matching callback; this call never blocks on the
// result.
func (l *Ledger) RequestBatchResultDecryption(ctx context.Context, caller common.Address, batch types.BatchID) (*types.DecryptionContext, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	st, err := l.access()
	if err != nil {
		return nil, err
	}
	if err := assertOwner(st, caller); err != nil {
		return nil, err
	}
	if err := assertNotPaused(st); err != nil {
		return nil, err
	}
	rec, err := l.principal(caller)
	if err != nil {
		return nil, err
	}
	now := l.now()
	if err := checkAndStamp(rec, decryptionClock, now, st.DecryptionCooldown); err != nil {
		return nil, err
	}
	bs, err := l.store.BatchState()
	if err != nil {
		return nil, err
	}
	if batch == 0 || batch > bs.CurrentID {
		return nil, ErrInvalidBatchState
	}
	if bs.Open && bs.CurrentID == batch {
		return nil, ErrInvalidBatchState
	}
	handles, err := l.batchHandles(batch)
	if err != nil {
		return nil, err
	}
	if len(handles) == 0 {
		return nil, ErrUninitializedHandle
	}
	stateHash := oracle.StateHash(handles, l.identity)

	requestID, err := l.engine.SubmitDecryption(ctx, handles)
	if err != nil {
		return nil, err
	}
	dc := &types.DecryptionContext{
		RequestID:   requestID,
		BatchID:     batch,
		StateHash:   stateHash,
		RequestedAt: now,
	}

	tx := l.store.WriteTx()
	defer tx.Discard()
	if err := l.store.SetDecryptionContext(tx, dc); err != nil {
		return nil, err
	}
	if err := l.store.SetPrincipal(tx, rec); err != nil {
		return nil, err
	}
	if err := l.audit(tx, &types.AuditRecord{
		Type:          types.AuditDecryptionRequested,
		Principal:     caller,
		BatchID:       batch,
		RequestID:     requestID,
		HandleDigests: []types.HexBytes{stateHash},
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	log.Infow("decryption requested",
		"batch", uint64(batch),
		"requestId", requestID,
		"handles", len(handles),
		"stateHash", stateHash.String(),
	)
	return dc, nil
}

// OnDecryptionResult applies a decryption callback delivered by the external
// engine. The context is looked up by request id; replayed deliveries fail
// with ErrReplayAttempt without touching state, a ciphertext set that
// drifted since the request fails with ErrStateMismatch and leaves the
// context pending, a bad proof fails with ErrInvalidProof, and malformed
// cleartexts fail with ErrInvalidCleartextLength. On success the context
// becomes processed (terminal) and the decoded totals are returned; no
// other ledger state changes.
func (l *Ledger) OnDecryptionResult(requestID uint64, cleartexts, proof []byte) (*types.BatchResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	dc, err := l.store.DecryptionContext(requestID)
	if err == storage.ErrNotFound {
		return nil, ErrUnknownRequest
	}
	if err != nil {
		return nil, err
	}
	if dc.Processed {
		return nil, ErrReplayAttempt
	}
	handles, err := l.batchHandles(dc.BatchID)
	if err != nil {
		return nil, err
	}
	current := oracle.StateHash(handles, l.identity)
	if !bytes.Equal(current, dc.StateHash) {
		return nil, ErrStateMismatch
	}
	if !l.engine.VerifyDecryptionProof(requestID, cleartexts, proof) {
		return nil, ErrInvalidProof
	}
	if len(cleartexts) != types.ResultWords*types.ResultWordSize {
		return nil, ErrInvalidCleartextLength
	}
	approved := new(types.BigInt).SetBytes(cleartexts[:types.ResultWordSize])
	funding := new(types.BigInt).SetBytes(cleartexts[types.ResultWordSize:])

	dc.Processed = true
	result := &types.BatchResult{
		RequestID:     requestID,
		BatchID:       dc.BatchID,
		ApprovedCount: approved,
		TotalFunding:  funding,
	}

	tx := l.store.WriteTx()
	defer tx.Discard()
	if err := l.store.SetDecryptionContext(tx, dc); err != nil {
		return nil, err
	}
	if err := l.audit(tx, &types.AuditRecord{
		Type:      types.AuditDecryptionCompleted,
		BatchID:   dc.BatchID,
		RequestID: requestID,
		Values:    []*types.BigInt{approved, funding},
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	log.Infow("decryption completed",
		"batch", uint64(dc.BatchID),
		"requestId", requestID,
		"approvedCount", approved.String(),
		"totalFunding", funding.String(),
	)
	return result, nil
}

// DecryptionContext returns the stored context for a request id, or
// ErrUnknownRequest.
func (l *Ledger) DecryptionContext(requestID uint64) (*types.DecryptionContext, error) {
	dc, err := l.store.DecryptionContext(requestID)
	if err == storage.ErrNotFound {
		return nil, ErrUnknownRequest
	}
	if err != nil {
		return nil, err
	}
	return dc, nil
}
