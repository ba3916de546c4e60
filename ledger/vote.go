package ledger

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/enclavegrants/grantledger/log"
	"github.com/enclavegrants/grantledger/oracle"
	"github.com/enclavegrants/grantledger/storage"
	"github.com/enclavegrants/grantledger/types"
)

// SubmitVote records an encrypted approve/reject vote from caller on the
// proposal submitted by provider in batch. Requires the provider role, an
// unpaused ledger, an elapsed submission cooldown (shared with proposal
// submission), the batch to be the currently open one, and the referenced
// proposal to exist. One vote per voter per proposal per batch; a second
// vote overwrites the first.
func (l *Ledger) SubmitVote(caller common.Address, batch types.BatchID, provider common.Address, choice types.CiphertextHandle) (*types.Vote, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	st, err := l.access()
	if err != nil {
		return nil, err
	}
	rec, err := l.assertProvider(caller)
	if err != nil {
		return nil, err
	}
	if err := assertNotPaused(st); err != nil {
		return nil, err
	}
	if len(choice) == 0 {
		return nil, ErrUninitializedHandle
	}
	now := l.now()
	if err := checkAndStamp(rec, submissionClock, now, st.SubmissionCooldown); err != nil {
		return nil, err
	}
	bs, err := l.store.BatchState()
	if err != nil {
		return nil, err
	}
	if !bs.Open || bs.CurrentID != batch {
		return nil, ErrBatchClosed
	}
	if _, err := l.store.Proposal(batch, provider); err == storage.ErrNotFound {
		return nil, ErrProposalNotFound
	} else if err != nil {
		return nil, err
	}

	v := &types.Vote{
		BatchID:     batch,
		Provider:    provider,
		Voter:       caller,
		Choice:      choice,
		SubmittedAt: now,
	}
	digest := oracle.HandleDigest(choice)

	tx := l.store.WriteTx()
	defer tx.Discard()
	if err := l.store.SetVote(tx, v); err != nil {
		return nil, err
	}
	if err := l.store.SetPrincipal(tx, rec); err != nil {
		return nil, err
	}
	if err := l.audit(tx, &types.AuditRecord{
		Type:          types.AuditVoteSubmitted,
		Principal:     caller,
		Subject:       provider,
		BatchID:       batch,
		HandleDigests: []types.HexBytes{digest},
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	log.Infow("vote submitted",
		"batch", uint64(batch),
		"proposal", provider.Hex(),
		"voter", caller.Hex(),
		"choice", digest.String(),
	)
	return v, nil
}

// Vote returns the vote cast by voter on provider's proposal in batch, or
// ErrVoteNotFound.
func (l *Ledger) Vote(batch types.BatchID, provider, voter common.Address) (*types.Vote, error) {
	v, err := l.store.Vote(batch, provider, voter)
	if err == storage.ErrNotFound {
		return nil, ErrVoteNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Votes returns all votes of a batch in canonical order.
func (l *Ledger) Votes(batch types.BatchID) ([]*types.Vote, error) {
	return l.store.ListVotes(batch)
}
