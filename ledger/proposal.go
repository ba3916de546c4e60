package ledger

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/enclavegrants/grantledger/log"
	"github.com/enclavegrants/grantledger/oracle"
	"github.com/enclavegrants/grantledger/storage"
	"github.com/enclavegrants/grantledger/types"
)

// SubmitProposal records an encrypted funding proposal from caller in the
// currently open batch. Requires the provider role, an unpaused ledger, an
// elapsed submission cooldown and an open batch. Resubmission within the
// same batch overwrites in place.
func (l *Ledger) SubmitProposal(caller common.Address, funding, impact, feasibility, novelty types.CiphertextHandle) (*types.Proposal, error) {
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
	for _, h := range []types.CiphertextHandle{funding, impact, feasibility, novelty} {
		if len(h) == 0 {
			return nil, ErrUninitializedHandle
		}
	}
	now := l.now()
	if err := checkAndStamp(rec, submissionClock, now, st.SubmissionCooldown); err != nil {
		return nil, err
	}
	bs, err := l.store.BatchState()
	if err != nil {
		return nil, err
	}
	if !bs.Open {
		return nil, ErrBatchClosed
	}

	p := &types.Proposal{
		BatchID:     bs.CurrentID,
		Provider:    caller,
		Funding:     funding,
		Impact:      impact,
		Feasibility: feasibility,
		Novelty:     novelty,
		SubmittedAt: now,
	}
	digests := make([]types.HexBytes, 0, types.HandlesPerProposal)
	for _, h := range p.Handles() {
		digests = append(digests, oracle.HandleDigest(h))
	}

	tx := l.store.WriteTx()
	defer tx.Discard()
	if err := l.store.SetProposal(tx, p); err != nil {
		return nil, err
	}
	if err := l.store.SetPrincipal(tx, rec); err != nil {
		return nil, err
	}
	if err := l.audit(tx, &types.AuditRecord{
		Type:          types.AuditProposalSubmitted,
		Principal:     caller,
		BatchID:       p.BatchID,
		HandleDigests: digests,
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	log.Infow("proposal submitted",
		"batch", uint64(p.BatchID),
		"provider", caller.Hex(),
		"funding", digests[0].String(),
	)
	return p, nil
}

// Proposal returns the proposal submitted by provider in batch, or
// ErrProposalNotFound.
func (l *Ledger) Proposal(batch types.BatchID, provider common.Address) (*types.Proposal, error) {
	p, err := l.store.Proposal(batch, provider)
	if err == storage.ErrNotFound {
		return nil, ErrProposalNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Proposals returns all proposals of a batch in canonical order.
func (l *Ledger) Proposals(batch types.BatchID) ([]*types.Proposal, error) {
	return l.store.ListProposals(batch)
}
