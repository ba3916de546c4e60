package storage

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/prefixeddb"

	"github.com/enclavegrants/grantledger/types"
)

// proposalKey builds the storage key for a proposal: batch id (8 bytes,
// big-endian) followed by the provider address. Iterating a batch prefix
// therefore yields proposals ordered by provider address ascending, which is
// the canonical aggregation order.
func proposalKey(batch types.BatchID, provider common.Address) []byte {
	return append(batch.Bytes(), provider.Bytes()...)
}

// Proposal retrieves the proposal submitted by provider in the given batch.
// Returns ErrNotFound if it does not exist.
func (s *Storage) Proposal(batch types.BatchID, provider common.Address) (*types.Proposal, error) {
	p := &types.Proposal{}
	if err := s.getArtifact(proposalPrefix, proposalKey(batch, provider), p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetProposal writes (or overwrites) the proposal inside tx.
func (s *Storage) SetProposal(tx db.WriteTx, p *types.Proposal) error {
	return setArtifact(tx, proposalPrefix, proposalKey(p.BatchID, p.Provider), p)
}

// ListProposals returns all proposals of a batch, ordered by provider
// address ascending.
func (s *Storage) ListProposals(batch types.BatchID) ([]*types.Proposal, error) {
	rd := prefixeddb.NewPrefixedReader(s.db, proposalPrefix)
	var proposals []*types.Proposal
	var decodeErr error
	if err := rd.Iterate(batch.Bytes(), func(_, v []byte) bool {
		p := &types.Proposal{}
		if err := decodeArtifact(v, p); err != nil {
			decodeErr = fmt.Errorf("decode proposal: %w", err)
			return false
		}
		proposals = append(proposals, p)
		return true
	}); err != nil {
		return nil, fmt.Errorf("iterate proposals: %w", err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return proposals, nil
}
