package storage

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/prefixeddb"

	"github.com/enclavegrants/grantledger/types"
)

// voteKey builds the storage key for a vote: batch id, proposal provider,
// voter. Iteration order within a batch is (provider, voter) ascending.
func voteKey(batch types.BatchID, provider, voter common.Address) []byte {
	key := append(batch.Bytes(), provider.Bytes()...)
	return append(key, voter.Bytes()...)
}

// Vote retrieves the vote cast by voter on provider's proposal in the given
// batch. Returns ErrNotFound if it does not exist.
func (s *Storage) Vote(batch types.BatchID, provider, voter common.Address) (*types.Vote, error) {
	v := &types.Vote{}
	if err := s.getArtifact(votePrefix, voteKey(batch, provider, voter), v); err != nil {
		return nil, err
	}
	return v, nil
}

// SetVote writes (or overwrites) the vote inside tx.
func (s *Storage) SetVote(tx db.WriteTx, v *types.Vote) error {
	return setArtifact(tx, votePrefix, voteKey(v.BatchID, v.Provider, v.Voter), v)
}

// ListVotes returns all votes of a batch, ordered by (proposal provider,
// voter) ascending.
func (s *Storage) ListVotes(batch types.BatchID) ([]*types.Vote, error) {
	rd := prefixeddb.NewPrefixedReader(s.db, votePrefix)
	var votes []*types.Vote
	var decodeErr error
	if err := rd.Iterate(batch.Bytes(), func(_, v []byte) bool {
		vote := &types.Vote{}
		if err := decodeArtifact(v, vote); err != nil {
			decodeErr = fmt.Errorf("decode vote: %w", err)
			return false
		}
		votes = append(votes, vote)
		return true
	}); err != nil {
		return nil, fmt.Errorf("iterate votes: %w", err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return votes, nil
}
