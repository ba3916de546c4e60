package storage

import (
	"go.vocdoni.io/dvote/db"

	"github.com/enclavegrants/grantledger/types"
)

// BatchState retrieves the batch lifecycle singleton. Before the first batch
// is ever opened it returns a zero state (id 0, closed) rather than
// ErrNotFound, since "no batch yet" is a valid lifecycle position.
func (s *Storage) BatchState() (*types.BatchState, error) {
	st := &types.BatchState{}
	err := s.getArtifact(batchPrefix, singletonKey, st)
	if err == ErrNotFound {
		return &types.BatchState{}, nil
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// SetBatchState writes the batch lifecycle singleton inside tx.
func (s *Storage) SetBatchState(tx db.WriteTx, st *types.BatchState) error {
	return setArtifact(tx, batchPrefix, singletonKey, st)
}
