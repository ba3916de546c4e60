package storage

import (
	"github.com/ethereum/go-ethereum/common"
	"go.vocdoni.io/dvote/db"

	"github.com/enclavegrants/grantledger/types"
)

// singletonKey is the key under which singleton artifacts are stored inside
// their prefix.
var singletonKey = []byte("state")

// AccessState retrieves the access-control singleton. Returns ErrNotFound if
// the ledger has never been initialized.
func (s *Storage) AccessState() (*types.AccessState, error) {
	st := &types.AccessState{}
	if err := s.getArtifact(accessPrefix, singletonKey, st); err != nil {
		return nil, err
	}
	return st, nil
}

// SetAccessState writes the access-control singleton inside tx.
func (s *Storage) SetAccessState(tx db.WriteTx, st *types.AccessState) error {
	return setArtifact(tx, accessPrefix, singletonKey, st)
}

// Principal retrieves the record for the given address. Returns ErrNotFound
// if the principal has never been seen.
func (s *Storage) Principal(addr common.Address) (*types.PrincipalRecord, error) {
	rec := &types.PrincipalRecord{}
	if err := s.getArtifact(principalPrefix, addr.Bytes(), rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// SetPrincipal writes the principal record inside tx.
func (s *Storage) SetPrincipal(tx db.WriteTx, rec *types.PrincipalRecord) error {
	return setArtifact(tx, principalPrefix, rec.Address.Bytes(), rec)
}
