package storage

import (
	"encoding/binary"

	"go.vocdoni.io/dvote/db"

	"github.com/enclavegrants/grantledger/types"
)

func requestKey(requestID uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, requestID)
	return key
}

// DecryptionContext retrieves the context stored for an oracle request id.
// Returns ErrNotFound if no request with that id was ever issued.
func (s *Storage) DecryptionContext(requestID uint64) (*types.DecryptionContext, error) {
	dc := &types.DecryptionContext{}
	if err := s.getArtifact(contextPrefix, requestKey(requestID), dc); err != nil {
		return nil, err
	}
	return dc, nil
}

// SetDecryptionContext writes the context inside tx. The oracle bridge is
// the only caller; nothing else may flip Processed.
func (s *Storage) SetDecryptionContext(tx db.WriteTx, dc *types.DecryptionContext) error {
	return setArtifact(tx, contextPrefix, requestKey(dc.RequestID), dc)
}
