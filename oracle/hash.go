package oracle

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"

	"github.com/enclavegrants/grantledger/crypto/ethereum"
	"github.com/enclavegrants/grantledger/types"
)

// StateHash computes the binding digest over an ordered ciphertext set and
// the ledger identity: keccak256 of each handle, length-prefixed to keep the
// encoding injective, followed by the identity bytes. The bridge computes it
// at request time and recomputes it with the identical rule at callback
// time; any divergence means the underlying encrypted state changed in
// between.
func StateHash(handles []types.CiphertextHandle, identity common.Address) types.HexBytes {
	var buf []byte
	lenPrefix := make([]byte, 4)
	for _, h := range handles {
		binary.BigEndian.PutUint32(lenPrefix, uint32(len(h)))
		buf = append(buf, lenPrefix...)
		buf = append(buf, h...)
	}
	buf = append(buf, identity.Bytes()...)
	return ethereum.HashRaw(buf)
}

// HandleDigest returns the keccak digest of a single ciphertext handle, the
// only form in which handles appear in audit records and logs.
func HandleDigest(h types.CiphertextHandle) types.HexBytes {
	return ethereum.HashRaw(h)
}
