// Package oracle defines the boundary with the external confidential
// computation engine: the interface the ledger bridge calls to submit
// ciphertext sets for decryption, the state-hash binding rule, and a mock
// engine for tests and development.
package oracle

import (
	"context"

	"github.com/enclavegrants/grantledger/types"
)

// Engine is the external decryption oracle. SubmitDecryption hands over an
// ordered ciphertext set and returns a fresh request id; the result arrives
// later through an out-of-band callback correlated solely by that id.
// VerifyDecryptionProof is the engine's synchronous signature-check
// primitive, invoked during callback handling.
type Engine interface {
	SubmitDecryption(ctx context.Context, handles []types.CiphertextHandle) (uint64, error)
	VerifyDecryptionProof(requestID uint64, cleartexts, proof []byte) bool
}

// Callback is a decryption result as delivered by the engine.
type Callback struct {
	RequestID  uint64         `json:"requestId"`
	Cleartexts types.HexBytes `json:"cleartexts"`
	Proof      types.HexBytes `json:"proof"`
}
