package types

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// AuditType identifies the state transition an audit record describes.
type AuditType string

const (
	AuditOwnershipTransferred AuditType = "ownership-transferred"
	AuditProviderAdded        AuditType = "provider-added"
	AuditProviderRemoved      AuditType = "provider-removed"
	AuditPaused               AuditType = "paused"
	AuditUnpaused             AuditType = "unpaused"
	AuditCooldownChanged      AuditType = "cooldown-changed"
	AuditBatchOpened          AuditType = "batch-opened"
	AuditBatchClosed          AuditType = "batch-closed"
	AuditProposalSubmitted    AuditType = "proposal-submitted"
	AuditVoteSubmitted        AuditType = "vote-submitted"
	AuditDecryptionRequested  AuditType = "decryption-requested"
	AuditDecryptionCompleted  AuditType = "decryption-completed"
)

// AuditRecord is an immutable, append-only record of a ledger state
// transition. HandleDigests carries keccak digests of any ciphertext handles
// involved, never the handles themselves and never plaintext.
type AuditRecord struct {
	Sequence      uint64         `json:"sequence"                cbor:"0,keyasint"`
	Type          AuditType      `json:"type"                    cbor:"1,keyasint"`
	Timestamp     time.Time      `json:"timestamp"               cbor:"2,keyasint"`
	Principal     common.Address `json:"principal"               cbor:"3,keyasint"`
	Subject       common.Address `json:"subject,omitempty"       cbor:"4,keyasint,omitempty"`
	BatchID       BatchID        `json:"batchId,omitempty"       cbor:"5,keyasint,omitempty"`
	RequestID     uint64         `json:"requestId,omitempty"     cbor:"6,keyasint,omitempty"`
	HandleDigests []HexBytes     `json:"handleDigests,omitempty" cbor:"7,keyasint,omitempty"`
	Values        []*BigInt      `json:"values,omitempty"        cbor:"8,keyasint,omitempty"`
}
