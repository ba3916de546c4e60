package types

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// CiphertextHandle is an opaque reference to an encrypted value held by the
// external confidential-computation engine. The ledger never interprets its
// contents; it only stores, orders and digests it.
type CiphertextHandle = HexBytes

// BatchID identifies a submission round. IDs are assigned by the batch
// lifecycle, strictly increasing, starting at 1.
type BatchID uint64

// Bytes returns the big-endian 8-byte encoding of the batch ID, used as a
// storage key prefix.
func (b BatchID) Bytes() []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(b))
	return buf
}

// BatchIDFromBytes decodes a big-endian 8-byte batch ID.
func BatchIDFromBytes(data []byte) BatchID {
	return BatchID(binary.BigEndian.Uint64(data))
}

// AccessState is the access-control singleton: the owner, the pause flag and
// the configured cooldown durations.
type AccessState struct {
	Owner              common.Address `json:"owner"              cbor:"0,keyasint"`
	Paused             bool           `json:"paused"             cbor:"1,keyasint"`
	SubmissionCooldown time.Duration  `json:"submissionCooldown" cbor:"2,keyasint"`
	DecryptionCooldown time.Duration  `json:"decryptionCooldown" cbor:"3,keyasint"`
}

// BatchState is the lifecycle singleton: the current batch ID and whether it
// is open for submissions.
type BatchState struct {
	CurrentID BatchID `json:"currentId" cbor:"0,keyasint"`
	Open      bool    `json:"open"      cbor:"1,keyasint"`
}

// PrincipalRecord holds the per-principal flags and cooldown stamps. Records
// are created implicitly the first time a principal is granted the provider
// role or passes a rate-limit check.
type PrincipalRecord struct {
	Address               common.Address `json:"address"               cbor:"0,keyasint"`
	Provider              bool           `json:"provider"              cbor:"1,keyasint"`
	LastSubmission        time.Time      `json:"lastSubmission"        cbor:"2,keyasint,omitempty"`
	LastDecryptionRequest time.Time      `json:"lastDecryptionRequest" cbor:"3,keyasint,omitempty"`
}

// Proposal is an encrypted funding proposal, keyed by (batch, provider).
// Resubmission within the same batch overwrites in place.
type Proposal struct {
	BatchID     BatchID          `json:"batchId"     cbor:"0,keyasint"`
	Provider    common.Address   `json:"provider"    cbor:"1,keyasint"`
	Funding     CiphertextHandle `json:"funding"     cbor:"2,keyasint"`
	Impact      CiphertextHandle `json:"impact"      cbor:"3,keyasint"`
	Feasibility CiphertextHandle `json:"feasibility" cbor:"4,keyasint"`
	Novelty     CiphertextHandle `json:"novelty"     cbor:"5,keyasint"`
	SubmittedAt time.Time        `json:"submittedAt" cbor:"6,keyasint"`
}

// Handles returns the proposal's ciphertext handles in canonical order.
func (p *Proposal) Handles() []CiphertextHandle {
	return []CiphertextHandle{p.Funding, p.Impact, p.Feasibility, p.Novelty}
}

func (p *Proposal) String() string {
	data, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	return string(data)
}

// Vote is an encrypted approve/reject ballot on a proposal, keyed by
// (batch, proposal provider, voter). One vote per voter per proposal per
// batch, last write wins.
type Vote struct {
	BatchID     BatchID          `json:"batchId"     cbor:"0,keyasint"`
	Provider    common.Address   `json:"provider"    cbor:"1,keyasint"`
	Voter       common.Address   `json:"voter"       cbor:"2,keyasint"`
	Choice      CiphertextHandle `json:"choice"      cbor:"3,keyasint"`
	SubmittedAt time.Time        `json:"submittedAt" cbor:"4,keyasint"`
}

// DecryptionContext correlates an outstanding oracle request with the exact
// ciphertext set it was issued for. Processed is one-way: once true the
// context is terminal and immutable.
type DecryptionContext struct {
	RequestID   uint64    `json:"requestId"   cbor:"0,keyasint"`
	BatchID     BatchID   `json:"batchId"     cbor:"1,keyasint"`
	StateHash   HexBytes  `json:"stateHash"   cbor:"2,keyasint"`
	Processed   bool      `json:"processed"   cbor:"3,keyasint"`
	RequestedAt time.Time `json:"requestedAt" cbor:"4,keyasint"`
}

// BatchResult is the decoded outcome of a completed decryption: the two
// plaintext totals the engine folded the batch's ciphertexts into.
type BatchResult struct {
	RequestID     uint64  `json:"requestId"     cbor:"0,keyasint"`
	BatchID       BatchID `json:"batchId"       cbor:"1,keyasint"`
	ApprovedCount *BigInt `json:"approvedCount" cbor:"2,keyasint"`
	TotalFunding  *BigInt `json:"totalFunding"  cbor:"3,keyasint"`
}
