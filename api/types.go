package api

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"

	"github.com/enclavegrants/grantledger/types"
)

// SignedRequest wraps an operation payload with the caller's signature over
// the raw payload bytes. The caller's address is recovered from the
// signature, never taken from the payload.
type SignedRequest struct {
	Payload   json.RawMessage `json:"payload"`
	Signature types.HexBytes  `json:"signature"`
}

// ProviderRequest is the payload for provider allow-list changes.
type ProviderRequest struct {
	Provider common.Address `json:"provider"`
}

// OwnershipRequest is the payload for ownership transfer.
type OwnershipRequest struct {
	NewOwner common.Address `json:"newOwner"`
}

// CooldownRequest is the payload for cooldown changes, in seconds. A zero
// value keeps the current setting.
type CooldownRequest struct {
	SubmissionSeconds uint64 `json:"submissionSeconds"`
	DecryptionSeconds uint64 `json:"decryptionSeconds"`
}

// ProposalRequest is the payload for proposal submission: the four
// ciphertext handles, opaque to this service.
type ProposalRequest struct {
	Funding     types.CiphertextHandle `json:"funding"`
	Impact      types.CiphertextHandle `json:"impact"`
	Feasibility types.CiphertextHandle `json:"feasibility"`
	Novelty     types.CiphertextHandle `json:"novelty"`
}

// VoteRequest is the payload for vote submission.
type VoteRequest struct {
	BatchID  uint64                 `json:"batchId"`
	Provider common.Address         `json:"provider"`
	Choice   types.CiphertextHandle `json:"choice"`
}

// DecryptionRequest is the payload for requesting batch result decryption.
type DecryptionRequest struct {
	BatchID uint64 `json:"batchId"`
}

// SubmissionResponse acknowledges a stored proposal or vote with the handle
// digests recorded for audit.
type SubmissionResponse struct {
	BatchID       uint64           `json:"batchId"`
	Provider      common.Address   `json:"provider"`
	Voter         *common.Address  `json:"voter,omitempty"`
	HandleDigests []types.HexBytes `json:"handleDigests"`
}

// BatchResponse mirrors the batch lifecycle state.
type BatchResponse struct {
	BatchID uint64 `json:"batchId"`
	Open    bool   `json:"open"`
}

// DecryptionContextResponse mirrors a stored decryption context.
type DecryptionContextResponse struct {
	RequestID uint64         `json:"requestId"`
	BatchID   uint64         `json:"batchId"`
	StateHash types.HexBytes `json:"stateHash"`
	Processed bool           `json:"processed"`
}

// ResultResponse carries the decoded totals of a completed decryption.
type ResultResponse struct {
	RequestID     uint64        `json:"requestId"`
	BatchID       uint64        `json:"batchId"`
	ApprovedCount *types.BigInt `json:"approvedCount"`
	TotalFunding  *types.BigInt `json:"totalFunding"`
}

// AuditResponse is a page of audit records.
type AuditResponse struct {
	Records []*types.AuditRecord `json:"records"`
}
