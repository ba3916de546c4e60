package ledger

import (
	"errors"
	"fmt"
)

// Typed failures surfaced by ledger operations. Every error aborts the whole
// enclosing operation; no partial state is ever committed.
var (
	// ErrUnauthorized is returned when the caller lacks the owner or
	// provider role required by the operation.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSystemPaused is returned when a state-mutating operation is
	// attempted while the ledger is paused.
	ErrSystemPaused = errors.New("system paused")
	// ErrSystemNotPaused is returned when unpausing a ledger that is not
	// paused.
	ErrSystemNotPaused = errors.New("system not paused")
	// ErrCooldownActive is returned when a principal retries an operation
	// class before its cooldown has elapsed.
	ErrCooldownActive = errors.New("cooldown active")
	// ErrInvalidBatchState is returned when the batch lifecycle is in the
	// wrong state for the requested operation.
	ErrInvalidBatchState = errors.New("invalid batch state")
	// ErrBatchClosed is returned when a submission targets a batch that is
	// not open. It matches ErrInvalidBatchState under errors.Is.
	ErrBatchClosed = fmt.Errorf("batch closed: %w", ErrInvalidBatchState)
	// ErrProposalNotFound is returned when a vote references a proposal
	// that does not exist in the given batch.
	ErrProposalNotFound = errors.New("proposal not found")
	// ErrVoteNotFound is returned when a vote read accessor misses.
	ErrVoteNotFound = errors.New("vote not found")
	// ErrUnknownRequest is returned by the decryption callback when no
	// context exists for the request id.
	ErrUnknownRequest = errors.New("unknown decryption request")
	// ErrReplayAttempt is returned by the decryption callback when the
	// context has already been processed. The callback is a no-op then.
	ErrReplayAttempt = errors.New("decryption result already processed")
	// ErrStateMismatch is returned when the ciphertext set recomputed at
	// callback time no longer matches the state hash bound at request time.
	ErrStateMismatch = errors.New("ledger state does not match decryption request")
	// ErrInvalidProof is returned when the engine-supplied proof does not
	// validate against the cleartexts and request id.
	ErrInvalidProof = errors.New("invalid decryption proof")
	// ErrInvalidCleartextLength is returned when the callback cleartexts do
	// not decode to the expected fixed-width words.
	ErrInvalidCleartextLength = errors.New("invalid cleartext length")
	// ErrUninitializedHandle is returned when an operation references a
	// ciphertext handle that was never set.
	ErrUninitializedHandle = errors.New("uninitialized ciphertext handle")
)
