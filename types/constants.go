package types

import "time"

const (
	// HandlesPerProposal is the number of ciphertext handles carried by a
	// proposal: funding amount, impact score, feasibility score and novelty
	// score, in that order.
	HandlesPerProposal = 4
	// ResultWords is the number of plaintext words a decryption callback must
	// decode to: total approved count and total funding.
	ResultWords = 2
	// ResultWordSize is the size in bytes of each decoded plaintext word.
	ResultWordSize = 32
	// DefaultSubmissionCooldown is the minimum time between two submissions
	// (proposal or vote) from the same principal.
	DefaultSubmissionCooldown = time.Minute
	// DefaultDecryptionCooldown is the minimum time between two decryption
	// requests from the same principal.
	DefaultDecryptionCooldown = 5 * time.Minute
)
