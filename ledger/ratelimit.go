package ledger

import (
	"time"

	"github.com/enclavegrants/grantledger/types"
)

// Two independent cooldown clocks exist per principal: one shared by
// proposal and vote submissions, one for decryption requests.
type cooldownClock int

const (
	submissionClock cooldownClock = iota
	decryptionClock
)

// checkAndStamp verifies the principal's cooldown for the given clock and,
// if it has elapsed, stamps the current time on the record. The stamp only
// takes effect when the enclosing operation commits the record in its own
// transaction, so a failed operation never advances the clock.
func checkAndStamp(rec *types.PrincipalRecord, clock cooldownClock, now time.Time, cooldown time.Duration) error {
	var last time.Time
	switch clock {
	case submissionClock:
		last = rec.LastSubmission
	case decryptionClock:
		last = rec.LastDecryptionRequest
	}
	if !last.IsZero() && now.Before(last.Add(cooldown)) {
		return ErrCooldownActive
	}
	switch clock {
	case submissionClock:
		rec.LastSubmission = now
	case decryptionClock:
		rec.LastDecryptionRequest = now
	}
	return nil
}
