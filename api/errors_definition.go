//nolint:lll
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/enclavegrants/grantledger/ledger"
)

// Error codes in the 40001-49999 range are the caller's fault and return
// HTTP Status 400/403/404/409, whatever is most appropriate. Error codes
// 50001-59999 are the server's fault and return 500 or 503.
//
// NEVER change any of the current error codes, only append new errors after
// the current last 4XXX or 5XXX. If you notice a gap, DON'T fill it in;
// that code was used in the past and shouldn't be reused.
var (
	ErrResourceNotFound = Error{Code: 40001, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("resource not found")}
	ErrMalformedBody    = Error{Code: 40004, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed JSON body")}
	ErrInvalidSignature = Error{Code: 40005, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid signature")}
	ErrMalformedParam   = Error{Code: 40006, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed URL parameter")}

	ErrUnauthorized           = Error{Code: 40010, HTTPstatus: http.StatusForbidden, Err: fmt.Errorf("unauthorized")}
	ErrSystemPaused           = Error{Code: 40011, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("system paused")}
	ErrSystemNotPaused        = Error{Code: 40012, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("system not paused")}
	ErrCooldownActive         = Error{Code: 40013, HTTPstatus: http.StatusTooManyRequests, Err: fmt.Errorf("cooldown active")}
	ErrInvalidBatchState      = Error{Code: 40014, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("invalid batch state")}
	ErrBatchClosed            = Error{Code: 40015, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("batch closed")}
	ErrProposalNotFound       = Error{Code: 40016, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("proposal not found")}
	ErrVoteNotFound           = Error{Code: 40017, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("vote not found")}
	ErrUnknownRequest         = Error{Code: 40018, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("unknown decryption request")}
	ErrReplayAttempt          = Error{Code: 40019, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("decryption result already processed")}
	ErrStateMismatch          = Error{Code: 40020, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("ledger state does not match decryption request")}
	ErrInvalidProof           = Error{Code: 40021, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid decryption proof")}
	ErrInvalidCleartextLength = Error{Code: 40022, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid cleartext length")}
	ErrUninitializedHandle    = Error{Code: 40023, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("uninitialized ciphertext handle")}

	ErrMarshalingServerJSONFailed = Error{Code: 50001, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("marshaling (server-side) JSON failed")}
	ErrGenericInternalServerError = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("internal server error")}
)

// fromLedgerError maps a typed ledger failure to its API error. Unknown
// errors become ErrGenericInternalServerError.
func fromLedgerError(err error) Error {
	switch {
	case errors.Is(err, ledger.ErrUnauthorized):
		return ErrUnauthorized
	case errors.Is(err, ledger.ErrSystemPaused):
		return ErrSystemPaused
	case errors.Is(err, ledger.ErrSystemNotPaused):
		return ErrSystemNotPaused
	case errors.Is(err, ledger.ErrCooldownActive):
		return ErrCooldownActive
	case errors.Is(err, ledger.ErrBatchClosed):
		return ErrBatchClosed
	case errors.Is(err, ledger.ErrInvalidBatchState):
		return ErrInvalidBatchState
	case errors.Is(err, ledger.ErrProposalNotFound):
		return ErrProposalNotFound
	case errors.Is(err, ledger.ErrVoteNotFound):
		return ErrVoteNotFound
	case errors.Is(err, ledger.ErrUnknownRequest):
		return ErrUnknownRequest
	case errors.Is(err, ledger.ErrReplayAttempt):
		return ErrReplayAttempt
	case errors.Is(err, ledger.ErrStateMismatch):
		return ErrStateMismatch
	case errors.Is(err, ledger.ErrInvalidProof):
		return ErrInvalidProof
	case errors.Is(err, ledger.ErrInvalidCleartextLength):
		return ErrInvalidCleartextLength
	case errors.Is(err, ledger.ErrUninitializedHandle):
		return ErrUninitializedHandle
	default:
		return ErrGenericInternalServerError.WithErr(err)
	}
}
