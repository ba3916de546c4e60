package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/enclavegrants/grantledger/oracle"
	"github.com/enclavegrants/grantledger/types"
)

// requestDecryption submits a closed batch's aggregate for decryption.
// POST /decryption/requests
func (a *API) requestDecryption(w http.ResponseWriter, r *http.Request) {
	req := &DecryptionRequest{}
	caller, ok := signedBody(w, r, req)
	if !ok {
		return
	}
	dc, err := a.ledger.RequestBatchResultDecryption(r.Context(), caller, types.BatchID(req.BatchID))
	if err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteJSON(w, &DecryptionContextResponse{
		RequestID: dc.RequestID,
		BatchID:   uint64(dc.BatchID),
		StateHash: dc.StateHash,
		Processed: dc.Processed,
	})
}

// decryptionCallback applies a result delivered by the external engine.
// POST /decryption/callback
func (a *API) decryptionCallback(w http.ResponseWriter, r *http.Request) {
	cb := &oracle.Callback{}
	if err := json.NewDecoder(r.Body).Decode(cb); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	result, err := a.ledger.OnDecryptionResult(cb.RequestID, cb.Cleartexts, cb.Proof)
	if err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteJSON(w, &ResultResponse{
		RequestID:     result.RequestID,
		BatchID:       uint64(result.BatchID),
		ApprovedCount: result.ApprovedCount,
		TotalFunding:  result.TotalFunding,
	})
}

// decryptionRequest reads a decryption context back.
// GET /decryption/requests/{requestId}
func (a *API) decryptionRequest(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, RequestURLParam)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		ErrMalformedParam.Withf("invalid request id %q", raw).Write(w)
		return
	}
	dc, err := a.ledger.DecryptionContext(id)
	if err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteJSON(w, &DecryptionContextResponse{
		RequestID: dc.RequestID,
		BatchID:   uint64(dc.BatchID),
		StateHash: dc.StateHash,
		Processed: dc.Processed,
	})
}
