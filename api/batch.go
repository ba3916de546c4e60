package api

import (
	"net/http"
)

// openBatch opens a new submission round.
// POST /batches/open
func (a *API) openBatch(w http.ResponseWriter, r *http.Request) {
	caller, ok := signedBody(w, r, nil)
	if !ok {
		return
	}
	id, err := a.ledger.OpenBatch(caller)
	if err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteJSON(w, &BatchResponse{BatchID: uint64(id), Open: true})
}

// closeBatch closes the current submission round.
// POST /batches/close
func (a *API) closeBatch(w http.ResponseWriter, r *http.Request) {
	caller, ok := signedBody(w, r, nil)
	if !ok {
		return
	}
	if err := a.ledger.CloseBatch(caller); err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// currentBatch returns the batch lifecycle state.
// GET /batches/current
func (a *API) currentBatch(w http.ResponseWriter, r *http.Request) {
	bs, err := a.ledger.CurrentBatch()
	if err != nil {
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, &BatchResponse{BatchID: uint64(bs.CurrentID), Open: bs.Open})
}
