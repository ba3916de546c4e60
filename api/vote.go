package api

import (
	"net/http"

	"github.com/enclavegrants/grantledger/oracle"
	"github.com/enclavegrants/grantledger/types"
)

// submitVote records an encrypted vote on a proposal in the open batch.
// POST /votes
func (a *API) submitVote(w http.ResponseWriter, r *http.Request) {
	req := &VoteRequest{}
	caller, ok := signedBody(w, r, req)
	if !ok {
		return
	}
	v, err := a.ledger.SubmitVote(caller, types.BatchID(req.BatchID), req.Provider, req.Choice)
	if err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteJSON(w, &SubmissionResponse{
		BatchID:       uint64(v.BatchID),
		Provider:      v.Provider,
		Voter:         &v.Voter,
		HandleDigests: []types.HexBytes{oracle.HandleDigest(v.Choice)},
	})
}

// vote reads a vote back.
// GET /votes/{batchId}/{provider}/{voter}
func (a *API) vote(w http.ResponseWriter, r *http.Request) {
	batch, ok := urlParamBatch(w, r)
	if !ok {
		return
	}
	provider, ok := urlParamAddress(w, r, ProviderURLParam)
	if !ok {
		return
	}
	voter, ok := urlParamAddress(w, r, VoterURLParam)
	if !ok {
		return
	}
	v, err := a.ledger.Vote(batch, provider, voter)
	if err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteJSON(w, v)
}
