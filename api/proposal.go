package api

import (
	"net/http"

	"github.com/enclavegrants/grantledger/oracle"
	"github.com/enclavegrants/grantledger/types"
)

// submitProposal records an encrypted proposal in the open batch.
// POST /proposals
func (a *API) submitProposal(w http.ResponseWriter, r *http.Request) {
	req := &ProposalRequest{}
	caller, ok := signedBody(w, r, req)
	if !ok {
		return
	}
	p, err := a.ledger.SubmitProposal(caller, req.Funding, req.Impact, req.Feasibility, req.Novelty)
	if err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	digests := make([]types.HexBytes, 0, types.HandlesPerProposal)
	for _, h := range p.Handles() {
		digests = append(digests, oracle.HandleDigest(h))
	}
	httpWriteJSON(w, &SubmissionResponse{
		BatchID:       uint64(p.BatchID),
		Provider:      p.Provider,
		HandleDigests: digests,
	})
}

// proposal reads a proposal back.
// GET /proposals/{batchId}/{provider}
func (a *API) proposal(w http.ResponseWriter, r *http.Request) {
	batch, ok := urlParamBatch(w, r)
	if !ok {
		return
	}
	provider, ok := urlParamAddress(w, r, ProviderURLParam)
	if !ok {
		return
	}
	p, err := a.ledger.Proposal(batch, provider)
	if err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteJSON(w, p)
}
