package api

import (
	"net/http"
	"time"
)

// addProvider grants the provider role.
// POST /admin/providers
func (a *API) addProvider(w http.ResponseWriter, r *http.Request) {
	req := &ProviderRequest{}
	caller, ok := signedBody(w, r, req)
	if !ok {
		return
	}
	if err := a.ledger.AddProvider(caller, req.Provider); err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// removeProvider revokes the provider role.
// DELETE /admin/providers
func (a *API) removeProvider(w http.ResponseWriter, r *http.Request) {
	req := &ProviderRequest{}
	caller, ok := signedBody(w, r, req)
	if !ok {
		return
	}
	if err := a.ledger.RemoveProvider(caller, req.Provider); err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// transferOwnership hands the owner role to another address.
// POST /admin/ownership
func (a *API) transferOwnership(w http.ResponseWriter, r *http.Request) {
	req := &OwnershipRequest{}
	caller, ok := signedBody(w, r, req)
	if !ok {
		return
	}
	if err := a.ledger.TransferOwnership(caller, req.NewOwner); err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// pause stops provider-facing operations.
// POST /admin/pause
func (a *API) pause(w http.ResponseWriter, r *http.Request) {
	caller, ok := signedBody(w, r, nil)
	if !ok {
		return
	}
	if err := a.ledger.Pause(caller); err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// unpause resumes provider-facing operations.
// POST /admin/unpause
func (a *API) unpause(w http.ResponseWriter, r *http.Request) {
	caller, ok := signedBody(w, r, nil)
	if !ok {
		return
	}
	if err := a.ledger.Unpause(caller); err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// setCooldowns updates the cooldown durations.
// POST /admin/cooldown
func (a *API) setCooldowns(w http.ResponseWriter, r *http.Request) {
	req := &CooldownRequest{}
	caller, ok := signedBody(w, r, req)
	if !ok {
		return
	}
	err := a.ledger.SetCooldowns(caller,
		time.Duration(req.SubmissionSeconds)*time.Second,
		time.Duration(req.DecryptionSeconds)*time.Second,
	)
	if err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}
