package ledger

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/enclavegrants/grantledger/log"
	"github.com/enclavegrants/grantledger/types"
)

// TransferOwnership hands the owner role to newOwner. Only the current owner
// may call it.
func (l *Ledger) TransferOwnership(caller, newOwner common.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	st, err := l.access()
	if err != nil {
		return err
	}
	if err := assertOwner(st, caller); err != nil {
		return err
	}
	st.Owner = newOwner

	tx := l.store.WriteTx()
	defer tx.Discard()
	if err := l.store.SetAccessState(tx, st); err != nil {
		return err
	}
	if err := l.audit(tx, &types.AuditRecord{
		Type:      types.AuditOwnershipTransferred,
		Principal: caller,
		Subject:   newOwner,
	}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Infow("ownership transferred", "from", caller.Hex(), "to", newOwner.Hex())
	return nil
}

// AddProvider grants the provider role to p. Idempotent: adding an existing
// provider is a no-op and emits no event.
func (l *Ledger) AddProvider(caller, p common.Address) error {
	return l.setProvider(caller, p, true, types.AuditProviderAdded)
}

// RemoveProvider revokes the provider role from p. Idempotent like
// AddProvider.
func (l *Ledger) RemoveProvider(caller, p common.Address) error {
	return l.setProvider(caller, p, false, types.AuditProviderRemoved)
}

func (l *Ledger) setProvider(caller, p common.Address, provider bool, at types.AuditType) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	st, err := l.access()
	if err != nil {
		return err
	}
	if err := assertOwner(st, caller); err != nil {
		return err
	}
	rec, err := l.principal(p)
	if err != nil {
		return err
	}
	if rec.Provider == provider {
		return nil // already in the desired state
	}
	rec.Provider = provider

	tx := l.store.WriteTx()
	defer tx.Discard()
	if err := l.store.SetPrincipal(tx, rec); err != nil {
		return err
	}
	if err := l.audit(tx, &types.AuditRecord{
		Type:      at,
		Principal: caller,
		Subject:   p,
	}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Infow("provider set", "provider", p.Hex(), "enabled", provider)
	return nil
}

// Pause stops all provider-facing operations. Pausing twice fails with
// ErrSystemPaused.
func (l *Ledger) Pause(caller common.Address) error {
	return l.setPaused(caller, true)
}

// Unpause resumes provider-facing operations. Fails if not paused.
func (l *Ledger) Unpause(caller common.Address) error {
	return l.setPaused(caller, false)
}

func (l *Ledger) setPaused(caller common.Address, paused bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	st, err := l.access()
	if err != nil {
		return err
	}
	if err := assertOwner(st, caller); err != nil {
		return err
	}
	if st.Paused == paused {
		if paused {
			return ErrSystemPaused
		}
		return ErrSystemNotPaused
	}
	st.Paused = paused

	at := types.AuditPaused
	if !paused {
		at = types.AuditUnpaused
	}
	tx := l.store.WriteTx()
	defer tx.Discard()
	if err := l.store.SetAccessState(tx, st); err != nil {
		return err
	}
	if err := l.audit(tx, &types.AuditRecord{Type: at, Principal: caller}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Infow("pause state changed", "paused", paused)
	return nil
}

// SetCooldowns updates the cooldown durations. Zero values keep the current
// setting. Owner only.
func (l *Ledger) SetCooldowns(caller common.Address, submission, decryption time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	st, err := l.access()
	if err != nil {
		return err
	}
	if err := assertOwner(st, caller); err != nil {
		return err
	}
	if submission > 0 {
		st.SubmissionCooldown = submission
	}
	if decryption > 0 {
		st.DecryptionCooldown = decryption
	}

	tx := l.store.WriteTx()
	defer tx.Discard()
	if err := l.store.SetAccessState(tx, st); err != nil {
		return err
	}
	if err := l.audit(tx, &types.AuditRecord{
		Type:      types.AuditCooldownChanged,
		Principal: caller,
		// The durations now in effect, in seconds.
		Values: []*types.BigInt{
			new(types.BigInt).SetUint64(uint64(st.SubmissionCooldown / time.Second)),
			new(types.BigInt).SetUint64(uint64(st.DecryptionCooldown / time.Second)),
		},
	}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Infow("cooldowns changed", "submission", st.SubmissionCooldown, "decryption", st.DecryptionCooldown)
	return nil
}

// IsProvider reports whether addr currently holds the provider role.
func (l *Ledger) IsProvider(addr common.Address) (bool, error) {
	rec, err := l.principal(addr)
	if err != nil {
		return false, err
	}
	return rec.Provider, nil
}

// Owner returns the current owner address.
func (l *Ledger) Owner() (common.Address, error) {
	st, err := l.access()
	if err != nil {
		return common.Address{}, err
	}
	return st.Owner, nil
}

// Paused reports whether the ledger is paused.
func (l *Ledger) Paused() (bool, error) {
	st, err := l.access()
	if err != nil {
		return false, err
	}
	return st.Paused, nil
}
