// Package ledger implements the batch/proposal/vote ledger and its guarded
// state transitions: role-gated access control, per-principal rate limiting,
// the batch lifecycle, the encrypted proposal and vote stores, and the
// asynchronous decryption-oracle bridge.
//
// Every state-mutating entry point runs as an atomic, serialized
// transaction: a single mutex serializes operations and all writes of one
// operation (records, cooldown stamps, audit events) go through one storage
// write transaction, committed only if the whole operation succeeds.
package ledger

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.vocdoni.io/dvote/db"

	"github.com/enclavegrants/grantledger/log"
	"github.com/enclavegrants/grantledger/oracle"
	"github.com/enclavegrants/grantledger/storage"
	"github.com/enclavegrants/grantledger/types"
)

// Ledger is the guarded state machine over the persistent stores. Identity
// is the ledger's own address, bound into every decryption state hash.
type Ledger struct {
	store    *storage.Storage
	engine   oracle.Engine
	identity common.Address
	now      func() time.Time
	mu       sync.Mutex
}

// Config collects the parameters needed to open a ledger.
type Config struct {
	Store    *storage.Storage
	Engine   oracle.Engine
	Owner    common.Address
	Identity common.Address
	// Clock is optional and defaults to time.Now. Tests inject their own.
	Clock func() time.Time
}

// New opens a ledger over the given storage. On first use it initializes the
// access-control singleton with the configured owner and the default
// cooldowns; on later opens the persisted state wins and cfg.Owner is
// ignored.
func New(cfg Config) (*Ledger, error) {
	l := &Ledger{
		store:    cfg.Store,
		engine:   cfg.Engine,
		identity: cfg.Identity,
		now:      cfg.Clock,
	}
	if l.now == nil {
		l.now = time.Now
	}
	if _, err := l.store.AccessState(); err == storage.ErrNotFound {
		tx := l.store.WriteTx()
		defer tx.Discard()
		st := &types.AccessState{
			Owner:              cfg.Owner,
			SubmissionCooldown: types.DefaultSubmissionCooldown,
			DecryptionCooldown: types.DefaultDecryptionCooldown,
		}
		if err := l.store.SetAccessState(tx, st); err != nil {
			return nil, err
		}
		if err := tx.Commit(); err != nil {
			return nil, err
		}
		log.Infow("ledger initialized", "owner", cfg.Owner.Hex(), "identity", cfg.Identity.Hex())
	} else if err != nil {
		return nil, err
	}
	return l, nil
}

// Identity returns the ledger's contract identity.
func (l *Ledger) Identity() common.Address {
	return l.identity
}

// access returns the access-control singleton; the ledger is always
// initialized by New, so a miss is a real error.
func (l *Ledger) access() (*types.AccessState, error) {
	return l.store.AccessState()
}

// assertOwner fails with ErrUnauthorized unless caller is the owner.
func assertOwner(st *types.AccessState, caller common.Address) error {
	if st.Owner != caller {
		return ErrUnauthorized
	}
	return nil
}

// assertNotPaused fails with ErrSystemPaused while the ledger is paused.
func assertNotPaused(st *types.AccessState) error {
	if st.Paused {
		return ErrSystemPaused
	}
	return nil
}

// assertProvider fails with ErrUnauthorized unless the caller holds the
// provider role. The principal record, possibly fresh, is returned so the
// caller can stamp cooldowns on it.
func (l *Ledger) assertProvider(caller common.Address) (*types.PrincipalRecord, error) {
	rec, err := l.principal(caller)
	if err != nil {
		return nil, err
	}
	if !rec.Provider {
		return nil, ErrUnauthorized
	}
	return rec, nil
}

// principal loads the record for caller, returning a zero record if the
// principal has never been seen.
func (l *Ledger) principal(addr common.Address) (*types.PrincipalRecord, error) {
	rec, err := l.store.Principal(addr)
	if err == storage.ErrNotFound {
		return &types.PrincipalRecord{Address: addr}, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// audit appends an audit record inside tx, stamping the current time.
func (l *Ledger) audit(tx db.WriteTx, rec *types.AuditRecord) error {
	rec.Timestamp = l.now()
	return l.store.AppendAudit(tx, rec)
}

// AuditRecords returns up to max audit records starting at fromSeq.
func (l *Ledger) AuditRecords(fromSeq uint64, max int) ([]*types.AuditRecord, error) {
	return l.store.ListAuditRecords(fromSeq, max)
}
