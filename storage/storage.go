// Package storage persists all ledger state in a prefixed key-value store.
// Every artifact lives under its own prefix:
//   - 'ac/' for the access-control singleton (owner, pause flag, cooldowns)
//   - 'pr/' for principal records (provider flag, cooldown stamps)
//   - 'b/'  for the batch lifecycle singleton
//   - 'p/'  for proposals, keyed by batch id and provider address
//   - 'v/'  for votes, keyed by batch id, proposal provider and voter
//   - 'dc/' for decryption contexts, keyed by oracle request id
//   - 'au/' for the append-only audit log, keyed by sequence number
//
// Mutations are expressed against a caller-owned write transaction so that a
// ledger operation can combine several writes (record, cooldown stamp, audit
// event) into a single atomic commit.
package storage

import (
	"errors"

	"go.vocdoni.io/dvote/db"
)

var (
	// Prefixes for the keys in the database.
	accessPrefix    = []byte("ac/")
	principalPrefix = []byte("pr/")
	batchPrefix     = []byte("b/")
	proposalPrefix  = []byte("p/")
	votePrefix      = []byte("v/")
	contextPrefix   = []byte("dc/")
	auditPrefix     = []byte("au/")
)

// ErrNotFound is returned when the requested artifact does not exist.
var ErrNotFound = errors.New("not found")

// Storage wraps the key-value database holding the ledger state.
type Storage struct {
	db db.Database
}

// New creates a new Storage instance over the given database.
func New(db db.Database) *Storage {
	return &Storage{db: db}
}

// Close closes the underlying database.
func (s *Storage) Close() {
	s.db.Close()
}

// WriteTx returns a fresh write transaction over the underlying database.
// The caller owns it: either Commit or Discard must be called.
func (s *Storage) WriteTx() db.WriteTx {
	return s.db.WriteTx()
}
