package storage

import (
	"encoding/binary"
	"errors"
	"fmt"

	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/prefixeddb"

	"github.com/enclavegrants/grantledger/types"
)

// auditSeqKey holds the next audit sequence number inside the audit prefix.
// Record keys are 8 bytes, so the 3-byte marker can never collide.
var auditSeqKey = []byte("seq")

func auditKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

// AppendAudit assigns the next sequence number to rec and writes it inside
// tx. The sequence counter advances in the same transaction, so a discarded
// operation leaves no gap. Callers are serialized by the ledger, never by
// this package.
func (s *Storage) AppendAudit(tx db.WriteTx, rec *types.AuditRecord) error {
	rd := prefixeddb.NewPrefixedReader(s.db, auditPrefix)
	seq := uint64(0)
	data, err := rd.Get(auditSeqKey)
	switch {
	case err == nil:
		seq = binary.BigEndian.Uint64(data)
	case errors.Is(err, db.ErrKeyNotFound):
	default:
		return fmt.Errorf("read audit sequence: %w", err)
	}
	rec.Sequence = seq

	wTx := prefixeddb.NewPrefixedWriteTx(tx, auditPrefix)
	if err := setArtifact(tx, auditPrefix, auditKey(seq), rec); err != nil {
		return err
	}
	next := make([]byte, 8)
	binary.BigEndian.PutUint64(next, seq+1)
	return wTx.Set(auditSeqKey, next)
}

// ListAuditRecords returns up to max records starting at fromSeq, in
// sequence order. A max of 0 means no limit.
func (s *Storage) ListAuditRecords(fromSeq uint64, max int) ([]*types.AuditRecord, error) {
	rd := prefixeddb.NewPrefixedReader(s.db, auditPrefix)
	var records []*types.AuditRecord
	var decodeErr error
	if err := rd.Iterate(nil, func(k, v []byte) bool {
		if len(k) != 8 {
			return true // sequence counter marker
		}
		if binary.BigEndian.Uint64(k) < fromSeq {
			return true
		}
		if max > 0 && len(records) >= max {
			return false
		}
		rec := &types.AuditRecord{}
		if err := decodeArtifact(v, rec); err != nil {
			decodeErr = fmt.Errorf("decode audit record: %w", err)
			return false
		}
		records = append(records, rec)
		return true
	}); err != nil {
		return nil, fmt.Errorf("iterate audit records: %w", err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return records, nil
}
