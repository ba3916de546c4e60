package ledger

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/enclavegrants/grantledger/log"
	"github.com/enclavegrants/grantledger/types"
)

// OpenBatch opens a new submission round, incrementing the batch id. Owner
// only. Fails with ErrInvalidBatchState if a batch is already open.
func (l *Ledger) OpenBatch(caller common.Address) (types.BatchID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	st, err := l.access()
	if err != nil {
		return 0, err
	}
	if err := assertOwner(st, caller); err != nil {
		return 0, err
	}
	bs, err := l.store.BatchState()
	if err != nil {
		return 0, err
	}
	if bs.Open {
		return 0, ErrInvalidBatchState
	}
	bs.CurrentID++
	bs.Open = true

	tx := l.store.WriteTx()
	defer tx.Discard()
	if err := l.store.SetBatchState(tx, bs); err != nil {
		return 0, err
	}
	if err := l.audit(tx, &types.AuditRecord{
		Type:      types.AuditBatchOpened,
		Principal: caller,
		BatchID:   bs.CurrentID,
	}); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	log.Infow("batch opened", "batch", uint64(bs.CurrentID))
	return bs.CurrentID, nil
}

// CloseBatch closes the current batch; the id is unchanged. Owner only.
// Fails with ErrInvalidBatchState if no batch is open.
func (l *Ledger) CloseBatch(caller common.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	st, err := l.access()
	if err != nil {
		return err
	}
	if err := assertOwner(st, caller); err != nil {
		return err
	}
	bs, err := l.store.BatchState()
	if err != nil {
		return err
	}
	if !bs.Open {
		return ErrInvalidBatchState
	}
	bs.Open = false

	tx := l.store.WriteTx()
	defer tx.Discard()
	if err := l.store.SetBatchState(tx, bs); err != nil {
		return err
	}
	if err := l.audit(tx, &types.AuditRecord{
		Type:      types.AuditBatchClosed,
		Principal: caller,
		BatchID:   bs.CurrentID,
	}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Infow("batch closed", "batch", uint64(bs.CurrentID))
	return nil
}

// CurrentBatch returns the batch lifecycle state.
func (l *Ledger) CurrentBatch() (*types.BatchState, error) {
	return l.store.BatchState()
}
