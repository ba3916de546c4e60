package storage

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	qt "github.com/frankban/quicktest"
	"go.vocdoni.io/dvote/db/metadb"

	"github.com/enclavegrants/grantledger/types"
)

func addr(b byte) common.Address {
	var a common.Address
	a[19] = b
	return a
}

func TestAccessState(t *testing.T) {
	c := qt.New(t)
	stg := New(metadb.NewTest(t))

	_, err := stg.AccessState()
	c.Assert(err, qt.Equals, ErrNotFound)

	st := &types.AccessState{
		Owner:              addr(1),
		Paused:             true,
		SubmissionCooldown: time.Minute,
		DecryptionCooldown: 5 * time.Minute,
	}
	tx := stg.WriteTx()
	c.Assert(stg.SetAccessState(tx, st), qt.IsNil)
	c.Assert(tx.Commit(), qt.IsNil)

	got, err := stg.AccessState()
	c.Assert(err, qt.IsNil)
	c.Assert(got.Owner, qt.Equals, addr(1))
	c.Assert(got.Paused, qt.IsTrue)
	c.Assert(got.SubmissionCooldown, qt.Equals, time.Minute)
	c.Assert(got.DecryptionCooldown, qt.Equals, 5*time.Minute)
}

func TestPrincipalRecord(t *testing.T) {
	c := qt.New(t)
	stg := New(metadb.NewTest(t))

	_, err := stg.Principal(addr(7))
	c.Assert(err, qt.Equals, ErrNotFound)

	tx := stg.WriteTx()
	c.Assert(stg.SetPrincipal(tx, &types.PrincipalRecord{
		Address:  addr(7),
		Provider: true,
	}), qt.IsNil)
	c.Assert(tx.Commit(), qt.IsNil)

	rec, err := stg.Principal(addr(7))
	c.Assert(err, qt.IsNil)
	c.Assert(rec.Provider, qt.IsTrue)
	c.Assert(rec.Address, qt.Equals, addr(7))
}

func TestBatchStateDefaults(t *testing.T) {
	c := qt.New(t)
	stg := New(metadb.NewTest(t))

	// Before any batch is opened the lifecycle position is id 0, closed.
	bs, err := stg.BatchState()
	c.Assert(err, qt.IsNil)
	c.Assert(uint64(bs.CurrentID), qt.Equals, uint64(0))
	c.Assert(bs.Open, qt.IsFalse)

	tx := stg.WriteTx()
	c.Assert(stg.SetBatchState(tx, &types.BatchState{CurrentID: 3, Open: true}), qt.IsNil)
	c.Assert(tx.Commit(), qt.IsNil)

	bs, err = stg.BatchState()
	c.Assert(err, qt.IsNil)
	c.Assert(uint64(bs.CurrentID), qt.Equals, uint64(3))
	c.Assert(bs.Open, qt.IsTrue)
}

func TestProposalOrdering(t *testing.T) {
	c := qt.New(t)
	stg := New(metadb.NewTest(t))

	// Insert out of order, across two batches.
	for _, p := range []*types.Proposal{
		{BatchID: 1, Provider: addr(9), Funding: []byte{0x09}},
		{BatchID: 2, Provider: addr(1), Funding: []byte{0xff}},
		{BatchID: 1, Provider: addr(2), Funding: []byte{0x02}},
		{BatchID: 1, Provider: addr(5), Funding: []byte{0x05}},
	} {
		tx := stg.WriteTx()
		c.Assert(stg.SetProposal(tx, p), qt.IsNil)
		c.Assert(tx.Commit(), qt.IsNil)
	}

	proposals, err := stg.ListProposals(1)
	c.Assert(err, qt.IsNil)
	c.Assert(proposals, qt.HasLen, 3)
	c.Assert(proposals[0].Provider, qt.Equals, addr(2))
	c.Assert(proposals[1].Provider, qt.Equals, addr(5))
	c.Assert(proposals[2].Provider, qt.Equals, addr(9))

	p, err := stg.Proposal(1, addr(5))
	c.Assert(err, qt.IsNil)
	c.Assert([]byte(p.Funding), qt.DeepEquals, []byte{0x05})

	_, err = stg.Proposal(2, addr(9))
	c.Assert(err, qt.Equals, ErrNotFound)
}

func TestVoteOrdering(t *testing.T) {
	c := qt.New(t)
	stg := New(metadb.NewTest(t))

	for _, v := range []*types.Vote{
		{BatchID: 1, Provider: addr(5), Voter: addr(9), Choice: []byte{0x01}},
		{BatchID: 1, Provider: addr(2), Voter: addr(3), Choice: []byte{0x02}},
		{BatchID: 1, Provider: addr(5), Voter: addr(1), Choice: []byte{0x03}},
	} {
		tx := stg.WriteTx()
		c.Assert(stg.SetVote(tx, v), qt.IsNil)
		c.Assert(tx.Commit(), qt.IsNil)
	}

	votes, err := stg.ListVotes(1)
	c.Assert(err, qt.IsNil)
	c.Assert(votes, qt.HasLen, 3)
	// (provider, voter) ascending.
	c.Assert(votes[0].Provider, qt.Equals, addr(2))
	c.Assert(votes[1].Voter, qt.Equals, addr(1))
	c.Assert(votes[2].Voter, qt.Equals, addr(9))

	_, err = stg.Vote(1, addr(2), addr(9))
	c.Assert(err, qt.Equals, ErrNotFound)
}

func TestDecryptionContext(t *testing.T) {
	c := qt.New(t)
	stg := New(metadb.NewTest(t))

	_, err := stg.DecryptionContext(42)
	c.Assert(err, qt.Equals, ErrNotFound)

	dc := &types.DecryptionContext{
		RequestID: 42,
		BatchID:   1,
		StateHash: []byte{0xaa, 0xbb},
	}
	tx := stg.WriteTx()
	c.Assert(stg.SetDecryptionContext(tx, dc), qt.IsNil)
	c.Assert(tx.Commit(), qt.IsNil)

	got, err := stg.DecryptionContext(42)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Processed, qt.IsFalse)
	c.Assert([]byte(got.StateHash), qt.DeepEquals, []byte{0xaa, 0xbb})

	got.Processed = true
	tx = stg.WriteTx()
	c.Assert(stg.SetDecryptionContext(tx, got), qt.IsNil)
	c.Assert(tx.Commit(), qt.IsNil)

	got, err = stg.DecryptionContext(42)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Processed, qt.IsTrue)
}

func TestAuditSequence(t *testing.T) {
	c := qt.New(t)
	stg := New(metadb.NewTest(t))

	for i := 0; i < 3; i++ {
		tx := stg.WriteTx()
		c.Assert(stg.AppendAudit(tx, &types.AuditRecord{
			Type:      types.AuditBatchOpened,
			BatchID:   types.BatchID(i + 1),
			Timestamp: time.Now(),
		}), qt.IsNil)
		c.Assert(tx.Commit(), qt.IsNil)
	}

	// A discarded transaction must not advance the counter.
	tx := stg.WriteTx()
	c.Assert(stg.AppendAudit(tx, &types.AuditRecord{Type: types.AuditPaused}), qt.IsNil)
	tx.Discard()

	records, err := stg.ListAuditRecords(0, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(records, qt.HasLen, 3)
	for i, rec := range records {
		c.Assert(rec.Sequence, qt.Equals, uint64(i))
		c.Assert(rec.Type, qt.Equals, types.AuditBatchOpened)
	}

	tx = stg.WriteTx()
	c.Assert(stg.AppendAudit(tx, &types.AuditRecord{Type: types.AuditBatchClosed}), qt.IsNil)
	c.Assert(tx.Commit(), qt.IsNil)

	records, err = stg.ListAuditRecords(2, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(records, qt.HasLen, 2)
	c.Assert(records[0].Sequence, qt.Equals, uint64(2))
	c.Assert(records[1].Sequence, qt.Equals, uint64(3))
	c.Assert(records[1].Type, qt.Equals, types.AuditBatchClosed)

	records, err = stg.ListAuditRecords(0, 2)
	c.Assert(err, qt.IsNil)
	c.Assert(records, qt.HasLen, 2)
}
