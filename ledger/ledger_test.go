package ledger

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/arbo/memdb"

	"github.com/enclavegrants/grantledger/oracle"
	"github.com/enclavegrants/grantledger/storage"
	"github.com/enclavegrants/grantledger/types"
)

var (
	ownerAddr = common.HexToAddress("0x1000000000000000000000000000000000000001")
	provA     = common.HexToAddress("0x2000000000000000000000000000000000000002")
	provB     = common.HexToAddress("0x3000000000000000000000000000000000000003")
	outsider  = common.HexToAddress("0x4000000000000000000000000000000000000004")
	identity  = common.HexToAddress("0x5000000000000000000000000000000000000005")
)

// fakeClock is an injectable clock the tests advance by hand.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.t = f.t.Add(d)
}

type testLedger struct {
	*Ledger
	engine *oracle.MockEngine
	clock  *fakeClock
}

func newTestLedger(t *testing.T) *testLedger {
	c := qt.New(t)
	store := storage.New(memdb.New())
	t.Cleanup(store.Close)
	engine := oracle.NewMockEngine(1)
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	l, err := New(Config{
		Store:    store,
		Engine:   engine,
		Owner:    ownerAddr,
		Identity: identity,
		Clock:    clock.Now,
	})
	c.Assert(err, qt.IsNil)
	return &testLedger{Ledger: l, engine: engine, clock: clock}
}

// addProvider enrolls p and waits out nothing: role changes are not rate
// limited.
func (tl *testLedger) addProvider(c *qt.C, p common.Address) {
	c.Assert(tl.AddProvider(ownerAddr, p), qt.IsNil)
}

func handle(b byte) types.CiphertextHandle {
	h := make(types.CiphertextHandle, 32)
	h[0] = b
	return h
}

func TestOwnership(t *testing.T) {
	c := qt.New(t)
	tl := newTestLedger(t)

	owner, err := tl.Owner()
	c.Assert(err, qt.IsNil)
	c.Assert(owner, qt.Equals, ownerAddr)

	c.Assert(tl.TransferOwnership(outsider, outsider), qt.Equals, ErrUnauthorized)
	c.Assert(tl.TransferOwnership(ownerAddr, provA), qt.IsNil)

	// The old owner lost every owner-gated operation.
	c.Assert(tl.AddProvider(ownerAddr, provB), qt.Equals, ErrUnauthorized)
	c.Assert(tl.AddProvider(provA, provB), qt.IsNil)

	owner, err = tl.Owner()
	c.Assert(err, qt.IsNil)
	c.Assert(owner, qt.Equals, provA)
}

func TestProviderRole(t *testing.T) {
	c := qt.New(t)
	tl := newTestLedger(t)

	ok, err := tl.IsProvider(provA)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)

	c.Assert(tl.AddProvider(outsider, provA), qt.Equals, ErrUnauthorized)
	c.Assert(tl.AddProvider(ownerAddr, provA), qt.IsNil)
	// Idempotent, and must not append a second audit event.
	c.Assert(tl.AddProvider(ownerAddr, provA), qt.IsNil)

	ok, err = tl.IsProvider(provA)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)

	records, err := tl.AuditRecords(0, 0)
	c.Assert(err, qt.IsNil)
	added := 0
	for _, rec := range records {
		if rec.Type == types.AuditProviderAdded {
			added++
		}
	}
	c.Assert(added, qt.Equals, 1)

	c.Assert(tl.RemoveProvider(ownerAddr, provA), qt.IsNil)
	ok, err = tl.IsProvider(provA)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)
}

func TestPause(t *testing.T) {
	c := qt.New(t)
	tl := newTestLedger(t)
	tl.addProvider(c, provA)
	_, err := tl.OpenBatch(ownerAddr)
	c.Assert(err, qt.IsNil)

	c.Assert(tl.Pause(outsider), qt.Equals, ErrUnauthorized)
	c.Assert(tl.Pause(ownerAddr), qt.IsNil)
	c.Assert(tl.Pause(ownerAddr), qt.Equals, ErrSystemPaused)

	paused, err := tl.Paused()
	c.Assert(err, qt.IsNil)
	c.Assert(paused, qt.IsTrue)

	// Provider-facing operations are rejected while paused.
	_, err = tl.SubmitProposal(provA, handle(1), handle(2), handle(3), handle(4))
	c.Assert(err, qt.Equals, ErrSystemPaused)
	_, err = tl.SubmitVote(provA, 1, provA, handle(5))
	c.Assert(err, qt.Equals, ErrSystemPaused)

	c.Assert(tl.Unpause(ownerAddr), qt.IsNil)
	c.Assert(tl.Unpause(ownerAddr), qt.Equals, ErrSystemNotPaused)

	_, err = tl.SubmitProposal(provA, handle(1), handle(2), handle(3), handle(4))
	c.Assert(err, qt.IsNil)
}

func TestBatchLifecycle(t *testing.T) {
	c := qt.New(t)
	tl := newTestLedger(t)

	_, err := tl.OpenBatch(outsider)
	c.Assert(err, qt.Equals, ErrUnauthorized)
	c.Assert(tl.CloseBatch(ownerAddr), qt.Equals, ErrInvalidBatchState)

	id, err := tl.OpenBatch(ownerAddr)
	c.Assert(err, qt.IsNil)
	c.Assert(uint64(id), qt.Equals, uint64(1))

	_, err = tl.OpenBatch(ownerAddr)
	c.Assert(err, qt.Equals, ErrInvalidBatchState)

	c.Assert(tl.CloseBatch(ownerAddr), qt.IsNil)
	c.Assert(tl.CloseBatch(ownerAddr), qt.Equals, ErrInvalidBatchState)

	// Reopening advances the id; closed batches are never reopened.
	id, err = tl.OpenBatch(ownerAddr)
	c.Assert(err, qt.IsNil)
	c.Assert(uint64(id), qt.Equals, uint64(2))

	bs, err := tl.CurrentBatch()
	c.Assert(err, qt.IsNil)
	c.Assert(uint64(bs.CurrentID), qt.Equals, uint64(2))
	c.Assert(bs.Open, qt.IsTrue)
}

func TestCooldownConfiguration(t *testing.T) {
	c := qt.New(t)
	tl := newTestLedger(t)
	tl.addProvider(c, provA)
	_, err := tl.OpenBatch(ownerAddr)
	c.Assert(err, qt.IsNil)

	c.Assert(tl.SetCooldowns(outsider, time.Second, time.Second), qt.Equals, ErrUnauthorized)
	c.Assert(tl.SetCooldowns(ownerAddr, 10*time.Second, 0), qt.IsNil)

	// The audit event carries the durations now in effect, in seconds; the
	// zero argument kept the decryption default.
	records, err := tl.AuditRecords(0, 0)
	c.Assert(err, qt.IsNil)
	var changed *types.AuditRecord
	for _, rec := range records {
		if rec.Type == types.AuditCooldownChanged {
			changed = rec
		}
	}
	c.Assert(changed, qt.IsNotNil)
	c.Assert(changed.Values, qt.HasLen, 2)
	c.Assert(changed.Values[0].String(), qt.Equals, "10")
	c.Assert(changed.Values[1].String(), qt.Equals,
		new(types.BigInt).SetUint64(uint64(types.DefaultDecryptionCooldown/time.Second)).String())

	_, err = tl.SubmitProposal(provA, handle(1), handle(2), handle(3), handle(4))
	c.Assert(err, qt.IsNil)
	_, err = tl.SubmitProposal(provA, handle(1), handle(2), handle(3), handle(4))
	c.Assert(err, qt.Equals, ErrCooldownActive)

	// Not elapsed yet.
	tl.clock.Advance(9 * time.Second)
	_, err = tl.SubmitProposal(provA, handle(1), handle(2), handle(3), handle(4))
	c.Assert(err, qt.Equals, ErrCooldownActive)

	tl.clock.Advance(time.Second)
	_, err = tl.SubmitProposal(provA, handle(1), handle(2), handle(3), handle(4))
	c.Assert(err, qt.IsNil)
}
