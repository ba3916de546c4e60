package service

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	qt "github.com/frankban/quicktest"

	"github.com/enclavegrants/grantledger/oracle"
	"github.com/enclavegrants/grantledger/types"
)

func TestOracleService(t *testing.T) {
	c := qt.New(t)

	owner := common.HexToAddress("0x1000000000000000000000000000000000000001")
	provider := common.HexToAddress("0x2000000000000000000000000000000000000002")

	now := time.Unix(1700000000, 0)
	engine := oracle.NewMockEngine(1)
	l := newServiceLedger(t, owner, engine, func() time.Time { return now })

	c.Assert(l.AddProvider(owner, provider), qt.IsNil)
	_, err := l.OpenBatch(owner)
	c.Assert(err, qt.IsNil)
	_, err = l.SubmitProposal(provider,
		types.CiphertextHandle{0x01}, types.CiphertextHandle{0x02},
		types.CiphertextHandle{0x03}, types.CiphertextHandle{0x04})
	c.Assert(err, qt.IsNil)
	c.Assert(l.CloseBatch(owner), qt.IsNil)

	dc, err := l.RequestBatchResultDecryption(context.Background(), owner, 1)
	c.Assert(err, qt.IsNil)
	c.Assert(engine.PendingRequests(), qt.HasLen, 1)

	svc := NewOracle(engine, l, 50*time.Millisecond)
	ctx := context.Background()
	c.Assert(svc.Start(ctx), qt.IsNil)
	defer svc.Stop()
	c.Assert(svc.Start(ctx), qt.ErrorMatches, "service already running")

	// The service resolves the pending request, delivers the callback and
	// discards it once the ledger accepts the result.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if stored, err := l.DecryptionContext(dc.RequestID); err == nil && stored.Processed {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	stored, err := l.DecryptionContext(dc.RequestID)
	c.Assert(err, qt.IsNil)
	c.Assert(stored.Processed, qt.IsTrue)

	deadline = time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if len(engine.PendingRequests()) == 0 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	c.Assert(engine.PendingRequests(), qt.HasLen, 0)
}
