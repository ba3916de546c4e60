package service

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/arbo/memdb"

	"github.com/enclavegrants/grantledger/ledger"
	"github.com/enclavegrants/grantledger/oracle"
	"github.com/enclavegrants/grantledger/storage"
	"github.com/enclavegrants/grantledger/util"
)

func newServiceLedger(t *testing.T, owner common.Address, engine *oracle.MockEngine, clock func() time.Time) *ledger.Ledger {
	c := qt.New(t)
	store := storage.New(memdb.New())
	t.Cleanup(store.Close)
	l, err := ledger.New(ledger.Config{
		Store:    store,
		Engine:   engine,
		Owner:    owner,
		Identity: owner,
		Clock:    clock,
	})
	c.Assert(err, qt.IsNil)
	return l
}

func TestAPIService(t *testing.T) {
	c := qt.New(t)

	owner := common.HexToAddress("0x1000000000000000000000000000000000000001")
	l := newServiceLedger(t, owner, oracle.NewMockEngine(1), nil)

	// A random high port; port 0 would make Stop/Start rebind elsewhere.
	apiService := NewAPI(l, "127.0.0.1", util.RandomInt(40000, 60000))

	ctx := context.Background()
	err := apiService.Start(ctx)
	c.Assert(err, qt.IsNil)
	defer apiService.Stop()

	// Give the service time to start
	time.Sleep(time.Second)

	// Test stopping and restarting
	apiService.Stop()
	err = apiService.Start(ctx)
	c.Assert(err, qt.IsNil)

	// Test starting an already running service
	err = apiService.Start(ctx)
	c.Assert(err, qt.ErrorMatches, "service already running")
}
