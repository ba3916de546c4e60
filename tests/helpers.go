package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/arbo/memdb"

	"github.com/enclavegrants/grantledger/api"
	"github.com/enclavegrants/grantledger/api/client"
	"github.com/enclavegrants/grantledger/crypto/ethereum"
	"github.com/enclavegrants/grantledger/ledger"
	"github.com/enclavegrants/grantledger/oracle"
	"github.com/enclavegrants/grantledger/storage"
	"github.com/enclavegrants/grantledger/util"
)

// testEnv bundles everything an integration test needs to act on a running
// API server: the ledger underneath it, the mock engine that answers its
// decryption requests and the owner signer the ledger was initialized with.
type testEnv struct {
	ledger *ledger.Ledger
	engine *oracle.MockEngine
	owner  *ethereum.SignKeys
	port   int
}

// setupAPI starts an in-memory ledger with a fresh owner key and an API
// server on a random port. The mock engine's first request id is firstID.
func setupAPI(t *testing.T, firstID uint64) *testEnv {
	c := qt.New(t)

	owner, err := NewTestSigner()
	c.Assert(err, qt.IsNil)

	engine := oracle.NewMockEngine(firstID)
	store := storage.New(memdb.New())
	t.Cleanup(store.Close)

	l, err := ledger.New(ledger.Config{
		Store:    store,
		Engine:   engine,
		Owner:    owner.Address(),
		Identity: owner.Address(),
	})
	c.Assert(err, qt.IsNil)

	port := util.RandomInt(40000, 60000)
	srv, err := api.New(&api.APIConfig{
		Host:   "127.0.0.1",
		Port:   port,
		Ledger: l,
	})
	c.Assert(err, qt.IsNil)
	t.Cleanup(func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			t.Logf("api shutdown: %v", err)
		}
	})

	// Wait for the HTTP server to start
	time.Sleep(500 * time.Millisecond)
	return &testEnv{ledger: l, engine: engine, owner: owner, port: port}
}

// NewTestSigner creates and initializes a new ethereum signer for testing.
func NewTestSigner() (*ethereum.SignKeys, error) {
	signer := ethereum.NewSignKeys()
	if err := signer.Generate(); err != nil {
		return nil, err
	}
	return signer, nil
}

// NewTestClient creates a new API client for testing.
func NewTestClient(port int) (*client.HTTPclient, error) {
	return client.New(fmt.Sprintf("http://127.0.0.1:%d", port))
}
