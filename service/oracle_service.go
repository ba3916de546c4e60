package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/enclavegrants/grantledger/ledger"
	"github.com/enclavegrants/grantledger/log"
	"github.com/enclavegrants/grantledger/oracle"
)

// LocalEngine is the subset of the mock engine the oracle service drives: it
// lists outstanding requests, resolves them into callbacks and discards the
// ones the ledger has accepted.
type LocalEngine interface {
	PendingRequests() []uint64
	Resolve(requestID uint64) (*oracle.Callback, error)
	Discard(requestID uint64)
}

// OracleService polls a local engine for outstanding decryption requests and
// delivers their callbacks into the ledger. It stands in for the external
// engine's out-of-band delivery in dev and test deployments; a production
// engine calls the callback endpoint on its own.
type OracleService struct {
	engine   LocalEngine
	ledger   *ledger.Ledger
	interval time.Duration
	mu       sync.Mutex
	cancel   context.CancelFunc
}

// NewOracle creates a new OracleService polling the engine at the given
// interval.
func NewOracle(engine LocalEngine, l *ledger.Ledger, interval time.Duration) *OracleService {
	return &OracleService{
		engine:   engine,
		ledger:   l,
		interval: interval,
	}
}

// Start begins delivering callbacks. It returns an error if the service is
// already running.
func (os *OracleService) Start(ctx context.Context) error {
	os.mu.Lock()
	defer os.mu.Unlock()

	if os.cancel != nil {
		return fmt.Errorf("service already running")
	}

	ctx, cancel := context.WithCancel(ctx)
	os.cancel = cancel

	go os.deliver(ctx)
	return nil
}

// Stop halts callback delivery.
func (os *OracleService) Stop() {
	os.mu.Lock()
	defer os.mu.Unlock()

	if os.cancel != nil {
		os.cancel()
		os.cancel = nil
	}
}

func (os *OracleService) deliver(ctx context.Context) {
	ticker := time.NewTicker(os.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, id := range os.engine.PendingRequests() {
				cb, err := os.engine.Resolve(id)
				if err != nil {
					log.Warnw("cannot resolve decryption request", "requestId", id, "error", err.Error())
					continue
				}
				_, err = os.ledger.OnDecryptionResult(cb.RequestID, cb.Cleartexts, cb.Proof)
				switch {
				case err == nil, errors.Is(err, ledger.ErrReplayAttempt):
					os.engine.Discard(id)
				case errors.Is(err, ledger.ErrStateMismatch):
					// Context is stuck until a fresh request supersedes it;
					// keep the request so the operator can see it pending.
					log.Warnw("decryption callback state mismatch", "requestId", id)
				default:
					log.Warnw("decryption callback rejected", "requestId", id, "error", err.Error())
				}
			}
		}
	}
}
