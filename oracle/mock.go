package oracle

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/enclavegrants/grantledger/crypto/ethereum"
	"github.com/enclavegrants/grantledger/types"
	"github.com/enclavegrants/grantledger/util"
)

// MockEngine implements Engine in-process for tests and the dev run mode.
// It assigns sequential request ids, resolves cleartexts through a
// configurable resolver and produces proofs over a per-instance secret that
// VerifyDecryptionProof recomputes.
type MockEngine struct {
	mu      sync.Mutex
	nextID  uint64
	secret  []byte
	pending map[uint64][]types.CiphertextHandle
	// Resolver maps a submitted ciphertext set to the cleartext bytes the
	// callback will deliver. The default resolver returns zeroed words.
	Resolver func(handles []types.CiphertextHandle) []byte
}

// NewMockEngine creates a mock engine whose first request id is firstID.
func NewMockEngine(firstID uint64) *MockEngine {
	return &MockEngine{
		nextID:  firstID,
		secret:  util.RandomBytes(32),
		pending: make(map[uint64][]types.CiphertextHandle),
	}
}

// SubmitDecryption implements Engine.
func (m *MockEngine) SubmitDecryption(_ context.Context, handles []types.CiphertextHandle) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	set := make([]types.CiphertextHandle, len(handles))
	copy(set, handles)
	m.pending[id] = set
	return id, nil
}

// VerifyDecryptionProof implements Engine.
func (m *MockEngine) VerifyDecryptionProof(requestID uint64, cleartexts, proof []byte) bool {
	expected := m.prove(requestID, cleartexts)
	if len(proof) != len(expected) {
		return false
	}
	for i := range proof {
		if proof[i] != expected[i] {
			return false
		}
	}
	return true
}

// Resolve produces the callback for an outstanding request. It returns an
// error if the request id is unknown. The request stays pending, so Resolve
// can be called again to simulate duplicate deliveries.
func (m *MockEngine) Resolve(requestID uint64) (*Callback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	handles, ok := m.pending[requestID]
	if !ok {
		return nil, fmt.Errorf("unknown request %d", requestID)
	}
	cleartexts := m.resolve(handles)
	return &Callback{
		RequestID:  requestID,
		Cleartexts: cleartexts,
		Proof:      m.prove(requestID, cleartexts),
	}, nil
}

// PendingRequests returns the ids of all requests not yet discarded.
func (m *MockEngine) PendingRequests() []uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]uint64, 0, len(m.pending))
	for id := range m.pending {
		ids = append(ids, id)
	}
	return ids
}

// Discard drops an outstanding request, so PendingRequests no longer
// reports it.
func (m *MockEngine) Discard(requestID uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, requestID)
}

func (m *MockEngine) resolve(handles []types.CiphertextHandle) []byte {
	if m.Resolver != nil {
		return m.Resolver(handles)
	}
	return make([]byte, types.ResultWords*types.ResultWordSize)
}

func (m *MockEngine) prove(requestID uint64, cleartexts []byte) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, requestID)
	buf = append(buf, cleartexts...)
	buf = append(buf, m.secret...)
	return ethereum.HashRaw(buf)
}
