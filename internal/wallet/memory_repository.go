package wallet

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type memoryRepository struct {
	mu    sync.RWMutex
	creds map[string]Credential
}

// NewMemoryRepository creates an in-memory credential repository for tests
// and database-less development runs.
func NewMemoryRepository() Repository {
	return &memoryRepository{creds: make(map[string]Credential)}
}

func (r *memoryRepository) Get(_ context.Context, ownerID string) (Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cred, ok := r.creds[ownerID]
	if !ok {
		return Credential{}, fmt.Errorf("%w: %s", ErrNoCredential, ownerID)
	}
	return cred, nil
}

func (r *memoryRepository) Save(_ context.Context, cred Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cred.UpdatedAt = time.Now().UTC()
	r.creds[cred.OwnerID] = cred
	return nil
}
