package signing

import (
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// MemoryDirectory is a concurrency-safe in-memory sender key directory.
type MemoryDirectory struct {
	mu   sync.RWMutex
	keys map[string]ed25519.PublicKey
}

// NewMemoryDirectory builds an empty directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{keys: make(map[string]ed25519.PublicKey)}
}

// Register associates a sender id with its base64 public key.
func (d *MemoryDirectory) Register(senderID, publicKey string) error {
	raw, err := b64.DecodeString(publicKey)
	if err != nil {
		return fmt.Errorf("decode public key for %s: %w", senderID, err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return fmt.Errorf("public key for %s has wrong size %d", senderID, len(raw))
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keys[senderID] = ed25519.PublicKey(raw)
	return nil
}

// PublicKey resolves a sender id to its key.
func (d *MemoryDirectory) PublicKey(senderID string) (ed25519.PublicKey, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	pub, ok := d.keys[senderID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSender, senderID)
	}
	return pub, nil
}

// LoadDirectoryFile reads a peers file mapping sender ids to base64 public
// keys. An empty path yields an empty directory; peers can then only be
// trusted after explicit registration.
func LoadDirectoryFile(path string) (*MemoryDirectory, error) {
	dir := NewMemoryDirectory()
	if path == "" {
		return dir, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read peers file: %w", err)
	}
	var peers map[string]string
	if err := json.Unmarshal(raw, &peers); err != nil {
		return nil, fmt.Errorf("parse peers file: %w", err)
	}
	for senderID, key := range peers {
		if err := dir.Register(senderID, key); err != nil {
			return nil, err
		}
	}
	return dir, nil
}
