package signing

import (
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
)

type storedKey struct {
	KeyID      string `json:"key_id"`
	PrivateKey string `json:"private_key"`
}

// LoadOrCreateDeviceKey reads the device key from path, generating and
// persisting one on first run. The key is stable across the app's lifetime
// and is never exported beyond this file.
func LoadOrCreateDeviceKey(path string) (*DeviceKey, error) {
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		var stored storedKey
		if err := json.Unmarshal(raw, &stored); err != nil {
			return nil, fmt.Errorf("parse device key file: %w", err)
		}
		priv, err := b64.DecodeString(stored.PrivateKey)
		if err != nil || len(priv) != ed25519.PrivateKeySize {
			return nil, fmt.Errorf("device key file corrupted")
		}
		private := ed25519.PrivateKey(priv)
		return &DeviceKey{
			KeyID:   stored.KeyID,
			public:  private.Public().(ed25519.PublicKey),
			private: private,
		}, nil
	case errors.Is(err, os.ErrNotExist):
		key, err := GenerateDeviceKey("device-key-" + uuid.NewString())
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(storedKey{KeyID: key.KeyID, PrivateKey: b64.EncodeToString(key.private)})
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, raw, 0o600); err != nil {
			return nil, fmt.Errorf("persist device key: %w", err)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("read device key file: %w", err)
	}
}
