package signing

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

var (
	// ErrUntrustedPayload indicates a signature that does not verify against
	// the claimed sender. Payloads failing this check must never reach line
	// resolution or a dial.
	ErrUntrustedPayload = errors.New("untrusted payload")

	// ErrUnknownSender indicates the claimed sender has no registered key.
	ErrUnknownSender = errors.New("unknown sender")
)

var b64 = base64.StdEncoding

// DeviceKey is the per-install signing identity. The private half never
// leaves the process; only KeyID and the public key are shared.
type DeviceKey struct {
	KeyID   string
	public  ed25519.PublicKey
	private ed25519.PrivateKey
}

// GenerateDeviceKey creates a fresh ed25519 keypair for this install.
func GenerateDeviceKey(keyID string) (*DeviceKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate device key: %w", err)
	}
	return &DeviceKey{KeyID: keyID, public: pub, private: priv}, nil
}

// Public returns the shareable public key, base64-encoded.
func (k *DeviceKey) Public() string {
	return b64.EncodeToString(k.public)
}

// Signer produces authenticity tags over canonical payload text.
type Signer struct {
	key *DeviceKey
}

// NewSigner wraps a device key for signing.
func NewSigner(key *DeviceKey) *Signer {
	return &Signer{key: key}
}

// KeyID names the key material used by this signer.
func (s *Signer) KeyID() string {
	return s.key.KeyID
}

// Sign returns a base64 signature over the canonical payload text.
func (s *Signer) Sign(canonical string) string {
	sig := ed25519.Sign(s.key.private, []byte(canonical))
	return b64.EncodeToString(sig)
}

// Directory resolves a sender identity hint to its public key. Implementations
// are read-shared; registration is the single-writer operation.
type Directory interface {
	PublicKey(senderID string) (ed25519.PublicKey, error)
}

// Verifier checks authenticity tags against the sender directory.
type Verifier struct {
	dir Directory
}

// NewVerifier builds a verifier over the given key directory.
func NewVerifier(dir Directory) *Verifier {
	return &Verifier{dir: dir}
}

// Verify checks that signature authenticates canonical for the claimed
// sender. Any alteration of a single canonical field makes this fail.
func (v *Verifier) Verify(canonical, signature, claimedSenderID string) error {
	pub, err := v.dir.PublicKey(claimedSenderID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUntrustedPayload, claimedSenderID)
	}
	sig, err := b64.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("%w: signature not base64", ErrUntrustedPayload)
	}
	if !ed25519.Verify(pub, []byte(canonical), sig) {
		return ErrUntrustedPayload
	}
	return nil
}
