package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/sahel-pay/sahel_pay/internal/signing"
)

// Service exposes credential operations for the device wallet. It satisfies
// the lifecycle engine's credential verifier.
type Service struct {
	repo    Repository
	ownerID string
	keyID   string
}

// NewService builds a wallet service for the configured device owner.
func NewService(repo Repository, ownerID, deviceKeyID string) *Service {
	return &Service{repo: repo, ownerID: ownerID, keyID: deviceKeyID}
}

// Get returns the credential for the device owner.
func (s *Service) Get(ctx context.Context) (Credential, error) {
	return s.repo.Get(ctx, s.ownerID)
}

// SetPIN hashes and stores a new wallet PIN, creating the credential row on
// first use.
func (s *Service) SetPIN(ctx context.Context, pin string) error {
	digest, err := signing.HashPIN(pin)
	if err != nil {
		return err
	}
	cred, err := s.repo.Get(ctx, s.ownerID)
	if errors.Is(err, ErrNoCredential) {
		cred = Credential{OwnerID: s.ownerID, DeviceKeyID: s.keyID}
	} else if err != nil {
		return err
	}
	cred.PINDigest = string(digest)
	cred.DeviceKeyID = s.keyID
	return s.repo.Save(ctx, cred)
}

// VerifyPIN checks a candidate PIN against the stored digest. A missing
// credential is an error, not a mismatch.
func (s *Service) VerifyPIN(ctx context.Context, pin string) (bool, error) {
	cred, err := s.repo.Get(ctx, s.ownerID)
	if err != nil {
		return false, err
	}
	if cred.PINDigest == "" {
		return false, fmt.Errorf("%w: no PIN set", ErrNoCredential)
	}
	return signing.ComparePIN([]byte(cred.PINDigest), pin), nil
}

// SetOperatorPreference records the default operator used to prefill new
// intents.
func (s *Service) SetOperatorPreference(ctx context.Context, operatorID string) error {
	cred, err := s.repo.Get(ctx, s.ownerID)
	if errors.Is(err, ErrNoCredential) {
		cred = Credential{OwnerID: s.ownerID, DeviceKeyID: s.keyID}
	} else if err != nil {
		return err
	}
	cred.OperatorPreference = operatorID
	return s.repo.Save(ctx, cred)
}

// SetBiometric toggles biometric unlock. The PIN remains the authorization
// credential for transfers either way.
func (s *Service) SetBiometric(ctx context.Context, enabled bool) error {
	cred, err := s.repo.Get(ctx, s.ownerID)
	if err != nil {
		return err
	}
	cred.BiometricEnabled = enabled
	return s.repo.Save(ctx, cred)
}
