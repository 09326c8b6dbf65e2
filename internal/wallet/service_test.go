package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/sahel-pay/sahel_pay/internal/signing"
)

func newService() *Service {
	return NewService(NewMemoryRepository(), "owner-1", "device-key-1")
}

func TestSetAndVerifyPIN(t *testing.T) {
	s := newService()
	ctx := context.Background()

	if err := s.SetPIN(ctx, "1234"); err != nil {
		t.Fatalf("set pin: %v", err)
	}

	ok, err := s.VerifyPIN(ctx, "1234")
	if err != nil || !ok {
		t.Fatalf("correct PIN rejected: %v %v", ok, err)
	}
	ok, err = s.VerifyPIN(ctx, "0000")
	if err != nil || ok {
		t.Fatalf("wrong PIN accepted: %v %v", ok, err)
	}
}

func TestSetPINRejectsWeakPIN(t *testing.T) {
	s := newService()
	if err := s.SetPIN(context.Background(), "12"); !errors.Is(err, signing.ErrWeakPIN) {
		t.Fatalf("expected ErrWeakPIN, got %v", err)
	}
}

func TestVerifyPINWithoutCredential(t *testing.T) {
	s := newService()
	if _, err := s.VerifyPIN(context.Background(), "1234"); !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
}

func TestDigestIsNotPlaintext(t *testing.T) {
	s := newService()
	ctx := context.Background()
	if err := s.SetPIN(ctx, "1234"); err != nil {
		t.Fatalf("set pin: %v", err)
	}
	cred, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cred.PINDigest == "1234" || cred.PINDigest == "" {
		t.Fatalf("digest looks wrong: %q", cred.PINDigest)
	}
	if cred.DeviceKeyID != "device-key-1" {
		t.Fatalf("device key id not recorded: %q", cred.DeviceKeyID)
	}
}

func TestOperatorPreferenceCreatesCredential(t *testing.T) {
	s := newService()
	ctx := context.Background()

	if err := s.SetOperatorPreference(ctx, "orange"); err != nil {
		t.Fatalf("set preference: %v", err)
	}
	cred, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cred.OperatorPreference != "orange" {
		t.Fatalf("preference not stored: %q", cred.OperatorPreference)
	}
}

func TestBiometricRequiresCredential(t *testing.T) {
	s := newService()
	ctx := context.Background()

	if err := s.SetBiometric(ctx, true); !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}

	if err := s.SetPIN(ctx, "1234"); err != nil {
		t.Fatalf("set pin: %v", err)
	}
	if err := s.SetBiometric(ctx, true); err != nil {
		t.Fatalf("set biometric: %v", err)
	}
	cred, _ := s.Get(ctx)
	if !cred.BiometricEnabled {
		t.Fatal("biometric toggle not stored")
	}
}
