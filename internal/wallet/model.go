package wallet

import (
	"errors"
	"time"
)

// ErrNoCredential indicates the device wallet has not been set up yet.
var ErrNoCredential = errors.New("wallet credential not set up")

// Credential is the single per-device wallet settings row: the preferred
// operator, the PIN digest and the device key identity. The digest never
// leaves this package in API responses.
type Credential struct {
	OwnerID            string
	OperatorPreference string
	PINDigest          string
	BiometricEnabled   bool
	DeviceKeyID        string
	UpdatedAt          time.Time
}
