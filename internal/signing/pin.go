package signing

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrWeakPIN rejects PINs below the minimum length at enrollment time.
var ErrWeakPIN = errors.New("PIN must be at least 4 digits")

const minPINLength = 4

// HashPIN derives a bcrypt digest for the wallet PIN. The plaintext PIN is
// never stored anywhere.
func HashPIN(pin string) ([]byte, error) {
	if len(pin) < minPINLength {
		return nil, ErrWeakPIN
	}
	return bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
}

// ComparePIN reports whether pin matches the stored digest.
func ComparePIN(digest []byte, pin string) bool {
	return bcrypt.CompareHashAndPassword(digest, []byte(pin)) == nil
}
