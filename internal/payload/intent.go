package payload

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Version is the protocol version stamped on every intent this build emits.
const Version = "1.0"

// Delimiter separates wire fields. It is forbidden inside field values.
const Delimiter = "|"

const intentFieldCount = 11

var (
	// ErrMalformedPayload covers any input the codec cannot turn into an
	// intent: bad armor, failed inflate, short field count, or invariant
	// violations such as a non-positive amount.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrFieldType indicates a field that exists but cannot parse as its
	// declared type (amount, timestamp).
	ErrFieldType = errors.New("payload field type mismatch")
)

// Intent is a transfer request exchanged between two nearby devices before
// any carrier-level processing happens.
type Intent struct {
	Version       string
	TransactionID string
	Amount        decimal.Decimal
	Currency      string
	OperatorID    string
	SenderID      string
	ReceiverHint  string
	Recipient     string
	TimestampMs   int64
	Note          string
	Signature     string
}

// Validate checks the invariants that hold for every intent regardless of
// direction: positive amount and the identifying fields present.
func (i Intent) Validate() error {
	if i.TransactionID == "" {
		return fmt.Errorf("%w: missing transaction id", ErrMalformedPayload)
	}
	if !i.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrMalformedPayload)
	}
	if i.OperatorID == "" {
		return fmt.Errorf("%w: missing operator", ErrMalformedPayload)
	}
	if i.Recipient == "" {
		return fmt.Errorf("%w: missing recipient number", ErrMalformedPayload)
	}
	return nil
}

// Canonical returns the fixed-order, signature-excluded concatenation used as
// input to signing and verification. It matches the wire field order exactly,
// which is what guarantees sign/verify symmetry.
func (i Intent) Canonical() string {
	return strings.Join(i.preSignatureFields(), Delimiter)
}

func (i Intent) preSignatureFields() []string {
	return []string{
		i.Version,
		i.TransactionID,
		i.Amount.String(),
		i.Currency,
		i.OperatorID,
		i.SenderID,
		i.ReceiverHint,
		i.Recipient,
		fmt.Sprintf("%d", i.TimestampMs),
		i.Note,
	}
}
