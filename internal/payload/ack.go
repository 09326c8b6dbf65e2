package payload

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	ackMarker     = "ack"
	ackFieldCount = 5
)

// Ack is the counterparty acknowledgment frame: the receiver tells the
// sender a transfer intent was accepted and executed on its side. It replaces
// the original flow's fixed wait timer with an explicit signal.
type Ack struct {
	TransactionID string
	ActorID       string
	TimestampMs   int64
	Signature     string
}

// Canonical returns the signature-excluded concatenation for signing.
func (a Ack) Canonical() string {
	return strings.Join([]string{ackMarker, a.TransactionID, a.ActorID, strconv.FormatInt(a.TimestampMs, 10)}, Delimiter)
}

// IsAck reports whether raw transport input looks like an ack frame, after
// stripping any armor.
func IsAck(data string) bool {
	text, err := dearmor(data)
	if err != nil {
		text = data
	}
	return strings.HasPrefix(text, ackMarker+Delimiter)
}

// EncodeAck serializes an ack frame with transport armor applied.
func EncodeAck(a Ack) (string, error) {
	for _, f := range []string{a.TransactionID, a.ActorID, a.Signature} {
		if strings.Contains(f, Delimiter) {
			return "", fmt.Errorf("%w: field contains delimiter: %q", ErrMalformedPayload, f)
		}
	}
	return armor(a.Canonical() + Delimiter + a.Signature)
}

// DecodeAck parses an ack frame from armored or plain input.
func DecodeAck(data string) (Ack, error) {
	text, err := dearmor(data)
	if err != nil {
		text = data
	}
	parts := strings.Split(text, Delimiter)
	if len(parts) < ackFieldCount || parts[0] != ackMarker {
		return Ack{}, fmt.Errorf("%w: not an ack frame", ErrMalformedPayload)
	}
	ts, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return Ack{}, fmt.Errorf("%w: timestamp %q", ErrFieldType, parts[3])
	}
	a := Ack{
		TransactionID: parts[1],
		ActorID:       parts[2],
		TimestampMs:   ts,
		Signature:     parts[4],
	}
	if a.TransactionID == "" || a.ActorID == "" {
		return Ack{}, fmt.Errorf("%w: ack missing identity fields", ErrMalformedPayload)
	}
	return a, nil
}
