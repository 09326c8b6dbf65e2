package payload

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func sampleIntent() Intent {
	return Intent{
		Version:       Version,
		TransactionID: "b3f1c8a2-9d4e-4f6a-8b2c-1e5d7a9c3f01",
		Amount:        decimal.NewFromInt(500),
		Currency:      "XOF",
		OperatorID:    "orange",
		SenderID:      "louisbertson",
		ReceiverHint:  "",
		Recipient:     "22670000000",
		TimestampMs:   1726000000000,
		Note:          "lunch",
		Signature:     "c2lnbmF0dXJl",
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := sampleIntent()

	text, err := Encode(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(text)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	assertIntentEqual(t, want, got)
}

func TestArmoredRoundTrip(t *testing.T) {
	want := sampleIntent()
	want.Note = ""

	armored, err := EncodeArmored(want)
	if err != nil {
		t.Fatalf("encode armored: %v", err)
	}
	if strings.Contains(armored, Delimiter) {
		t.Fatalf("armored form leaked the delimiter: %s", armored)
	}

	got, err := DecodeArmored(armored)
	if err != nil {
		t.Fatalf("decode armored: %v", err)
	}
	assertIntentEqual(t, want, got)
}

func TestDecodeTooFewFields(t *testing.T) {
	_, err := Decode("1.0|only-two-fields")
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}

func TestDecodeNonNumericFields(t *testing.T) {
	base := sampleIntent()
	text, err := Encode(base)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	parts := strings.Split(text, Delimiter)

	badAmount := strings.Join(replaceField(parts, 2, "five-hundred"), Delimiter)
	if _, err := Decode(badAmount); !errors.Is(err, ErrFieldType) {
		t.Fatalf("expected ErrFieldType for amount, got %v", err)
	}

	badTimestamp := strings.Join(replaceField(parts, 8, "yesterday"), Delimiter)
	if _, err := Decode(badTimestamp); !errors.Is(err, ErrFieldType) {
		t.Fatalf("expected ErrFieldType for timestamp, got %v", err)
	}
}

func TestDecodeRejectsNonPositiveAmount(t *testing.T) {
	base := sampleIntent()
	base.Amount = decimal.Zero
	text, err := Encode(base)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := Decode(text); !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload for zero amount, got %v", err)
	}
}

func TestDecodeArmoredJunk(t *testing.T) {
	for _, junk := range []string{"", "not base64 at all!!", "aGVsbG8gd29ybGQ=", "1.0|only-two-fields"} {
		if _, err := DecodeArmored(junk); !errors.Is(err, ErrMalformedPayload) {
			t.Fatalf("input %q: expected ErrMalformedPayload, got %v", junk, err)
		}
	}
}

func TestEncodeRejectsDelimiterInField(t *testing.T) {
	i := sampleIntent()
	i.Note = "a|b"
	if _, err := Encode(i); !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected delimiter rejection, got %v", err)
	}
}

func TestCanonicalExcludesSignature(t *testing.T) {
	i := sampleIntent()
	canonical := i.Canonical()
	if strings.Contains(canonical, i.Signature) {
		t.Fatal("canonical form must exclude the signature")
	}

	text, err := Encode(i)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.HasPrefix(text, canonical+Delimiter) {
		t.Fatal("wire text must start with the canonical form")
	}
}

func TestAckRoundTrip(t *testing.T) {
	want := Ack{TransactionID: "tx-1", ActorID: "receiver-9", TimestampMs: 1726000000123, Signature: "c2ln"}

	armored, err := EncodeAck(want)
	if err != nil {
		t.Fatalf("encode ack: %v", err)
	}
	if !IsAck(armored) {
		t.Fatal("armored ack not recognized as ack frame")
	}

	got, err := DecodeAck(armored)
	if err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	if got != want {
		t.Fatalf("ack round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestIsAckRejectsIntent(t *testing.T) {
	armored, err := EncodeArmored(sampleIntent())
	if err != nil {
		t.Fatalf("encode armored: %v", err)
	}
	if IsAck(armored) {
		t.Fatal("intent frame misclassified as ack")
	}
}

func replaceField(parts []string, idx int, value string) []string {
	out := make([]string, len(parts))
	copy(out, parts)
	out[idx] = value
	return out
}

func assertIntentEqual(t *testing.T, want, got Intent) {
	t.Helper()
	if !got.Amount.Equal(want.Amount) {
		t.Fatalf("amount mismatch: got %s want %s", got.Amount, want.Amount)
	}
	got.Amount = want.Amount
	if got != want {
		t.Fatalf("intent mismatch:\n got %+v\nwant %+v", got, want)
	}
}
