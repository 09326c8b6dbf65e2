package payload

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Encode serializes an intent to its delimited wire text. An empty note still
// occupies its position so the field count stays fixed.
func Encode(i Intent) (string, error) {
	fields := append(i.preSignatureFields(), i.Signature)
	for _, f := range fields {
		if strings.Contains(f, Delimiter) {
			return "", fmt.Errorf("%w: field contains delimiter: %q", ErrMalformedPayload, f)
		}
	}
	return strings.Join(fields, Delimiter), nil
}

// Decode parses delimited wire text back into an intent. It never panics on
// junk input; every failure mode maps to a codec sentinel.
func Decode(text string) (Intent, error) {
	parts := strings.Split(text, Delimiter)
	if len(parts) < intentFieldCount {
		return Intent{}, fmt.Errorf("%w: got %d fields, need %d", ErrMalformedPayload, len(parts), intentFieldCount)
	}

	amount, err := decimal.NewFromString(parts[2])
	if err != nil {
		return Intent{}, fmt.Errorf("%w: amount %q", ErrFieldType, parts[2])
	}
	ts, err := strconv.ParseInt(parts[8], 10, 64)
	if err != nil {
		return Intent{}, fmt.Errorf("%w: timestamp %q", ErrFieldType, parts[8])
	}

	intent := Intent{
		Version:       parts[0],
		TransactionID: parts[1],
		Amount:        amount,
		Currency:      parts[3],
		OperatorID:    parts[4],
		SenderID:      parts[5],
		ReceiverHint:  parts[6],
		Recipient:     parts[7],
		TimestampMs:   ts,
		Note:          parts[9],
		Signature:     parts[10],
	}

	if err := intent.Validate(); err != nil {
		return Intent{}, err
	}
	return intent, nil
}

// EncodeArmored wraps the delimited text in deflate compression and base64 so
// it survives display as a scannable code or an NDEF text record.
func EncodeArmored(i Intent) (string, error) {
	text, err := Encode(i)
	if err != nil {
		return "", err
	}
	return armor(text)
}

// DecodeArmored reverses the transport armor, then the compression, then the
// field split. Any stage failing surfaces as ErrMalformedPayload rather than
// a raw lower-level error.
func DecodeArmored(data string) (Intent, error) {
	text, err := dearmor(data)
	if err != nil {
		return Intent{}, err
	}
	return Decode(text)
}

// DecodeAny accepts either armored or plain delimited input. Scanned codes
// arrive armored; loopback and debug paths may hand over plain text.
func DecodeAny(data string) (Intent, error) {
	if intent, err := DecodeArmored(data); err == nil {
		return intent, nil
	}
	return Decode(data)
}

func armor(text string) (string, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if _, err := zw.Write([]byte(text)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func dearmor(data string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil {
		return "", fmt.Errorf("%w: not base64", ErrMalformedPayload)
	}
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: not deflate data", ErrMalformedPayload)
	}
	defer zr.Close()
	text, err := io.ReadAll(zr)
	if err != nil {
		return "", fmt.Errorf("%w: truncated deflate stream", ErrMalformedPayload)
	}
	return string(text), nil
}
