package transaction

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahel-pay/sahel_pay/internal/simline"
)

// Status is a lifecycle state of a transaction record.
type Status string

const (
	StatusCreated           Status = "created"
	StatusSent              Status = "sent"
	StatusAwaitingAck       Status = "awaiting_ack"
	StatusPendingAcceptance Status = "pending_acceptance"
	StatusAccepted          Status = "accepted"
	StatusAuthorizing       Status = "authorizing"
	StatusExecuting         Status = "executing"
	StatusSucceeded         Status = "succeeded"
	StatusFailed            Status = "failed"
	StatusCancelled         Status = "cancelled"
	StatusDeclined          Status = "declined"
)

// Terminal reports whether no further transition is permitted from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusCancelled, StatusDeclined:
		return true
	default:
		return false
	}
}

// Direction of a transaction relative to this device.
const (
	DirectionSent     = "sent"
	DirectionReceived = "received"
)

// Record is the durable ledger entry for a transaction. It never contains
// the plaintext PIN or a synthesized dial string.
type Record struct {
	TransactionID     string
	Direction         string
	Amount            decimal.Decimal
	Currency          string
	OperatorID        string
	CounterpartyHint  string
	TimestampMs       int64
	Status            Status
	AuthenticityProof string
	RawPayload        string
	ResultMessage     string
	CreatedAt         time.Time
}

var (
	// ErrNotFound indicates no record exists for the transaction id.
	ErrNotFound = errors.New("transaction not found")
	// ErrExists indicates a record already exists for the transaction id.
	ErrExists = errors.New("transaction already recorded")
	// ErrActionInFlight rejects a second concurrent lifecycle action on one id.
	ErrActionInFlight = errors.New("another action is in progress for this transaction")
	// ErrInvalidTransition rejects a lifecycle action the current status does not allow.
	ErrInvalidTransition = errors.New("invalid lifecycle transition")
	// ErrNoTelephonyLine means routing cannot proceed: no line is available.
	ErrNoTelephonyLine = errors.New("no telephony line available")
	// ErrLineSelectionRequired means the user must pick among several lines.
	ErrLineSelectionRequired = errors.New("line selection required")
	// ErrAuthorizationFailed means the PIN was wrong; retries remain.
	ErrAuthorizationFailed = errors.New("authorization failed")
	// ErrAuthorizationLockedOut means the attempt limit was exceeded; the
	// transaction is cancelled and a fresh one is required to retry.
	ErrAuthorizationLockedOut = errors.New("authorization locked out")
	// ErrAckTimeout means the counterparty acknowledgment did not arrive in time.
	ErrAckTimeout = errors.New("counterparty acknowledgment timed out")
	// ErrTerminalState is matched by TerminalStateError via errors.Is.
	ErrTerminalState = errors.New("transaction is in a terminal state")
)

// LineSelectionError carries the candidate lines when resolution is ambiguous.
type LineSelectionError struct {
	Candidates []simline.Line
}

func (e *LineSelectionError) Error() string {
	return fmt.Sprintf("line selection required among %d candidates", len(e.Candidates))
}

// Is lets callers match with errors.Is(err, ErrLineSelectionRequired).
func (e *LineSelectionError) Is(target error) bool {
	return target == ErrLineSelectionRequired
}

// TerminalStateError reports the stored terminal status when a lifecycle
// action is replayed on a finished transaction.
type TerminalStateError struct {
	Status Status
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("transaction already %s", e.Status)
}

// Is lets callers match with errors.Is(err, ErrTerminalState).
func (e *TerminalStateError) Is(target error) bool {
	return target == ErrTerminalState
}
