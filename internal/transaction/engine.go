package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahel-pay/sahel_pay/internal/notification"
	"github.com/sahel-pay/sahel_pay/internal/operator"
	"github.com/sahel-pay/sahel_pay/internal/payload"
	"github.com/sahel-pay/sahel_pay/internal/signing"
	"github.com/sahel-pay/sahel_pay/internal/simline"
	"github.com/sahel-pay/sahel_pay/internal/ussd"
)

const maxPINAttempts = 3

// CredentialVerifier checks the wallet PIN during authorization.
type CredentialVerifier interface {
	VerifyPIN(ctx context.Context, pin string) (bool, error)
}

// EventLogger records anonymized usage events for the background sync.
// telemetry.Store satisfies it.
type EventLogger interface {
	Log(ctx context.Context, eventType string, details map[string]any) error
}

// Deps aggregates the collaborators the engine is constructed with. Registry,
// signer, verifier, resolver, line source, credentials, executor and store
// are required; events and notifier are optional.
type Deps struct {
	Store       Store
	Flights     Flight
	Registry    *operator.Registry
	Signer      *signing.Signer
	Verifier    *signing.Verifier
	Resolver    *simline.Resolver
	Bindings    simline.BindingStore
	Lines       simline.Source
	Credentials CredentialVerifier
	Executor    *ussd.Executor
	Events      EventLogger
	Notifier    notification.Notifier
	Logger      *slog.Logger
	SenderID    string
	AckTimeout  time.Duration
}

// Engine drives the transaction lifecycle from intent creation or reception
// through acceptance, authorization, execution and terminal status. It
// exclusively owns the in-memory state of each transaction being processed.
type Engine struct {
	deps Deps

	mu     sync.Mutex
	states map[string]*txState
}

type txState struct {
	attempts     int
	lockedOut    bool
	line         simline.Line
	hasLine      bool
	explicitLine bool
	ackCh        chan struct{}
}

// NewEngine validates dependencies and builds the lifecycle engine.
func NewEngine(deps Deps) (*Engine, error) {
	switch {
	case deps.Store == nil:
		return nil, fmt.Errorf("engine requires a record store")
	case deps.Flights == nil:
		return nil, fmt.Errorf("engine requires a single-flight guard")
	case deps.Registry == nil:
		return nil, fmt.Errorf("engine requires an operator registry")
	case deps.Signer == nil || deps.Verifier == nil:
		return nil, fmt.Errorf("engine requires signing dependencies")
	case deps.Resolver == nil || deps.Bindings == nil || deps.Lines == nil:
		return nil, fmt.Errorf("engine requires line resolution dependencies")
	case deps.Credentials == nil:
		return nil, fmt.Errorf("engine requires a credential verifier")
	case deps.Executor == nil:
		return nil, fmt.Errorf("engine requires a ussd executor")
	case deps.SenderID == "":
		return nil, fmt.Errorf("engine requires the device sender id")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.AckTimeout <= 0 {
		deps.AckTimeout = 45 * time.Second
	}
	return &Engine{deps: deps, states: make(map[string]*txState)}, nil
}

// CreateInput captures the data a sender supplies to build a transfer intent.
type CreateInput struct {
	Amount       decimal.Decimal
	Currency     string
	OperatorID   string
	Recipient    string
	ReceiverHint string
	Note         string
}

// CreateResult is a freshly created intent together with its armored wire form.
type CreateResult struct {
	Intent  payload.Intent
	Armored string
	Record  Record
}

// CreateIntent builds, signs and records a new transfer intent on the sender
// side. The record starts in the created state until transport handoff.
func (e *Engine) CreateIntent(ctx context.Context, input CreateInput) (CreateResult, error) {
	if !input.Amount.IsPositive() {
		return CreateResult{}, fmt.Errorf("%w: amount must be positive", payload.ErrMalformedPayload)
	}
	if _, err := e.deps.Registry.Get(input.OperatorID); err != nil {
		return CreateResult{}, err
	}
	currency := input.Currency
	if currency == "" {
		currency = "XOF"
	}

	intent := payload.Intent{
		Version:       payload.Version,
		TransactionID: uuid.NewString(),
		Amount:        input.Amount,
		Currency:      currency,
		OperatorID:    input.OperatorID,
		SenderID:      e.deps.SenderID,
		ReceiverHint:  input.ReceiverHint,
		Recipient:     input.Recipient,
		TimestampMs:   time.Now().UnixMilli(),
		Note:          input.Note,
	}
	if err := intent.Validate(); err != nil {
		return CreateResult{}, err
	}
	intent.Signature = e.deps.Signer.Sign(intent.Canonical())

	raw, err := payload.Encode(intent)
	if err != nil {
		return CreateResult{}, err
	}
	armored, err := payload.EncodeArmored(intent)
	if err != nil {
		return CreateResult{}, err
	}

	hint := input.ReceiverHint
	if hint == "" {
		hint = input.Recipient
	}
	record := Record{
		TransactionID:     intent.TransactionID,
		Direction:         DirectionSent,
		Amount:            intent.Amount,
		Currency:          intent.Currency,
		OperatorID:        intent.OperatorID,
		CounterpartyHint:  hint,
		TimestampMs:       intent.TimestampMs,
		Status:            StatusCreated,
		AuthenticityProof: intent.Signature,
		RawPayload:        raw,
	}
	if err := e.deps.Store.Create(ctx, record); err != nil {
		return CreateResult{}, err
	}
	e.logEvent(ctx, "intent_created", map[string]any{"operator": intent.OperatorID, "amount": intent.Amount.String()})

	return CreateResult{Intent: intent, Armored: armored, Record: record}, nil
}

// MarkSent advances created → sent once the transport handoff succeeded. A
// failed handoff is retried by the caller and never advances state.
func (e *Engine) MarkSent(ctx context.Context, transactionID string) (Record, error) {
	release, err := e.deps.Flights.Acquire(ctx, transactionID)
	if err != nil {
		return Record{}, err
	}
	defer release()

	rec, err := e.deps.Store.Get(ctx, transactionID)
	if err != nil {
		return Record{}, err
	}
	if rec.Status.Terminal() {
		return rec, &TerminalStateError{Status: rec.Status}
	}
	if rec.Status == StatusSent {
		return rec, nil
	}
	if rec.Status != StatusCreated {
		return rec, fmt.Errorf("%w: %s → sent", ErrInvalidTransition, rec.Status)
	}
	if err := e.deps.Store.UpdateStatus(ctx, transactionID, StatusSent); err != nil {
		return Record{}, err
	}
	rec.Status = StatusSent
	e.logEvent(ctx, "payload_sent", map[string]any{"operator": rec.OperatorID})
	return rec, nil
}

// AwaitAck parks the sender on an explicit acknowledgment from the
// counterparty instead of the old fixed sleep. On timeout the record drops
// back to sent so the wait can be re-armed; no failure is recorded for a
// transfer that may have completed on the other device.
func (e *Engine) AwaitAck(ctx context.Context, transactionID string) (Record, error) {
	rec, ackCh, err := e.armAckWait(ctx, transactionID)
	if err != nil || ackCh == nil {
		return rec, err
	}

	timer := time.NewTimer(e.deps.AckTimeout)
	defer timer.Stop()

	select {
	case <-ackCh:
		return e.deps.Store.Get(ctx, transactionID)
	case <-timer.C:
		return e.disarmAckWait(ctx, transactionID)
	case <-ctx.Done():
		rec, derr := e.disarmAckWait(context.WithoutCancel(ctx), transactionID)
		if derr != nil && !errors.Is(derr, ErrAckTimeout) {
			return rec, derr
		}
		return rec, ctx.Err()
	}
}

// armAckWait moves the record into awaiting_ack under the single-flight
// guard, so a concurrent ack cannot land between the status check and the
// write. A nil channel means the wait is already settled and rec is final.
func (e *Engine) armAckWait(ctx context.Context, transactionID string) (Record, chan struct{}, error) {
	release, err := e.deps.Flights.Acquire(ctx, transactionID)
	if err != nil {
		return Record{}, nil, err
	}
	defer release()

	rec, err := e.deps.Store.Get(ctx, transactionID)
	if err != nil {
		return Record{}, nil, err
	}
	if rec.Status.Terminal() {
		return rec, nil, nil
	}
	if rec.Status != StatusSent && rec.Status != StatusAwaitingAck {
		return rec, nil, fmt.Errorf("%w: %s → awaiting_ack", ErrInvalidTransition, rec.Status)
	}
	if rec.Status != StatusAwaitingAck {
		if err := e.deps.Store.UpdateStatus(ctx, transactionID, StatusAwaitingAck); err != nil {
			return Record{}, nil, err
		}
		rec.Status = StatusAwaitingAck
	}

	e.mu.Lock()
	st := e.state(transactionID)
	if st.ackCh == nil {
		st.ackCh = make(chan struct{})
	}
	ackCh := st.ackCh
	e.mu.Unlock()
	return rec, ackCh, nil
}

// disarmAckWait reverts awaiting_ack to sent unless the record settled while
// the waiter slept; a settled record is returned as-is with no error, so an
// ack that won the race is never overwritten.
func (e *Engine) disarmAckWait(ctx context.Context, transactionID string) (Record, error) {
	release, err := e.deps.Flights.Acquire(ctx, transactionID)
	if err != nil {
		// An ack is being processed right now; report the record as it is.
		if errors.Is(err, ErrActionInFlight) {
			return e.deps.Store.Get(ctx, transactionID)
		}
		return Record{}, err
	}
	defer release()

	rec, err := e.deps.Store.Get(ctx, transactionID)
	if err != nil {
		return Record{}, err
	}
	if rec.Status != StatusAwaitingAck {
		return rec, nil
	}
	if err := e.deps.Store.UpdateStatus(ctx, transactionID, StatusSent); err != nil {
		return Record{}, err
	}
	rec.Status = StatusSent
	return rec, ErrAckTimeout
}

// Acknowledge processes a counterparty ack frame: verified acks complete the
// sender-side record.
func (e *Engine) Acknowledge(ctx context.Context, raw string) (Record, error) {
	ack, err := payload.DecodeAck(raw)
	if err != nil {
		return Record{}, err
	}
	if err := e.deps.Verifier.Verify(ack.Canonical(), ack.Signature, ack.ActorID); err != nil {
		return Record{}, err
	}

	release, err := e.deps.Flights.Acquire(ctx, ack.TransactionID)
	if err != nil {
		return Record{}, err
	}
	defer release()

	rec, err := e.deps.Store.Get(ctx, ack.TransactionID)
	if err != nil {
		return Record{}, err
	}
	if rec.Status == StatusSucceeded {
		return rec, nil
	}
	if rec.Status.Terminal() {
		return rec, &TerminalStateError{Status: rec.Status}
	}
	if rec.Direction != DirectionSent || (rec.Status != StatusSent && rec.Status != StatusAwaitingAck) {
		return rec, fmt.Errorf("%w: %s → succeeded via ack", ErrInvalidTransition, rec.Status)
	}

	if err := e.deps.Store.SetOutcome(ctx, rec.TransactionID, StatusSucceeded, "counterparty acknowledged"); err != nil {
		return Record{}, err
	}
	rec.Status = StatusSucceeded
	rec.ResultMessage = "counterparty acknowledged"

	e.mu.Lock()
	st := e.state(rec.TransactionID)
	if st.ackCh != nil {
		close(st.ackCh)
		st.ackCh = nil
	}
	e.mu.Unlock()

	e.logEvent(ctx, "ack_received", map[string]any{"operator": rec.OperatorID})
	e.notify(ctx, notification.KindTransferOutcome, rec.CounterpartyHint, fmt.Sprintf("Transfer %s acknowledged", rec.TransactionID))
	return rec, nil
}

// Receive processes raw bytes from the radio or a scanned code on the
// receiver side. Codec and signature failures create no record at all.
func (e *Engine) Receive(ctx context.Context, raw string) (Record, error) {
	intent, err := payload.DecodeAny(raw)
	if err != nil {
		return Record{}, err
	}
	if err := e.deps.Verifier.Verify(intent.Canonical(), intent.Signature, intent.SenderID); err != nil {
		return Record{}, err
	}
	if _, err := e.deps.Registry.Get(intent.OperatorID); err != nil {
		return Record{}, err
	}

	// Replays of a known transaction id are a no-op returning the stored record.
	if existing, err := e.deps.Store.Get(ctx, intent.TransactionID); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return Record{}, err
	}

	plain, err := payload.Encode(intent)
	if err != nil {
		return Record{}, err
	}
	record := Record{
		TransactionID:     intent.TransactionID,
		Direction:         DirectionReceived,
		Amount:            intent.Amount,
		Currency:          intent.Currency,
		OperatorID:        intent.OperatorID,
		CounterpartyHint:  intent.SenderID,
		TimestampMs:       intent.TimestampMs,
		Status:            StatusPendingAcceptance,
		AuthenticityProof: intent.Signature,
		RawPayload:        plain,
	}
	if err := e.deps.Store.Create(ctx, record); err != nil {
		return Record{}, err
	}
	e.logEvent(ctx, "payload_received", map[string]any{"operator": intent.OperatorID, "amount": intent.Amount.String()})
	e.notify(ctx, notification.KindTransferReceived, intent.SenderID,
		fmt.Sprintf("Transfer request for %s %s", intent.Amount, intent.Currency))
	return record, nil
}

// Accept moves a received transaction to accepted once a telephony line is
// resolved. With several unbound lines it stays pending and surfaces the
// candidates; with none it stays pending with ErrNoTelephonyLine and no
// failure record is written.
func (e *Engine) Accept(ctx context.Context, transactionID string) (Record, error) {
	release, err := e.deps.Flights.Acquire(ctx, transactionID)
	if err != nil {
		return Record{}, err
	}
	defer release()

	rec, err := e.deps.Store.Get(ctx, transactionID)
	if err != nil {
		return Record{}, err
	}
	if rec.Status.Terminal() {
		return rec, &TerminalStateError{Status: rec.Status}
	}
	if rec.Status == StatusAccepted {
		return rec, nil
	}
	if rec.Status != StatusPendingAcceptance {
		return rec, fmt.Errorf("%w: %s → accepted", ErrInvalidTransition, rec.Status)
	}

	available, err := e.deps.Lines.Lines(ctx)
	if err != nil {
		return rec, err
	}
	choice, err := e.deps.Resolver.Resolve(ctx, rec.OperatorID, available)
	if err != nil {
		return rec, err
	}

	switch choice.Kind {
	case simline.NoLineAvailable:
		return rec, ErrNoTelephonyLine
	case simline.AmbiguousChoice:
		return rec, &LineSelectionError{Candidates: choice.Candidates}
	}

	e.mu.Lock()
	st := e.state(transactionID)
	st.line = choice.Line
	st.hasLine = true
	st.explicitLine = false
	e.mu.Unlock()

	if err := e.deps.Store.UpdateStatus(ctx, transactionID, StatusAccepted); err != nil {
		return Record{}, err
	}
	rec.Status = StatusAccepted
	e.logEvent(ctx, "intent_accepted", map[string]any{"operator": rec.OperatorID})
	return rec, nil
}

// ChooseLine records an explicit user line choice and accepts the
// transaction. The binding is persisted only after authorization succeeds, so
// an abandoned transaction cannot silently change future routing.
func (e *Engine) ChooseLine(ctx context.Context, transactionID string, subscriptionID int) (Record, error) {
	release, err := e.deps.Flights.Acquire(ctx, transactionID)
	if err != nil {
		return Record{}, err
	}
	defer release()

	rec, err := e.deps.Store.Get(ctx, transactionID)
	if err != nil {
		return Record{}, err
	}
	if rec.Status.Terminal() {
		return rec, &TerminalStateError{Status: rec.Status}
	}
	if rec.Status != StatusPendingAcceptance && rec.Status != StatusAccepted {
		return rec, fmt.Errorf("%w: %s → accepted", ErrInvalidTransition, rec.Status)
	}

	available, err := e.deps.Lines.Lines(ctx)
	if err != nil {
		return rec, err
	}
	var chosen *simline.Line
	for i := range available {
		if available[i].SubscriptionID == subscriptionID {
			chosen = &available[i]
			break
		}
	}
	if chosen == nil {
		return rec, fmt.Errorf("%w: subscription %d not present", ErrNoTelephonyLine, subscriptionID)
	}

	e.mu.Lock()
	st := e.state(transactionID)
	st.line = *chosen
	st.hasLine = true
	st.explicitLine = true
	e.mu.Unlock()

	if rec.Status == StatusPendingAcceptance {
		if err := e.deps.Store.UpdateStatus(ctx, transactionID, StatusAccepted); err != nil {
			return Record{}, err
		}
		rec.Status = StatusAccepted
	}
	e.logEvent(ctx, "line_chosen", map[string]any{"operator": rec.OperatorID})
	return rec, nil
}

// Decline is always permitted before execution and is terminal; no USSD
// action is ever taken for a declined transaction.
func (e *Engine) Decline(ctx context.Context, transactionID string) (Record, error) {
	release, err := e.deps.Flights.Acquire(ctx, transactionID)
	if err != nil {
		return Record{}, err
	}
	defer release()

	rec, err := e.deps.Store.Get(ctx, transactionID)
	if err != nil {
		return Record{}, err
	}
	if rec.Status == StatusDeclined {
		return rec, nil
	}
	if rec.Status.Terminal() {
		return rec, &TerminalStateError{Status: rec.Status}
	}
	switch rec.Status {
	case StatusPendingAcceptance, StatusAccepted, StatusAuthorizing:
	default:
		return rec, fmt.Errorf("%w: %s → declined", ErrInvalidTransition, rec.Status)
	}

	if err := e.deps.Store.UpdateStatus(ctx, transactionID, StatusDeclined); err != nil {
		return Record{}, err
	}
	rec.Status = StatusDeclined
	e.dropState(transactionID)
	e.logEvent(ctx, "intent_declined", map[string]any{"operator": rec.OperatorID})
	return rec, nil
}

// Authorize runs the PIN challenge and, on success, executes the carrier
// dial. Three consecutive failures cancel the transaction and lock out
// further attempts; a fresh transaction is required to retry.
func (e *Engine) Authorize(ctx context.Context, transactionID, pin string) (Record, error) {
	release, err := e.deps.Flights.Acquire(ctx, transactionID)
	if err != nil {
		return Record{}, err
	}
	defer release()

	rec, err := e.deps.Store.Get(ctx, transactionID)
	if err != nil {
		return Record{}, err
	}

	e.mu.Lock()
	st := e.state(transactionID)
	lockedOut := st.lockedOut
	e.mu.Unlock()

	if lockedOut {
		return rec, ErrAuthorizationLockedOut
	}
	if rec.Status.Terminal() {
		return rec, &TerminalStateError{Status: rec.Status}
	}
	if rec.Status != StatusAccepted && rec.Status != StatusAuthorizing {
		return rec, fmt.Errorf("%w: %s → authorizing", ErrInvalidTransition, rec.Status)
	}

	e.mu.Lock()
	hasLine := st.hasLine
	line := st.line
	explicit := st.explicitLine
	e.mu.Unlock()
	if !hasLine {
		return rec, ErrLineSelectionRequired
	}

	if rec.Status != StatusAuthorizing {
		if err := e.deps.Store.UpdateStatus(ctx, transactionID, StatusAuthorizing); err != nil {
			return Record{}, err
		}
		rec.Status = StatusAuthorizing
	}

	ok, err := e.deps.Credentials.VerifyPIN(ctx, pin)
	if err != nil {
		return rec, err
	}
	if !ok {
		e.mu.Lock()
		st.attempts++
		attempts := st.attempts
		if attempts >= maxPINAttempts {
			st.lockedOut = true
		}
		e.mu.Unlock()

		if attempts >= maxPINAttempts {
			if err := e.deps.Store.UpdateStatus(ctx, transactionID, StatusCancelled); err != nil {
				return Record{}, err
			}
			rec.Status = StatusCancelled
			e.logEvent(ctx, "pin_lockout", map[string]any{"operator": rec.OperatorID})
			return rec, ErrAuthorizationLockedOut
		}
		return rec, fmt.Errorf("%w: %d of %d attempts used", ErrAuthorizationFailed, attempts, maxPINAttempts)
	}

	// The explicit line choice survives into routing preferences only now,
	// once this transaction's authorization completed.
	if explicit {
		if err := e.deps.Bindings.Set(ctx, rec.OperatorID, line.SubscriptionID); err != nil {
			e.deps.Logger.Warn("persist line binding", "operator", rec.OperatorID, "error", err)
		}
	}

	return e.execute(ctx, rec, line, pin)
}

// execute runs the carrier dial for an authorized transaction. The dial
// string exists only for the duration of this call and is never persisted.
func (e *Engine) execute(ctx context.Context, rec Record, line simline.Line, pin string) (Record, error) {
	profile, err := e.deps.Registry.Get(rec.OperatorID)
	if err != nil {
		return rec, err
	}
	intent, err := payload.Decode(rec.RawPayload)
	if err != nil {
		return rec, err
	}

	if err := e.deps.Store.UpdateStatus(ctx, rec.TransactionID, StatusExecuting); err != nil {
		return Record{}, err
	}
	rec.Status = StatusExecuting

	dialString := ussd.Synthesize(profile.DialTemplate, intent.Recipient, intent.Amount.String(), pin)
	outcome, err := e.deps.Executor.Execute(ctx, dialString, line.SubscriptionID)
	if err != nil {
		message := err.Error()
		if errors.Is(err, ussd.ErrDialTimeout) {
			message = "no carrier response within the dial timeout"
		}
		if setErr := e.deps.Store.SetOutcome(ctx, rec.TransactionID, StatusFailed, message); setErr != nil {
			return Record{}, setErr
		}
		rec.Status = StatusFailed
		rec.ResultMessage = message
		e.dropState(rec.TransactionID)
		e.logEvent(ctx, "ussd_dial_error", map[string]any{"operator": rec.OperatorID, "error": message})
		e.notify(ctx, notification.KindTransferOutcome, rec.CounterpartyHint, "The carrier could not complete this transfer")
		return rec, err
	}

	if setErr := e.deps.Store.SetOutcome(ctx, rec.TransactionID, StatusSucceeded, outcome.Reply); setErr != nil {
		return Record{}, setErr
	}
	rec.Status = StatusSucceeded
	rec.ResultMessage = outcome.Reply
	e.dropState(rec.TransactionID)
	e.logEvent(ctx, "ussd_dial_success", map[string]any{"operator": rec.OperatorID})
	e.notify(ctx, notification.KindTransferOutcome, rec.CounterpartyHint, "Transfer executed")
	return rec, nil
}

// BuildAck produces a signed, armored acknowledgment frame for a transaction
// this device executed, ready for the outbound transport.
func (e *Engine) BuildAck(ctx context.Context, transactionID string) (string, error) {
	rec, err := e.deps.Store.Get(ctx, transactionID)
	if err != nil {
		return "", err
	}
	if rec.Status != StatusSucceeded {
		return "", fmt.Errorf("%w: ack requires succeeded, have %s", ErrInvalidTransition, rec.Status)
	}
	ack := payload.Ack{
		TransactionID: transactionID,
		ActorID:       e.deps.SenderID,
		TimestampMs:   time.Now().UnixMilli(),
	}
	ack.Signature = e.deps.Signer.Sign(ack.Canonical())
	return payload.EncodeAck(ack)
}

// Get returns the stored record for a transaction id.
func (e *Engine) Get(ctx context.Context, transactionID string) (Record, error) {
	return e.deps.Store.Get(ctx, transactionID)
}

// History lists stored records newest-first.
func (e *Engine) History(ctx context.Context, limit int) ([]Record, error) {
	return e.deps.Store.List(ctx, limit)
}

// state returns the volatile per-transaction state; callers hold e.mu.
func (e *Engine) state(transactionID string) *txState {
	st, ok := e.states[transactionID]
	if !ok {
		st = &txState{}
		e.states[transactionID] = st
	}
	return st
}

func (e *Engine) dropState(transactionID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.states[transactionID]
	if !ok {
		return
	}
	// Keep lockout markers so a fourth PIN attempt stays rejected.
	if !st.lockedOut {
		delete(e.states, transactionID)
	}
}

func (e *Engine) logEvent(ctx context.Context, eventType string, details map[string]any) {
	if e.deps.Events == nil {
		return
	}
	if err := e.deps.Events.Log(ctx, eventType, details); err != nil {
		e.deps.Logger.Warn("log telemetry event", "event", eventType, "error", err)
	}
}

func (e *Engine) notify(ctx context.Context, kind, destination, body string) {
	if e.deps.Notifier == nil {
		return
	}
	_ = e.deps.Notifier.Send(ctx, notification.Message{Kind: kind, Destination: destination, Body: body})
}
