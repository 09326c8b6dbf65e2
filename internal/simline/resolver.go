package simline

import (
	"context"
	"errors"
)

// ChoiceKind enumerates the resolution outcomes.
type ChoiceKind int

const (
	// Resolved means exactly one line was selected.
	Resolved ChoiceKind = iota
	// AmbiguousChoice means several unbound lines qualify and the user must pick.
	AmbiguousChoice
	// NoLineAvailable means no telephony line can carry this transaction.
	NoLineAvailable
)

// Choice is the outcome of resolving an operator to a telephony line.
type Choice struct {
	Kind       ChoiceKind
	Line       Line
	Candidates []Line
}

// BindingStore persists the per-operator line preference. Bindings are
// written only after an explicit user choice survives authorization.
type BindingStore interface {
	Get(ctx context.Context, operatorID string) (int, bool, error)
	Set(ctx context.Context, operatorID string, subscriptionID int) error
}

// ErrBindingNotFound is returned by store implementations on a miss; Get
// callers normally rely on the bool instead.
var ErrBindingNotFound = errors.New("line binding not found")

// Resolver maps an operator identity to a telephony line.
type Resolver struct {
	bindings BindingStore
}

// NewResolver builds a resolver over the given binding store.
func NewResolver(bindings BindingStore) *Resolver {
	return &Resolver{bindings: bindings}
}

// Resolve picks a line for the operator: a still-present persisted binding
// wins; a single available line auto-resolves without creating a binding;
// several unbound lines surface an ambiguous choice; none is terminal.
func (r *Resolver) Resolve(ctx context.Context, operatorID string, available []Line) (Choice, error) {
	if len(available) == 0 {
		return Choice{Kind: NoLineAvailable}, nil
	}

	if subID, ok, err := r.bindings.Get(ctx, operatorID); err != nil {
		return Choice{}, err
	} else if ok {
		for _, line := range available {
			if line.SubscriptionID == subID {
				return Choice{Kind: Resolved, Line: line}, nil
			}
		}
		// Bound line no longer present: fall through to the unbound rules.
	}

	if len(available) == 1 {
		return Choice{Kind: Resolved, Line: available[0]}, nil
	}

	candidates := make([]Line, len(available))
	copy(candidates, available)
	return Choice{Kind: AmbiguousChoice, Candidates: candidates}, nil
}
