package fsm

import (
	"context"
	"errors"
	"fmt"

	loopfsm "github.com/looplab/fsm"

	"github.com/neomorfeo/dealerops/internal/domain"
)

// Compile-time check: Validator implements domain.TransitionValidator.
var _ domain.TransitionValidator = (*Validator)(nil)

// buildEvents converts a transition table into looplab/fsm EventDesc format.
// Transitions sharing an event and destination collapse into one EventDesc
// with several sources (e.g. EventSell from Draft, For Sale and In
// Refurbishment all go to Sold).
func buildEvents(transitions []domain.Transition) []loopfsm.EventDesc {
	type key struct {
		event string
		dst   string
	}
	grouped := make(map[key][]string)
	order := make([]key, 0)

	for _, t := range transitions {
		k := key{event: string(t.Event), dst: t.Dst}
		if _, exists := grouped[k]; !exists {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], t.Src)
	}

	out := make([]loopfsm.EventDesc, 0, len(order))
	for _, k := range order {
		out = append(out, loopfsm.EventDesc{
			Name: k.event,
			Src:  grouped[k],
			Dst:  k.dst,
		})
	}
	return out
}

// Validator implements domain.TransitionValidator using looplab/fsm.
// looplab/fsm is stateful, so each Apply call builds a short-lived FSM
// starting at the entity's current state.
type Validator struct {
	machines map[domain.Machine][]loopfsm.EventDesc
}

// New creates a validator covering every machine in domain.Lifecycles.
func New() *Validator {
	return NewWithTables(domain.Lifecycles)
}

// NewWithTables creates a validator for the given transition tables.
func NewWithTables(tables map[domain.Machine][]domain.Transition) *Validator {
	machines := make(map[domain.Machine][]loopfsm.EventDesc, len(tables))
	for m, transitions := range tables {
		machines[m] = buildEvents(transitions)
	}
	return &Validator{machines: machines}
}

// Apply checks if event is valid from current on the named machine and
// returns the destination state. Returns a *domain.TransitionError if the
// transition is not allowed.
func (v *Validator) Apply(ctx context.Context, machine domain.Machine, current string, event domain.Event) (string, error) {
	events, ok := v.machines[machine]
	if !ok {
		return "", fmt.Errorf("unknown state machine %q", machine)
	}

	f := loopfsm.NewFSM(current, events, nil)

	if err := f.Event(ctx, string(event)); err != nil {
		var invalidEvent loopfsm.InvalidEventError
		var unknownEvent loopfsm.UnknownEventError
		var noTransition loopfsm.NoTransitionError
		if errors.As(err, &invalidEvent) || errors.As(err, &unknownEvent) || errors.As(err, &noTransition) {
			return "", &domain.TransitionError{
				Machine: machine,
				Event:   event,
				Current: current,
			}
		}
		return "", err
	}

	return f.Current(), nil
}
