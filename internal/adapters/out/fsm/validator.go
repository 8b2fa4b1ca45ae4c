// Package fsm validates status changes with looplab/fsm machines built from the
// lifecycle tables.
package fsm

import (
	"context"
	"errors"

	"docflow/internal/core/domain/model/lifecycle"
	"docflow/internal/core/domain/services"
	"docflow/internal/pkg/errs"

	loopfsm "github.com/looplab/fsm"
)

var _ services.TransitionValidator = (*Validator)(nil)

// eventName is the event that moves a document into status to. Every edge
// into the same status shares one event.
func eventName(to lifecycle.Status) string {
	return "to_" + string(to)
}

// buildEvents groups the edges of a graph by destination, one EventDesc per
// target status with all its sources.
func buildEvents(g *lifecycle.Graph) []loopfsm.EventDesc {
	grouped := make(map[lifecycle.Status][]string)
	order := make([]lifecycle.Status, 0)

	for _, e := range g.Edges() {
		if _, exists := grouped[e.To]; !exists {
			order = append(order, e.To)
		}
		grouped[e.To] = append(grouped[e.To], string(e.From))
	}

	out := make([]loopfsm.EventDesc, 0, len(order))
	for _, to := range order {
		out = append(out, loopfsm.EventDesc{
			Name: eventName(to),
			Src:  grouped[to],
			Dst:  string(to),
		})
	}
	return out
}

// Validator implements services.TransitionValidator. looplab/fsm machines are
// stateful, so a short-lived machine is created per call, positioned at the
// document's current status.
type Validator struct {
	events map[lifecycle.Category][]loopfsm.EventDesc
}

func New() *Validator {
	v := &Validator{events: make(map[lifecycle.Category][]loopfsm.EventDesc)}
	for _, c := range lifecycle.Categories() {
		g, err := lifecycle.GraphFor(c)
		if err != nil {
			panic(err)
		}
		v.events[c] = buildEvents(g)
	}
	return v
}

func (v *Validator) Validate(ctx context.Context, category lifecycle.Category, from, to lifecycle.Status) error {
	g, err := lifecycle.GraphFor(category)
	if err != nil {
		return err
	}
	if err = g.ValidateStatus(from); err != nil {
		return err
	}
	if err = g.ValidateStatus(to); err != nil {
		return err
	}

	machine := loopfsm.NewFSM(string(from), v.events[category], nil)
	if err = machine.Event(ctx, eventName(to)); err != nil {
		var invalidEvent loopfsm.InvalidEventError
		var unknownEvent loopfsm.UnknownEventError
		var noTransition loopfsm.NoTransitionError
		if errors.As(err, &invalidEvent) || errors.As(err, &unknownEvent) || errors.As(err, &noTransition) {
			return errs.NewTransitionNotAllowedError(string(category), string(from), string(to))
		}
		return err
	}
	if machine.Current() != string(to) {
		return errs.NewTransitionNotAllowedError(string(category), string(from), string(to))
	}
	return nil
}
