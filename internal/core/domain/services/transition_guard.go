package services

import (
	"context"
	"fmt"
	"time"

	"docflow/internal/core/domain/model/document"
	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/domain/model/lifecycle"
	"docflow/internal/pkg/errs"
)

// TransitionValidator decides whether from -> to is an edge of the category graph.
// Implementations must fail closed.
type TransitionValidator interface {
	Validate(ctx context.Context, category lifecycle.Category, from, to lifecycle.Status) error
}

// GraphValidator validates against the static lifecycle tables.
type GraphValidator struct{}

func (GraphValidator) Validate(_ context.Context, category lifecycle.Category, from, to lifecycle.Status) error {
	return lifecycle.Validate(category, from, to)
}

// TransitionFacts are the facts about a document, beyond its own fields, that
// preconditions may inspect.
type TransitionFacts struct {
	LineItemCount int64
}

// Precondition vetoes an otherwise legal transition.
type Precondition func(doc *document.Document, facts TransitionFacts) error

type preconditionKey struct {
	category lifecycle.Category
	to       lifecycle.Status
}

// TransitionGuard validates and applies status changes. Every status mutation
// in the engine, user-driven or scheduled, goes through Apply.
type TransitionGuard struct {
	validator     TransitionValidator
	preconditions map[preconditionKey][]Precondition
}

// NewTransitionGuard builds a guard with the built-in preconditions registered.
func NewTransitionGuard(validator TransitionValidator) *TransitionGuard {
	if validator == nil {
		validator = GraphValidator{}
	}
	g := &TransitionGuard{
		validator:     validator,
		preconditions: make(map[preconditionKey][]Precondition),
	}
	g.Require(lifecycle.CategoryQuote, lifecycle.QuotePendingApproval, requireLineItems)
	return g
}

// Require registers an additional precondition for entering status to.
func (g *TransitionGuard) Require(category lifecycle.Category, to lifecycle.Status, p Precondition) {
	k := preconditionKey{category: category, to: to}
	g.preconditions[k] = append(g.preconditions[k], p)
}

// Check runs the graph validation and then the preconditions for the target status.
func (g *TransitionGuard) Check(ctx context.Context, doc *document.Document, to lifecycle.Status, facts TransitionFacts) error {
	if err := g.validator.Validate(ctx, doc.Category(), doc.Status(), to); err != nil {
		return err
	}
	for _, p := range g.preconditions[preconditionKey{category: doc.Category(), to: to}] {
		if err := p(doc, facts); err != nil {
			return err
		}
	}
	return nil
}

// Apply checks and then mutates doc, returning the status it left. doc is
// unchanged on error.
func (g *TransitionGuard) Apply(
	ctx context.Context,
	doc *document.Document,
	to lifecycle.Status,
	facts TransitionFacts,
	actor kernel.UUID,
	now time.Time,
) (lifecycle.Status, error) {
	if err := g.Check(ctx, doc, to, facts); err != nil {
		return "", err
	}
	return doc.TransitionTo(to, actor, now)
}

func requireLineItems(doc *document.Document, facts TransitionFacts) error {
	if facts.LineItemCount <= 0 {
		return errs.NewValueIsRequiredErrorWithCause(
			"lineItems",
			fmt.Errorf("quote %s has no line items to submit", doc.ID()),
		)
	}
	return nil
}
