// Package queries contains read operations. Handlers read straight from the
// database into read models and never open a transaction.
package queries

import (
	"errors"

	"docflow/internal/core/domain/model/lifecycle"
	"docflow/internal/pkg/guard"
)

var ErrCanTransitionQueryIsNotConstructed = errors.New(
	"CanTransitionQuery must be created via NewCanTransitionQuery constructor",
)

// CanTransitionQuery asks whether from -> to is an edge of the category graph.
// It touches no storage.
type CanTransitionQuery struct {
	category lifecycle.Category
	from     lifecycle.Status
	to       lifecycle.Status

	guard guard.ConstructorGuard
}

// NewCanTransitionQuery rejects an unknown category, and a from or to status
// the category does not declare, with errs.ErrValueIsInvalid.
func NewCanTransitionQuery(category lifecycle.Category, from, to lifecycle.Status) (CanTransitionQuery, error) {
	graph, err := lifecycle.GraphFor(category)
	if err != nil {
		return CanTransitionQuery{}, err
	}
	if err = graph.ValidateStatus(from); err != nil {
		return CanTransitionQuery{}, err
	}
	if err = graph.ValidateStatus(to); err != nil {
		return CanTransitionQuery{}, err
	}
	return CanTransitionQuery{
		category: category,
		from:     from,
		to:       to,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q CanTransitionQuery) Validate() error {
	return q.guard.Validate(ErrCanTransitionQueryIsNotConstructed)
}

type CanTransitionQueryResponse struct {
	Allowed    bool
	Successors []lifecycle.Status
}
