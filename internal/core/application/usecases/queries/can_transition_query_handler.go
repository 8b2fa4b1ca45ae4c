package queries

import (
	"context"

	"docflow/internal/core/domain/model/lifecycle"
)

type CanTransitionQueryHandler struct{}

func NewCanTransitionQueryHandler() CanTransitionQueryHandler {
	return CanTransitionQueryHandler{}
}

// Handle answers from the static tables. The query constructor has already
// rejected statuses outside the category.
func (h CanTransitionQueryHandler) Handle(_ context.Context, query CanTransitionQuery) (CanTransitionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CanTransitionQueryResponse{}, err
	}

	graph, err := lifecycle.GraphFor(query.category)
	if err != nil {
		return CanTransitionQueryResponse{}, err
	}
	return CanTransitionQueryResponse{
		Allowed:    graph.CanTransition(query.from, query.to),
		Successors: graph.Successors(query.from),
	}, nil
}
