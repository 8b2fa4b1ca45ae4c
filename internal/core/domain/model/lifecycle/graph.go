package lifecycle

import (
	"fmt"

	"docflow/internal/pkg/errs"
)

// Edge is one allowed status change.
type Edge struct {
	From Status
	To   Status
}

// row declares the successors of one status. Rows keep declaration order so
// Successors and Edges are deterministic.
type row struct {
	from Status
	to   []Status
}

// Graph is the immutable adjacency table of one category.
type Graph struct {
	category  Category
	statuses  []Status
	adjacency map[Status][]Status
	lookup    map[Status]map[Status]struct{}
}

// newGraph builds a graph from declared rows. A row or target naming a status
// outside the declared set is a programming error and panics at init.
func newGraph(category Category, statuses []Status, rows []row) *Graph {
	g := &Graph{
		category:  category,
		statuses:  statuses,
		adjacency: make(map[Status][]Status, len(statuses)),
		lookup:    make(map[Status]map[Status]struct{}, len(statuses)),
	}
	for _, s := range statuses {
		if _, dup := g.lookup[s]; dup {
			panic(fmt.Sprintf("lifecycle: %s status %q declared twice", category, s))
		}
		g.lookup[s] = map[Status]struct{}{}
	}
	for _, r := range rows {
		if _, ok := g.lookup[r.from]; !ok {
			panic(fmt.Sprintf("lifecycle: %s row for undeclared status %q", category, r.from))
		}
		for _, to := range r.to {
			if _, ok := g.lookup[to]; !ok {
				panic(fmt.Sprintf("lifecycle: %s edge %q -> undeclared %q", category, r.from, to))
			}
			g.lookup[r.from][to] = struct{}{}
			g.adjacency[r.from] = append(g.adjacency[r.from], to)
		}
	}
	return g
}

func (g *Graph) Category() Category {
	return g.category
}

// Statuses returns the declared statuses of the category.
func (g *Graph) Statuses() []Status {
	out := make([]Status, len(g.statuses))
	copy(out, g.statuses)
	return out
}

// Has reports whether s is declared for the graph's category.
func (g *Graph) Has(s Status) bool {
	_, ok := g.lookup[s]
	return ok
}

// CanTransition reports whether from -> to is an edge. Unknown statuses yield false.
func (g *Graph) CanTransition(from, to Status) bool {
	targets, ok := g.lookup[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// Validate is CanTransition with typed failures.
func (g *Graph) Validate(from, to Status) error {
	if err := g.ValidateStatus(from); err != nil {
		return err
	}
	if err := g.ValidateStatus(to); err != nil {
		return err
	}
	if !g.CanTransition(from, to) {
		return errs.NewTransitionNotAllowedError(string(g.category), string(from), string(to))
	}
	return nil
}

// ValidateStatus returns errs.ErrValueIsInvalid for a status the category does
// not declare. Transition checks call it for both ends before looking at edges.
func (g *Graph) ValidateStatus(s Status) error {
	if !g.Has(s) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%q is not a %s status", string(s), g.category),
		)
	}
	return nil
}

// Successors returns the legal targets of from in declaration order.
func (g *Graph) Successors(from Status) []Status {
	next := g.adjacency[from]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// IsTerminal reports whether s is a known status with no outgoing edges.
func (g *Graph) IsTerminal(s Status) bool {
	return g.Has(s) && len(g.adjacency[s]) == 0
}

// Edges enumerates the full table.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, from := range g.statuses {
		for _, to := range g.adjacency[from] {
			out = append(out, Edge{From: from, To: to})
		}
	}
	return out
}

// Path returns the shortest sequence of statuses leading from -> to, both ends
// included. ok is false when to is unreachable.
func (g *Graph) Path(from, to Status) (path []Status, ok bool) {
	if !g.Has(from) || !g.Has(to) {
		return nil, false
	}
	if from == to {
		return []Status{from}, true
	}

	prev := map[Status]Status{from: from}
	queue := []Status{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range g.adjacency[current] {
			if _, seen := prev[next]; seen {
				continue
			}
			prev[next] = current
			if next == to {
				return unwind(prev, from, to), true
			}
			queue = append(queue, next)
		}
	}
	return nil, false
}

func unwind(prev map[Status]Status, from, to Status) []Status {
	var reversed []Status
	for s := to; s != from; s = prev[s] {
		reversed = append(reversed, s)
	}
	reversed = append(reversed, from)

	path := make([]Status, len(reversed))
	for i, s := range reversed {
		path[len(reversed)-1-i] = s
	}
	return path
}
