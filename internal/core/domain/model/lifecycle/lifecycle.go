package lifecycle

// GraphFor returns the status graph of a category.
func GraphFor(c Category) (*Graph, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return graphs[c], nil
}

// CanTransition answers from the static tables only. Unknown categories and
// statuses are never allowed.
func CanTransition(c Category, from, to Status) bool {
	g, ok := graphs[c]
	if !ok {
		return false
	}
	return g.CanTransition(from, to)
}

// Validate returns nil for an allowed edge, a validation error for an unknown
// category or status, and *errs.TransitionNotAllowedError otherwise.
func Validate(c Category, from, to Status) error {
	g, err := GraphFor(c)
	if err != nil {
		return err
	}
	return g.Validate(from, to)
}

// InitialStatus is the status new documents of the category start in.
func InitialStatus(c Category) Status {
	switch c {
	case CategoryOrder:
		return OrderPendingAssignment
	case CategoryLead:
		return LeadPendingAssignment
	case CategoryQuote:
		return QuoteDraft
	}
	return ""
}
