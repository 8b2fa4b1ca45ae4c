// Package lifecycle holds the static status graphs of every document category.
//
// Each category (order, lead, quote) owns a closed set of statuses and an
// adjacency table listing, for every status, the statuses it may move to. The
// tables are built once at package initialisation and are read-only afterwards;
// they are configuration, not per-tenant data.
//
// All status mutations in the engine are validated here:
//
//	if err := lifecycle.Validate(lifecycle.CategoryOrder, from, to); err != nil {
//	    // *errs.TransitionNotAllowedError or *errs.ValueIsInvalidError
//	}
//
// Unknown categories and statuses fail closed with a validation error; a missing
// edge fails with a TransitionNotAllowedError carrying the attempted pair.
package lifecycle
