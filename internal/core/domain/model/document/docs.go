// Package document models the business documents whose status the engine
// governs, plus the version metadata and contents (groups and line items) that
// quotes carry.
//
// A Document is created through NewDocument and restored from storage through
// RestoreDocument. Status changes go through TransitionTo, which consults the
// category's lifecycle graph; version activity is changed only by Demote and
// Promote, which the application layer calls from inside a lineage-locked unit
// of work.
package document
