// Package audit describes the lifecycle events the engine records for every
// committed status or version change.
package audit

import (
	"time"

	"docflow/internal/core/domain/model/document"
	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/domain/model/lifecycle"
)

type Action string

const (
	ActionStatusChanged    Action = "status_changed"
	ActionVersionCreated   Action = "version_created"
	ActionVersionActivated Action = "version_activated"
	ActionExpired          Action = "expired"
)

// Entry is one row of a document's lifecycle history.
type Entry struct {
	ID            kernel.UUID
	DocumentID    kernel.UUID
	LineageRootID *kernel.UUID
	Category      lifecycle.Category
	Action        Action
	FromStatus    lifecycle.Status
	ToStatus      lifecycle.Status
	ActorID       kernel.UUID
	Reason        string
	OccurredAt    time.Time
}

// NewEntry stamps an event for doc. from is empty for events that do not change
// status.
func NewEntry(doc *document.Document, action Action, from lifecycle.Status, actor kernel.UUID, reason string, at time.Time) Entry {
	var root *kernel.UUID
	if v := doc.VersionInfo(); v != nil {
		r := v.LineageRootID()
		root = &r
	}
	return Entry{
		ID:            kernel.NewUUID(),
		DocumentID:    doc.ID(),
		LineageRootID: root,
		Category:      doc.Category(),
		Action:        action,
		FromStatus:    from,
		ToStatus:      doc.Status(),
		ActorID:       actor,
		Reason:        reason,
		OccurredAt:    at.UTC(),
	}
}
