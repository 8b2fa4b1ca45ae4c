package document

import (
	"strings"

	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/pkg/errs"
)

// Group is a named section of a document (a room, a phase) that line items may
// belong to.
type Group struct {
	id         kernel.UUID
	documentID kernel.UUID
	tenantID   kernel.UUID
	name       string
	sortOrder  int
}

// NewGroup creates a named section of a document. The name is required.
func NewGroup(id, documentID, tenantID kernel.UUID, name string, sortOrder int) (*Group, error) {
	g := &Group{
		id:         id,
		documentID: documentID,
		tenantID:   tenantID,
		name:       strings.TrimSpace(name),
		sortOrder:  sortOrder,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Group) ID() kernel.UUID         { return g.id }
func (g *Group) DocumentID() kernel.UUID { return g.documentID }
func (g *Group) TenantID() kernel.UUID   { return g.tenantID }
func (g *Group) Name() string            { return g.name }
func (g *Group) SortOrder() int          { return g.sortOrder }

// CopyTo returns a copy of g owned by another document.
func (g *Group) CopyTo(newID, documentID kernel.UUID) (*Group, error) {
	return NewGroup(newID, documentID, g.tenantID, g.name, g.sortOrder)
}

func (g *Group) Validate() error {
	if err := g.id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("group.id", err)
	}
	if err := g.documentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("group.documentId", err)
	}
	if err := g.tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("group.tenantId", err)
	}
	if g.name == "" {
		return errs.NewValueIsRequiredError("group.name")
	}
	return nil
}
