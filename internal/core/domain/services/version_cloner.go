package services

import (
	"fmt"
	"time"

	"docflow/internal/core/domain/model/document"
	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/pkg/errs"
)

// CloneResult is the new version and its contents, ready to be inserted in
// order: Document, Groups, RootItems, ChildItems. ChildItems lists every parent
// before its children.
type CloneResult struct {
	Document   *document.Document
	Groups     []*document.Group
	RootItems  []*document.LineItem
	ChildItems []*document.LineItem
	GroupIDs   map[kernel.UUID]kernel.UUID
	ItemIDs    map[kernel.UUID]kernel.UUID
}

// VersionCloner forks a quote version with a two-phase copy. Phase one copies
// the independent rows (groups, root items) and records old -> new identifiers;
// phase two copies child items using only those maps.
type VersionCloner struct {
	newID func() kernel.UUID
}

// NewVersionCloner uses newID to mint identifiers; nil means kernel.NewUUID.
func NewVersionCloner(newID func() kernel.UUID) VersionCloner {
	if newID == nil {
		newID = kernel.NewUUID
	}
	return VersionCloner{newID: newID}
}

func (c VersionCloner) Clone(
	source *document.Document,
	contents document.Contents,
	actor kernel.UUID,
	now time.Time,
) (CloneResult, error) {
	root, err := source.LineageRootID()
	if err != nil {
		return CloneResult{}, err
	}
	if err = contents.ValidateOwnership(source.ID()); err != nil {
		return CloneResult{}, errs.NewInvariantViolationErrorWithCause(root.String(), "source contents are inconsistent", err)
	}

	forked, err := source.Fork(c.newID(), actor, now)
	if err != nil {
		return CloneResult{}, err
	}

	result := CloneResult{
		Document: forked,
		GroupIDs: make(map[kernel.UUID]kernel.UUID, len(contents.Groups)),
		ItemIDs:  make(map[kernel.UUID]kernel.UUID, len(contents.Items)),
	}

	// phase one
	for _, g := range contents.Groups {
		cloned, cloneErr := g.CopyTo(c.newID(), forked.ID())
		if cloneErr != nil {
			return CloneResult{}, cloneErr
		}
		result.GroupIDs[g.ID()] = cloned.ID()
		result.Groups = append(result.Groups, cloned)
	}
	for _, item := range contents.RootItems() {
		cloned, cloneErr := c.copyItem(item, forked.ID(), result, nil)
		if cloneErr != nil {
			return CloneResult{}, cloneErr
		}
		result.RootItems = append(result.RootItems, cloned)
	}

	// phase two: repeat until every child has been placed under an already
	// cloned parent; a pass without progress means a cycle.
	pending := contents.ChildItems()
	for len(pending) > 0 {
		var deferred []*document.LineItem
		for _, item := range pending {
			newParent, ok := result.ItemIDs[*item.ParentItemID()]
			if !ok {
				deferred = append(deferred, item)
				continue
			}
			cloned, cloneErr := c.copyItem(item, forked.ID(), result, &newParent)
			if cloneErr != nil {
				return CloneResult{}, cloneErr
			}
			result.ChildItems = append(result.ChildItems, cloned)
		}
		if len(deferred) == len(pending) {
			return CloneResult{}, errs.NewInvariantViolationError(
				root.String(),
				fmt.Sprintf("%d line items form a parent cycle", len(deferred)),
			)
		}
		pending = deferred
	}

	return result, nil
}

func (c VersionCloner) copyItem(
	item *document.LineItem,
	documentID kernel.UUID,
	result CloneResult,
	newParent *kernel.UUID,
) (*document.LineItem, error) {
	var newGroup *kernel.UUID
	if gid := item.GroupID(); gid != nil {
		mapped, ok := result.GroupIDs[*gid]
		if !ok {
			return nil, errs.NewInvariantViolationError(documentID.String(), fmt.Sprintf("group %s was not cloned", gid))
		}
		newGroup = &mapped
	}

	cloned, err := item.CopyTo(c.newID(), documentID, newGroup, newParent)
	if err != nil {
		return nil, err
	}
	result.ItemIDs[item.ID()] = cloned.ID()
	return cloned, nil
}
