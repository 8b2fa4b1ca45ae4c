package document

import (
	"fmt"

	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/pkg/errs"
)

// Contents are the groups and line items owned by one document.
type Contents struct {
	Groups []*Group
	Items  []*LineItem
}

// RootItems returns items without a parent, in input order.
func (c Contents) RootItems() []*LineItem {
	out := make([]*LineItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.IsRoot() {
			out = append(out, item)
		}
	}
	return out
}

// ChildItems returns items with a parent, in input order.
func (c Contents) ChildItems() []*LineItem {
	out := make([]*LineItem, 0, len(c.Items))
	for _, item := range c.Items {
		if !item.IsRoot() {
			out = append(out, item)
		}
	}
	return out
}

// ValidateOwnership checks that every row belongs to documentID and that every
// group and parent reference resolves inside the same contents.
func (c Contents) ValidateOwnership(documentID kernel.UUID) error {
	groups := make(map[kernel.UUID]struct{}, len(c.Groups))
	for _, g := range c.Groups {
		if !g.DocumentID().IsEqual(documentID) {
			return errs.NewValueIsInvalidErrorWithCause("group", fmt.Errorf("group %s belongs to another document", g.ID()))
		}
		groups[g.ID()] = struct{}{}
	}

	items := make(map[kernel.UUID]struct{}, len(c.Items))
	for _, item := range c.Items {
		items[item.ID()] = struct{}{}
	}

	for _, item := range c.Items {
		if !item.DocumentID().IsEqual(documentID) {
			return errs.NewValueIsInvalidErrorWithCause("lineItem", fmt.Errorf("item %s belongs to another document", item.ID()))
		}
		if gid := item.GroupID(); gid != nil {
			if _, ok := groups[*gid]; !ok {
				return errs.NewValueIsInvalidErrorWithCause("lineItem.groupId", fmt.Errorf("item %s references unknown group %s", item.ID(), gid))
			}
		}
		if pid := item.ParentItemID(); pid != nil {
			if _, ok := items[*pid]; !ok {
				return errs.NewValueIsInvalidErrorWithCause("lineItem.parentItemId", fmt.Errorf("item %s references unknown parent %s", item.ID(), pid))
			}
		}
	}
	return nil
}
