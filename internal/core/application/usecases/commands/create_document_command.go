package commands

import (
	"errors"
	"time"

	"docflow/internal/core/domain/model/document"
	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/domain/model/lifecycle"
	"docflow/internal/pkg/errs"
	"docflow/internal/pkg/guard"
)

var ErrCreateDocumentCommandIsNotConstructed = errors.New(
	"CreateDocumentCommand must be created via NewCreateDocumentCommand constructor",
)

// LineItemInput describes one line item of a new document. Items naming the
// same Group land in one group; an empty Group leaves the item ungrouped.
// Children hang under the item, to any depth.
type LineItemInput struct {
	Group    string
	Data     document.LineItemData
	Children []LineItemInput
}

// CreateDocumentCommand registers a new order, lead or quote in its initial
// status. Quotes become the root version of a new lineage.
type CreateDocumentCommand struct { //nolint:recvcheck //using for validation
	scope      kernel.TenantScope
	documentID kernel.UUID
	category   lifecycle.Category
	number     string
	title      string
	summary    document.Summary
	validUntil *time.Time
	items      []LineItemInput

	guard guard.ConstructorGuard
}

func NewCreateDocumentCommand(
	scope kernel.TenantScope,
	documentID kernel.UUID,
	category lifecycle.Category,
	number, title string,
	summary document.Summary,
	validUntil *time.Time,
	items []LineItemInput,
) (CreateDocumentCommand, error) {
	cmd := CreateDocumentCommand{
		number:     number,
		title:      title,
		summary:    summary,
		validUntil: validUntil,
		items:      items,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setScope(scope),
		cmd.setDocumentID(documentID),
		cmd.setCategory(category),
	); err != nil {
		return CreateDocumentCommand{}, err
	}
	return cmd, nil
}

func (c CreateDocumentCommand) Validate() error {
	return c.guard.Validate(ErrCreateDocumentCommandIsNotConstructed)
}

func (c CreateDocumentCommand) Scope() kernel.TenantScope    { return c.scope }
func (c CreateDocumentCommand) DocumentID() kernel.UUID      { return c.documentID }
func (c CreateDocumentCommand) Category() lifecycle.Category { return c.category }
func (c CreateDocumentCommand) Number() string               { return c.number }
func (c CreateDocumentCommand) Title() string                { return c.title }
func (c CreateDocumentCommand) Summary() document.Summary    { return c.summary }
func (c CreateDocumentCommand) ValidUntil() *time.Time       { return c.validUntil }
func (c CreateDocumentCommand) Items() []LineItemInput       { return c.items }

func (c *CreateDocumentCommand) setScope(scope kernel.TenantScope) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	c.scope = scope
	return nil
}

func (c *CreateDocumentCommand) setDocumentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("documentId", err)
	}
	c.documentID = id
	return nil
}

func (c *CreateDocumentCommand) setCategory(category lifecycle.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	c.category = category
	return nil
}
