package commands

import (
	"errors"
	"strings"

	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/domain/model/lifecycle"
	"docflow/internal/pkg/errs"
	"docflow/internal/pkg/guard"
)

var ErrApplyTransitionCommandIsNotConstructed = errors.New(
	"ApplyTransitionCommand must be created via NewApplyTransitionCommand constructor",
)

// ApplyTransitionCommand asks to move one document to a new status. The reason
// is free text stored with the audit entry.
type ApplyTransitionCommand struct { //nolint:recvcheck //using for validation
	scope      kernel.TenantScope
	documentID kernel.UUID
	to         lifecycle.Status
	reason     string

	guard guard.ConstructorGuard
}

func NewApplyTransitionCommand(
	scope kernel.TenantScope,
	documentID kernel.UUID,
	to lifecycle.Status,
	reason string,
) (ApplyTransitionCommand, error) {
	cmd := ApplyTransitionCommand{
		reason: strings.TrimSpace(reason),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setScope(scope),
		cmd.setDocumentID(documentID),
		cmd.setTo(to),
	); err != nil {
		return ApplyTransitionCommand{}, err
	}
	return cmd, nil
}

func (c ApplyTransitionCommand) Validate() error {
	return c.guard.Validate(ErrApplyTransitionCommandIsNotConstructed)
}

func (c ApplyTransitionCommand) Scope() kernel.TenantScope { return c.scope }
func (c ApplyTransitionCommand) DocumentID() kernel.UUID   { return c.documentID }
func (c ApplyTransitionCommand) To() lifecycle.Status      { return c.to }
func (c ApplyTransitionCommand) Reason() string            { return c.reason }

func (c *ApplyTransitionCommand) setScope(scope kernel.TenantScope) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	c.scope = scope
	return nil
}

func (c *ApplyTransitionCommand) setDocumentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("documentId", err)
	}
	c.documentID = id
	return nil
}

func (c *ApplyTransitionCommand) setTo(to lifecycle.Status) error {
	if strings.TrimSpace(string(to)) == "" {
		return errs.NewValueIsRequiredError("to")
	}
	c.to = to
	return nil
}
