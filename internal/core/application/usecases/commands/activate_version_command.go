package commands

import (
	"errors"

	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/pkg/errs"
	"docflow/internal/pkg/guard"
)

var ErrActivateVersionCommandIsNotConstructed = errors.New(
	"ActivateVersionCommand must be created via NewActivateVersionCommand constructor",
)

// ActivateVersionCommand makes one quote version the active one of its lineage.
type ActivateVersionCommand struct { //nolint:recvcheck //using for validation
	scope      kernel.TenantScope
	documentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewActivateVersionCommand(scope kernel.TenantScope, documentID kernel.UUID) (ActivateVersionCommand, error) {
	if err := scope.Validate(); err != nil {
		return ActivateVersionCommand{}, err
	}
	if err := documentID.Validate(); err != nil {
		return ActivateVersionCommand{}, errs.NewValueIsRequiredErrorWithCause("documentId", err)
	}

	return ActivateVersionCommand{
		scope:      scope,
		documentID: documentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ActivateVersionCommand) Validate() error {
	return c.guard.Validate(ErrActivateVersionCommandIsNotConstructed)
}

func (c ActivateVersionCommand) Scope() kernel.TenantScope {
	return c.scope
}

func (c ActivateVersionCommand) DocumentID() kernel.UUID {
	return c.documentID
}
