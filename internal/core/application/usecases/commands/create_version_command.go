package commands

import (
	"errors"

	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/pkg/errs"
	"docflow/internal/pkg/guard"
)

var ErrCreateVersionCommandIsNotConstructed = errors.New(
	"CreateVersionCommand must be created via NewCreateVersionCommand constructor",
)

// CreateVersionCommand forks the source quote into a new active draft version.
type CreateVersionCommand struct { //nolint:recvcheck //using for validation
	scope    kernel.TenantScope
	sourceID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateVersionCommand(scope kernel.TenantScope, sourceID kernel.UUID) (CreateVersionCommand, error) {
	if err := scope.Validate(); err != nil {
		return CreateVersionCommand{}, err
	}
	if err := sourceID.Validate(); err != nil {
		return CreateVersionCommand{}, errs.NewValueIsRequiredErrorWithCause("sourceDocumentId", err)
	}

	return CreateVersionCommand{
		scope:    scope,
		sourceID: sourceID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateVersionCommand) Validate() error {
	return c.guard.Validate(ErrCreateVersionCommandIsNotConstructed)
}

func (c CreateVersionCommand) Scope() kernel.TenantScope {
	return c.scope
}

func (c CreateVersionCommand) SourceID() kernel.UUID {
	return c.sourceID
}
