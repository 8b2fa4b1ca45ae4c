package queries

import (
	"errors"
	"time"

	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/domain/model/lifecycle"
	"docflow/internal/pkg/errs"
	"docflow/internal/pkg/guard"
)

var ErrGetLineageQueryIsNotConstructed = errors.New(
	"GetLineageQuery must be created via NewGetLineageQuery constructor",
)

// GetLineageQuery lists every version of the lineage the given document
// belongs to.
type GetLineageQuery struct {
	scope      kernel.TenantScope
	documentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetLineageQuery(scope kernel.TenantScope, documentID kernel.UUID) (GetLineageQuery, error) {
	if err := scope.Validate(); err != nil {
		return GetLineageQuery{}, err
	}
	if err := documentID.Validate(); err != nil {
		return GetLineageQuery{}, errs.NewValueIsRequiredErrorWithCause("documentId", err)
	}
	return GetLineageQuery{
		scope:      scope,
		documentID: documentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetLineageQuery) Validate() error {
	return q.guard.Validate(ErrGetLineageQueryIsNotConstructed)
}

// GetLineageQueryResponse is one version of a lineage.
type GetLineageQueryResponse struct {
	ID              kernel.UUID
	Version         int
	ParentVersionID *kernel.UUID
	IsActive        bool
	Status          lifecycle.Status
	FinalAmount     string
	UpdatedAt       time.Time
}
