package queries

import (
	"errors"
	"time"

	"docflow/internal/core/domain/model/audit"
	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/domain/model/lifecycle"
	"docflow/internal/pkg/errs"
	"docflow/internal/pkg/guard"
)

var ErrGetDocumentHistoryQueryIsNotConstructed = errors.New(
	"GetDocumentHistoryQuery must be created via NewGetDocumentHistoryQuery constructor",
)

// GetDocumentHistoryQuery reads the audit trail of one document.
type GetDocumentHistoryQuery struct {
	scope      kernel.TenantScope
	documentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDocumentHistoryQuery(scope kernel.TenantScope, documentID kernel.UUID) (GetDocumentHistoryQuery, error) {
	if err := scope.Validate(); err != nil {
		return GetDocumentHistoryQuery{}, err
	}
	if err := documentID.Validate(); err != nil {
		return GetDocumentHistoryQuery{}, errs.NewValueIsRequiredErrorWithCause("documentId", err)
	}
	return GetDocumentHistoryQuery{
		scope:      scope,
		documentID: documentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetDocumentHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetDocumentHistoryQueryIsNotConstructed)
}

type GetDocumentHistoryQueryResponse struct {
	Action     audit.Action
	FromStatus lifecycle.Status
	ToStatus   lifecycle.Status
	ActorID    kernel.UUID
	Reason     string
	OccurredAt time.Time
}
