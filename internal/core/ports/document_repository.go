package ports

import (
	"context"
	"time"

	"docflow/internal/core/domain/model/document"
	"docflow/internal/core/domain/model/kernel"
)

// DocumentRepository persists documents and their contents. Every method takes a
// tenant scope: reads filter by it and writes stamp it. A document of another
// tenant is reported exactly like a missing one (errs.ErrObjectNotFound).
type DocumentRepository interface {
	Add(ctx context.Context, scope kernel.TenantScope, doc *document.Document) error
	Update(ctx context.Context, scope kernel.TenantScope, doc *document.Document) error
	Get(ctx context.Context, scope kernel.TenantScope, id kernel.UUID) (*document.Document, error)

	// GetForUpdate reads the document and holds a row lock until the
	// transaction ends.
	GetForUpdate(ctx context.Context, scope kernel.TenantScope, id kernel.UUID) (*document.Document, error)

	// ListLineage returns every version of a lineage ordered by version number.
	ListLineage(ctx context.Context, scope kernel.TenantScope, rootID kernel.UUID) ([]*document.Document, error)

	// DemoteLineage clears the active flag on every version of the lineage and
	// returns the number of rows it changed.
	DemoteLineage(ctx context.Context, scope kernel.TenantScope, rootID kernel.UUID, now time.Time) (int64, error)

	CountActiveInLineage(ctx context.Context, scope kernel.TenantScope, rootID kernel.UUID) (int64, error)

	// ListExpirable returns quotes awaiting the customer whose validity deadline
	// is strictly before asOf, locked for update.
	ListExpirable(ctx context.Context, scope kernel.TenantScope, asOf time.Time) ([]*document.Document, error)

	AddGroups(ctx context.Context, scope kernel.TenantScope, groups []*document.Group) error
	AddLineItems(ctx context.Context, scope kernel.TenantScope, items []*document.LineItem) error
	GetContents(ctx context.Context, scope kernel.TenantScope, documentID kernel.UUID) (document.Contents, error)
	CountLineItems(ctx context.Context, scope kernel.TenantScope, documentID kernel.UUID) (int64, error)
}
