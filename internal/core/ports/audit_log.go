package ports

import (
	"context"
	"time"

	"docflow/internal/core/domain/model/audit"
	"docflow/internal/core/domain/model/kernel"
)

// AuditLog records lifecycle events inside the transaction of the change they
// describe.
type AuditLog interface {
	Record(ctx context.Context, scope kernel.TenantScope, entry audit.Entry) error
	History(ctx context.Context, scope kernel.TenantScope, documentID kernel.UUID) ([]audit.Entry, error)
}

// TenantDirectory lists tenants for engine-initiated work that spans all of
// them. It returns identifiers only; all further reads go through a scope.
type TenantDirectory interface {
	ListTenantsWithExpirable(ctx context.Context, asOf time.Time) ([]kernel.UUID, error)
}
