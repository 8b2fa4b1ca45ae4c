package ports

import (
	"context"

	"docflow/internal/core/domain/model/kernel"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Client code begins, commits
// and rolls back explicitly; repositories obtained after Begin share the
// transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// LockLineage serialises writers of one lineage until the transaction ends.
	// Different lineages never contend.
	LockLineage(ctx context.Context, scope kernel.TenantScope, rootID kernel.UUID) error

	DocumentRepository() DocumentRepository
	AuditLog() AuditLog
	TenantDirectory() TenantDirectory
}
