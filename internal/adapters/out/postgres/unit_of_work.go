// Package postgres provides the GORM-based Unit of Work used by every command.
//
// A unit of work owns at most one transaction. Repositories obtained from it
// after Begin run inside that transaction; before Begin they use the plain
// connection, which is what read-only queries do.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.LockLineage(ctx, scope, rootID); err != nil {
//	    return err
//	}
//	// ... repository calls
//	return uow.Commit(ctx)
//
// Transactions run at READ COMMITTED. Writers of one lineage are serialised with
// a transaction-scoped advisory lock keyed by tenant and lineage root, so two
// lineages never contend and the lock is released by Commit or Rollback.
package postgres

import (
	"context"
	"database/sql"

	"docflow/internal/adapters/out/postgres/auditrepo"
	"docflow/internal/adapters/out/postgres/documentrepo"
	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/ports"

	"gorm.io/gorm"
)

var (
	_ ports.UnitOfWorkFactory = (*GormUnitOfWorkFactory)(nil)
	_ ports.UnitOfWork        = (*GormUnitOfWork)(nil)
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory returns a factory over the given connection pool.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work. Instances must not be shared between
// goroutines.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork wraps one GORM transaction. Begin is idempotent; Commit and
// Rollback end the transaction and return gorm.ErrInvalidTransaction when none
// is open.
//
//	uow := postgres.NewGormUnitOfWorkFactory(db).Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//	doc, err := uow.DocumentRepository().GetForUpdate(ctx, scope, id)
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling Begin twice keeps the first transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback returns gorm.ErrInvalidTransaction when no transaction is open, so the
// deferred rollback after a successful Commit is a no-op.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// LockLineage blocks until no other transaction holds the lineage.
func (uow *GormUnitOfWork) LockLineage(ctx context.Context, scope kernel.TenantScope, rootID kernel.UUID) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if err := scope.Validate(); err != nil {
		return err
	}
	if err := rootID.Validate(); err != nil {
		return err
	}

	key := scope.TenantID().String() + ":" + rootID.String()
	return uow.tx.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", key).Error
}

func (uow *GormUnitOfWork) DocumentRepository() ports.DocumentRepository {
	return documentrepo.NewGormDocumentRepository(uow.conn())
}

func (uow *GormUnitOfWork) AuditLog() ports.AuditLog {
	return auditrepo.NewGormAuditLog(uow.conn())
}

func (uow *GormUnitOfWork) TenantDirectory() ports.TenantDirectory {
	return documentrepo.NewGormDocumentRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
