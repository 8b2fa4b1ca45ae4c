// Package commands contains the operations that change document state. Every
// handler runs inside one unit of work: either all of its writes and audit
// entries commit, or none do.
package commands

import (
	"context"
	"errors"
	"log/slog"

	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/domain/model/lifecycle"
	"docflow/internal/core/ports"
	"docflow/internal/pkg/errs"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// LineageLocker serialises writers of one version lineage.
	LineageLocker interface {
		LockLineage(ctx context.Context, scope kernel.TenantScope, rootID kernel.UUID) error
	}

	DocumentRepoFactory interface {
		DocumentRepository() ports.DocumentRepository
	}

	AuditLogFactory interface {
		AuditLog() ports.AuditLog
	}

	TenantDirectoryFactory interface {
		TenantDirectory() ports.TenantDirectory
	}

	// UoW is the transaction boundary every command handler works in.
	//
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//   // ... repository calls
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		LineageLocker
		DocumentRepoFactory
		AuditLogFactory
		TenantDirectoryFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// reportInvariant logs a broken lineage invariant at error level and counts it.
// Other errors pass through untouched.
func reportInvariant(logger *slog.Logger, metrics ports.LifecycleMetrics, err error) error {
	var violation *errs.InvariantViolationError
	if errors.As(err, &violation) {
		logger.Error("lineage invariant violated, transaction rolled back",
			"lineage_root_id", violation.LineageRootID,
			"detail", violation.Detail,
			"error", err)
		metrics.InvariantViolated()
	}
	return err
}

// nopMetrics is used when a handler is built without metrics.
type nopMetrics struct{}

func (nopMetrics) TransitionApplied(lifecycle.Category, lifecycle.Status) {}
func (nopMetrics) VersionCreated()                                        {}
func (nopMetrics) VersionActivated()                                      {}
func (nopMetrics) DocumentsExpired(int)                                   {}
func (nopMetrics) InvariantViolated()                                     {}

func metricsOrNop(m ports.LifecycleMetrics) ports.LifecycleMetrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}

func loggerOrDefault(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("component", component)
}
