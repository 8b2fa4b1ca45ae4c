package commands

import (
	"context"
	"log/slog"
	"time"

	"docflow/internal/core/domain/model/audit"
	"docflow/internal/core/domain/model/document"
	"docflow/internal/core/ports"
)

// ActivateVersionCommandHandler demotes every version of the lineage and
// promotes the target. Activating the version that is already active rewrites
// the same state and is not an error.
type ActivateVersionCommandHandler struct {
	uowFactory UoWFactory
	metrics    ports.LifecycleMetrics
	logger     *slog.Logger
}

func NewActivateVersionCommandHandler(
	uowFactory UoWFactory,
	metrics ports.LifecycleMetrics,
	logger *slog.Logger,
) ActivateVersionCommandHandler {
	return ActivateVersionCommandHandler{
		uowFactory: uowFactory,
		metrics:    metricsOrNop(metrics),
		logger:     loggerOrDefault(logger, "activate_version"),
	}
}

func (h ActivateVersionCommandHandler) Handle(ctx context.Context, command ActivateVersionCommand) (*document.Document, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	scope := command.Scope()
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DocumentRepository()
	target, err := repo.Get(ctx, scope, command.DocumentID())
	if err != nil {
		return nil, err
	}
	rootID, err := target.LineageRootID()
	if err != nil {
		return nil, err
	}

	// The lineage lock is taken before any row lock of the lineage.
	if err = uow.LockLineage(ctx, scope, rootID); err != nil {
		return nil, err
	}
	if target, err = repo.GetForUpdate(ctx, scope, command.DocumentID()); err != nil {
		return nil, err
	}
	wasActive := target.IsActive()

	now := time.Now().UTC()
	if _, err = repo.DemoteLineage(ctx, scope, rootID, now); err != nil {
		return nil, err
	}
	if err = target.Promote(scope.ActorID(), now); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, scope, target); err != nil {
		return nil, reportInvariant(h.logger, h.metrics, err)
	}
	if err = ensureSingleActive(ctx, scope, repo, rootID); err != nil {
		return nil, reportInvariant(h.logger, h.metrics, err)
	}

	if !wasActive {
		entry := audit.NewEntry(target, audit.ActionVersionActivated, target.Status(), scope.ActorID(), "", now)
		if err = uow.AuditLog().Record(ctx, scope, entry); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if !wasActive {
		h.metrics.VersionActivated()
	}
	h.logger.Info("version activated",
		"document_id", target.ID().String(),
		"lineage_root_id", rootID.String(),
		"already_active", wasActive)
	return target, nil
}
