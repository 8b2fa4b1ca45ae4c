package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"docflow/internal/core/domain/model/audit"
	"docflow/internal/core/domain/model/document"
	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/domain/services"
	"docflow/internal/core/ports"
	"docflow/internal/pkg/errs"
)

// CreateVersionCommandHandler forks a quote. In one transaction it locks the
// lineage, demotes every active version, inserts the new version with cloned
// groups and items, and checks that exactly one version is active before
// committing.
type CreateVersionCommandHandler struct {
	uowFactory UoWFactory
	cloner     services.VersionCloner
	metrics    ports.LifecycleMetrics
	logger     *slog.Logger
}

func NewCreateVersionCommandHandler(
	uowFactory UoWFactory,
	cloner services.VersionCloner,
	metrics ports.LifecycleMetrics,
	logger *slog.Logger,
) CreateVersionCommandHandler {
	return CreateVersionCommandHandler{
		uowFactory: uowFactory,
		cloner:     cloner,
		metrics:    metricsOrNop(metrics),
		logger:     loggerOrDefault(logger, "create_version"),
	}
}

func (h CreateVersionCommandHandler) Handle(ctx context.Context, command CreateVersionCommand) (*document.Document, error) {
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
	source, err := repo.Get(ctx, scope, command.SourceID())
	if err != nil {
		return nil, err
	}
	rootID, err := source.LineageRootID()
	if err != nil {
		return nil, err
	}

	if err = uow.LockLineage(ctx, scope, rootID); err != nil {
		return nil, err
	}

	contents, err := repo.GetContents(ctx, scope, source.ID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result, err := h.cloner.Clone(source, contents, scope.ActorID(), now)
	if err != nil {
		return nil, reportInvariant(h.logger, h.metrics, err)
	}

	if _, err = repo.DemoteLineage(ctx, scope, rootID, now); err != nil {
		return nil, err
	}
	if err = h.insert(ctx, scope, repo, result); err != nil {
		return nil, reportInvariant(h.logger, h.metrics, err)
	}
	if err = ensureSingleActive(ctx, scope, repo, rootID); err != nil {
		return nil, reportInvariant(h.logger, h.metrics, err)
	}

	entry := audit.NewEntry(result.Document, audit.ActionVersionCreated, source.Status(), scope.ActorID(),
		fmt.Sprintf("forked from version %d", source.VersionInfo().Version()), now)
	if err = uow.AuditLog().Record(ctx, scope, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.VersionCreated()
	h.logger.Info("version created",
		"document_id", result.Document.ID().String(),
		"lineage_root_id", rootID.String(),
		"version", result.Document.VersionInfo().Version(),
		"groups", len(result.Groups),
		"items", len(result.RootItems)+len(result.ChildItems))
	return result.Document, nil
}

// insert writes the clone parents first: document, groups, root items, then
// child items in the order the cloner produced them.
func (h CreateVersionCommandHandler) insert(
	ctx context.Context,
	scope kernel.TenantScope,
	repo ports.DocumentRepository,
	result services.CloneResult,
) error {
	if err := repo.Add(ctx, scope, result.Document); err != nil {
		return err
	}
	if err := repo.AddGroups(ctx, scope, result.Groups); err != nil {
		return err
	}
	if err := repo.AddLineItems(ctx, scope, result.RootItems); err != nil {
		return err
	}
	return repo.AddLineItems(ctx, scope, result.ChildItems)
}

func ensureSingleActive(ctx context.Context, scope kernel.TenantScope, repo ports.DocumentRepository, rootID kernel.UUID) error {
	active, err := repo.CountActiveInLineage(ctx, scope, rootID)
	if err != nil {
		return err
	}
	if active != 1 {
		return errs.NewInvariantViolationError(rootID.String(), fmt.Sprintf("%d active versions after write", active))
	}
	return nil
}
