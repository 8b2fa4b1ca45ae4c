package commands

import (
	"context"
	"log/slog"
	"time"

	"docflow/internal/core/domain/model/audit"
	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/domain/model/lifecycle"
	"docflow/internal/core/domain/services"
	"docflow/internal/core/ports"
)

const expiredReason = "validity deadline passed"

// SweepExpirationsCommandHandler expires overdue quotes of every tenant in one
// transaction, through the same TransitionGuard used for user requests. Rows
// already expired no longer match the scan, so a second run with the same asOf
// returns 0.
type SweepExpirationsCommandHandler struct {
	uowFactory UoWFactory
	guard      *services.TransitionGuard
	metrics    ports.LifecycleMetrics
	logger     *slog.Logger
}

func NewSweepExpirationsCommandHandler(
	uowFactory UoWFactory,
	guard *services.TransitionGuard,
	metrics ports.LifecycleMetrics,
	logger *slog.Logger,
) SweepExpirationsCommandHandler {
	if guard == nil {
		guard = services.NewTransitionGuard(nil)
	}
	return SweepExpirationsCommandHandler{
		uowFactory: uowFactory,
		guard:      guard,
		metrics:    metricsOrNop(metrics),
		logger:     loggerOrDefault(logger, "sweep_expirations"),
	}
}

// Handle returns the number of documents moved to expired.
func (h SweepExpirationsCommandHandler) Handle(ctx context.Context, command SweepExpirationsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	asOf := command.AsOf()
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tenants, err := uow.TenantDirectory().ListTenantsWithExpirable(ctx, asOf)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, tenantID := range tenants {
		n, sweepErr := h.sweepTenant(ctx, uow, tenantID, command)
		if sweepErr != nil {
			return 0, sweepErr
		}
		count += n
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	if count > 0 {
		h.metrics.DocumentsExpired(count)
	}
	h.logger.Info("expiration sweep finished",
		"as_of", asOf,
		"tenants", len(tenants),
		"expired", count)
	return count, nil
}

func (h SweepExpirationsCommandHandler) sweepTenant(
	ctx context.Context,
	uow UoW,
	tenantID kernel.UUID,
	command SweepExpirationsCommand,
) (int, error) {
	scope, err := kernel.NewSystemScope(tenantID)
	if err != nil {
		return 0, err
	}

	repo := uow.DocumentRepository()
	docs, err := repo.ListExpirable(ctx, scope, command.AsOf())
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	count := 0
	for _, doc := range docs {
		if !doc.IsExpirable(command.AsOf()) {
			continue
		}

		from, applyErr := h.guard.Apply(ctx, doc, lifecycle.QuoteExpired, services.TransitionFacts{}, scope.ActorID(), now)
		if applyErr != nil {
			return 0, applyErr
		}
		if err = repo.Update(ctx, scope, doc); err != nil {
			return 0, reportInvariant(h.logger, h.metrics, err)
		}

		entry := audit.NewEntry(doc, audit.ActionExpired, from, scope.ActorID(), expiredReason, now)
		if err = uow.AuditLog().Record(ctx, scope, entry); err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}
