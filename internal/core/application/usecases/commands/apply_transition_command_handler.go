package commands

import (
	"context"
	"log/slog"
	"time"

	"docflow/internal/core/domain/model/audit"
	"docflow/internal/core/domain/model/document"
	"docflow/internal/core/domain/services"
	"docflow/internal/core/ports"
)

// ApplyTransitionCommandHandler moves a document along its status graph. The
// document row is locked for the duration of the transaction, so two callers
// racing on the same document are checked one after the other.
//
// Example:
//
//	cmd, _ := NewApplyTransitionCommand(scope, orderID, lifecycle.OrderCompleted, "")
//	_, err := handler.Handle(ctx, cmd)
//	var denied *errs.TransitionNotAllowedError
//	if errors.As(err, &denied) {
//	    // tell the user which status the order is in
//	}
type ApplyTransitionCommandHandler struct {
	uowFactory UoWFactory
	guard      *services.TransitionGuard
	metrics    ports.LifecycleMetrics
	logger     *slog.Logger
}

func NewApplyTransitionCommandHandler(
	uowFactory UoWFactory,
	guard *services.TransitionGuard,
	metrics ports.LifecycleMetrics,
	logger *slog.Logger,
) ApplyTransitionCommandHandler {
	if guard == nil {
		guard = services.NewTransitionGuard(nil)
	}
	return ApplyTransitionCommandHandler{
		uowFactory: uowFactory,
		guard:      guard,
		metrics:    metricsOrNop(metrics),
		logger:     loggerOrDefault(logger, "apply_transition"),
	}
}

// Handle returns the updated document. On any error nothing is written.
func (h ApplyTransitionCommandHandler) Handle(ctx context.Context, command ApplyTransitionCommand) (*document.Document, error) {
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
	doc, err := repo.GetForUpdate(ctx, scope, command.DocumentID())
	if err != nil {
		return nil, err
	}

	lineItems, err := repo.CountLineItems(ctx, scope, doc.ID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	from, err := h.guard.Apply(ctx, doc, command.To(), services.TransitionFacts{LineItemCount: lineItems}, scope.ActorID(), now)
	if err != nil {
		h.logger.Debug("transition rejected",
			"document_id", doc.ID().String(),
			"from", doc.Status().String(),
			"to", command.To().String(),
			"error", err)
		return nil, err
	}

	if err = repo.Update(ctx, scope, doc); err != nil {
		return nil, reportInvariant(h.logger, h.metrics, err)
	}

	entry := audit.NewEntry(doc, audit.ActionStatusChanged, from, scope.ActorID(), command.Reason(), now)
	if err = uow.AuditLog().Record(ctx, scope, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.TransitionApplied(doc.Category(), doc.Status())
	h.logger.Info("status changed",
		"document_id", doc.ID().String(),
		"category", doc.Category().String(),
		"from", from.String(),
		"to", doc.Status().String())
	return doc, nil
}
