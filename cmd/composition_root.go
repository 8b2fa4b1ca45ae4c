package cmd

import (
	"log/slog"

	"docflow/internal/adapters/out/fsm"
	"docflow/internal/adapters/out/otel"
	"docflow/internal/adapters/out/postgres"
	"docflow/internal/core/application/usecases/commands"
	"docflow/internal/core/application/usecases/queries"
	"docflow/internal/core/domain/services"
	"docflow/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
	guard      *services.TransitionGuard
	metrics    ports.LifecycleMetrics
	logger     *slog.Logger
}

// NewCompositionRoot wires the handlers. Every status change goes through one
// TransitionGuard backed by the looplab/fsm validator.
func NewCompositionRoot(gormDB *gorm.DB, metrics ports.LifecycleMetrics, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: otel.NewTracingUnitOfWorkFactory(postgres.NewGormUnitOfWorkFactory(gormDB)),
		guard:      services.NewTransitionGuard(fsm.New()),
		metrics:    metrics,
		logger:     logger,
	}
}

func (c *CompositionRoot) commandUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateDocumentCommandHandler() commands.CreateDocumentCommandHandler {
	return commands.NewCreateDocumentCommandHandler(c.commandUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateApplyTransitionCommandHandler() commands.ApplyTransitionCommandHandler {
	return commands.NewApplyTransitionCommandHandler(c.commandUoWFactory(), c.guard, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateCreateVersionCommandHandler() commands.CreateVersionCommandHandler {
	return commands.NewCreateVersionCommandHandler(c.commandUoWFactory(), services.NewVersionCloner(nil), c.metrics, c.logger)
}

func (c *CompositionRoot) CreateActivateVersionCommandHandler() commands.ActivateVersionCommandHandler {
	return commands.NewActivateVersionCommandHandler(c.commandUoWFactory(), c.metrics, c.logger)
}

func (c *CompositionRoot) CreateSweepExpirationsCommandHandler() commands.SweepExpirationsCommandHandler {
	return commands.NewSweepExpirationsCommandHandler(c.commandUoWFactory(), c.guard, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateCanTransitionQueryHandler() queries.CanTransitionQueryHandler {
	return queries.NewCanTransitionQueryHandler()
}

func (c *CompositionRoot) CreateGetLineageQueryHandler() queries.GetLineageQueryHandler {
	return queries.NewGetLineageQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDocumentHistoryQueryHandler() queries.GetDocumentHistoryQueryHandler {
	return queries.NewGetDocumentHistoryQueryHandler(c.gormDB)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
