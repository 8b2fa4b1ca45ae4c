package otel

import (
	"context"

	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	_ ports.UnitOfWorkFactory = (*TracingUnitOfWorkFactory)(nil)
	_ ports.UnitOfWork        = (*TracingUnitOfWork)(nil)
)

// TracingUnitOfWorkFactory hands out units of work whose lineage locks and
// document repository are traced.
type TracingUnitOfWorkFactory struct {
	next ports.UnitOfWorkFactory
}

func NewTracingUnitOfWorkFactory(next ports.UnitOfWorkFactory) *TracingUnitOfWorkFactory {
	return &TracingUnitOfWorkFactory{next: next}
}

func (f *TracingUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &TracingUnitOfWork{
		UnitOfWork: f.next.Create(),
		tracer:     otel.Tracer(tracerName),
	}
}

type TracingUnitOfWork struct {
	ports.UnitOfWork
	tracer trace.Tracer
}

// LockLineage records how long the caller waited for the lineage.
func (u *TracingUnitOfWork) LockLineage(ctx context.Context, scope kernel.TenantScope, rootID kernel.UUID) (err error) {
	ctx, span := u.tracer.Start(ctx, "UnitOfWork.LockLineage",
		trace.WithAttributes(
			attribute.String("tenant.id", scope.TenantID().String()),
			attribute.String("lineage.root_id", rootID.String()),
		),
	)
	defer func() { end(span, err) }()
	return u.UnitOfWork.LockLineage(ctx, scope, rootID)
}

func (u *TracingUnitOfWork) DocumentRepository() ports.DocumentRepository {
	return NewTracingDocumentRepository(u.UnitOfWork.DocumentRepository())
}
