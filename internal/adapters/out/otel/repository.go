package otel

import (
	"context"
	"time"

	"docflow/internal/core/domain/model/document"
	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "docflow/internal/adapters/out/otel"

var _ ports.DocumentRepository = (*TracingDocumentRepository)(nil)

// TracingDocumentRepository wraps a ports.DocumentRepository with one span per
// call. Spans carry the tenant and, where known, the document or lineage.
type TracingDocumentRepository struct {
	next   ports.DocumentRepository
	tracer trace.Tracer
}

func NewTracingDocumentRepository(next ports.DocumentRepository) *TracingDocumentRepository {
	return &TracingDocumentRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingDocumentRepository) start(
	ctx context.Context,
	name string,
	scope kernel.TenantScope,
	attrs ...attribute.KeyValue,
) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("tenant.id", scope.TenantID().String()))
	return r.tracer.Start(ctx, "DocumentRepository."+name, trace.WithAttributes(attrs...))
}

func end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func documentAttrs(doc *document.Document) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("document.id", doc.ID().String()),
		attribute.String("document.category", string(doc.Category())),
		attribute.String("document.status", string(doc.Status())),
	}
}

func (r *TracingDocumentRepository) Add(ctx context.Context, scope kernel.TenantScope, doc *document.Document) (err error) {
	ctx, span := r.start(ctx, "Add", scope, documentAttrs(doc)...)
	defer func() { end(span, err) }()
	return r.next.Add(ctx, scope, doc)
}

func (r *TracingDocumentRepository) Update(ctx context.Context, scope kernel.TenantScope, doc *document.Document) (err error) {
	ctx, span := r.start(ctx, "Update", scope, documentAttrs(doc)...)
	defer func() { end(span, err) }()
	return r.next.Update(ctx, scope, doc)
}

func (r *TracingDocumentRepository) Get(ctx context.Context, scope kernel.TenantScope, id kernel.UUID) (_ *document.Document, err error) {
	ctx, span := r.start(ctx, "Get", scope, attribute.String("document.id", id.String()))
	defer func() { end(span, err) }()
	return r.next.Get(ctx, scope, id)
}

func (r *TracingDocumentRepository) GetForUpdate(ctx context.Context, scope kernel.TenantScope, id kernel.UUID) (_ *document.Document, err error) {
	ctx, span := r.start(ctx, "GetForUpdate", scope, attribute.String("document.id", id.String()))
	defer func() { end(span, err) }()
	return r.next.GetForUpdate(ctx, scope, id)
}

func (r *TracingDocumentRepository) ListLineage(ctx context.Context, scope kernel.TenantScope, rootID kernel.UUID) (_ []*document.Document, err error) {
	ctx, span := r.start(ctx, "ListLineage", scope, attribute.String("lineage.root_id", rootID.String()))
	defer func() { end(span, err) }()

	docs, err := r.next.ListLineage(ctx, scope, rootID)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(docs)))
	}
	return docs, err
}

func (r *TracingDocumentRepository) DemoteLineage(
	ctx context.Context,
	scope kernel.TenantScope,
	rootID kernel.UUID,
	now time.Time,
) (_ int64, err error) {
	ctx, span := r.start(ctx, "DemoteLineage", scope, attribute.String("lineage.root_id", rootID.String()))
	defer func() { end(span, err) }()

	n, err := r.next.DemoteLineage(ctx, scope, rootID, now)
	span.SetAttributes(attribute.Int64("result.demoted", n))
	return n, err
}

func (r *TracingDocumentRepository) CountActiveInLineage(ctx context.Context, scope kernel.TenantScope, rootID kernel.UUID) (_ int64, err error) {
	ctx, span := r.start(ctx, "CountActiveInLineage", scope, attribute.String("lineage.root_id", rootID.String()))
	defer func() { end(span, err) }()
	return r.next.CountActiveInLineage(ctx, scope, rootID)
}

func (r *TracingDocumentRepository) ListExpirable(ctx context.Context, scope kernel.TenantScope, asOf time.Time) (_ []*document.Document, err error) {
	ctx, span := r.start(ctx, "ListExpirable", scope, attribute.String("sweep.as_of", asOf.UTC().Format(time.RFC3339)))
	defer func() { end(span, err) }()

	docs, err := r.next.ListExpirable(ctx, scope, asOf)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(docs)))
	}
	return docs, err
}

func (r *TracingDocumentRepository) AddGroups(ctx context.Context, scope kernel.TenantScope, groups []*document.Group) (err error) {
	ctx, span := r.start(ctx, "AddGroups", scope, attribute.Int("groups.count", len(groups)))
	defer func() { end(span, err) }()
	return r.next.AddGroups(ctx, scope, groups)
}

func (r *TracingDocumentRepository) AddLineItems(ctx context.Context, scope kernel.TenantScope, items []*document.LineItem) (err error) {
	ctx, span := r.start(ctx, "AddLineItems", scope, attribute.Int("items.count", len(items)))
	defer func() { end(span, err) }()
	return r.next.AddLineItems(ctx, scope, items)
}

func (r *TracingDocumentRepository) GetContents(ctx context.Context, scope kernel.TenantScope, documentID kernel.UUID) (_ document.Contents, err error) {
	ctx, span := r.start(ctx, "GetContents", scope, attribute.String("document.id", documentID.String()))
	defer func() { end(span, err) }()
	return r.next.GetContents(ctx, scope, documentID)
}

func (r *TracingDocumentRepository) CountLineItems(ctx context.Context, scope kernel.TenantScope, documentID kernel.UUID) (_ int64, err error) {
	ctx, span := r.start(ctx, "CountLineItems", scope, attribute.String("document.id", documentID.String()))
	defer func() { end(span, err) }()
	return r.next.CountLineItems(ctx, scope, documentID)
}
