// Package http exposes the lifecycle engine over a JSON API built on echo.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"docflow/internal/core/application/usecases/commands"
	"docflow/internal/core/application/usecases/queries"
	"docflow/internal/core/domain/model/document"
	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/domain/model/lifecycle"

	"github.com/labstack/echo/v4"
)

const (
	TenantHeader = "X-Tenant-ID"
	ActorHeader  = "X-Actor-ID"

	scopeKey = "tenant_scope"
)

type (
	CreateDocumentHandler interface {
		Handle(ctx context.Context, command commands.CreateDocumentCommand) (*document.Document, error)
	}
	ApplyTransitionHandler interface {
		Handle(ctx context.Context, command commands.ApplyTransitionCommand) (*document.Document, error)
	}
	CreateVersionHandler interface {
		Handle(ctx context.Context, command commands.CreateVersionCommand) (*document.Document, error)
	}
	ActivateVersionHandler interface {
		Handle(ctx context.Context, command commands.ActivateVersionCommand) (*document.Document, error)
	}
	SweepExpirationsHandler interface {
		Handle(ctx context.Context, command commands.SweepExpirationsCommand) (int, error)
	}
	CanTransitionHandler interface {
		Handle(ctx context.Context, query queries.CanTransitionQuery) (queries.CanTransitionQueryResponse, error)
	}
	GetLineageHandler interface {
		Handle(ctx context.Context, query queries.GetLineageQuery) ([]queries.GetLineageQueryResponse, error)
	}
	GetDocumentHistoryHandler interface {
		Handle(ctx context.Context, query queries.GetDocumentHistoryQuery) ([]queries.GetDocumentHistoryQueryResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateDocument     CreateDocumentHandler
	ApplyTransition    ApplyTransitionHandler
	CreateVersion      CreateVersionHandler
	ActivateVersion    ActivateVersionHandler
	SweepExpirations   SweepExpirationsHandler
	CanTransition      CanTransitionHandler
	GetLineage         GetLineageHandler
	GetDocumentHistory GetDocumentHistoryHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// RequireScope builds the tenant scope from the identity headers. A missing
// actor header is rejected like a missing tenant.
func RequireScope(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		tenantID, err := kernel.UUIDFromString(strings.TrimSpace(ctx.Request().Header.Get(TenantHeader)))
		if err != nil {
			return badRequest(ctx, "Missing or invalid "+TenantHeader+" header")
		}
		actorID, err := kernel.UUIDFromString(strings.TrimSpace(ctx.Request().Header.Get(ActorHeader)))
		if err != nil {
			return badRequest(ctx, "Missing or invalid "+ActorHeader+" header")
		}
		scope, err := kernel.NewTenantScope(tenantID, actorID)
		if err != nil {
			return badRequest(ctx, err.Error())
		}
		ctx.Set(scopeKey, scope)
		return next(ctx)
	}
}

func scopeFrom(ctx echo.Context) kernel.TenantScope {
	scope, _ := ctx.Get(scopeKey).(kernel.TenantScope)
	return scope
}

func documentID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

// CreateDocument handles POST /api/v1/documents.
func (s *Server) CreateDocument(ctx echo.Context) error {
	var body NewDocument
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id := kernel.NewUUID()
	if body.ID != "" {
		parsed, err := kernel.UUIDFromString(body.ID)
		if err != nil {
			return s.fail(ctx, err)
		}
		id = parsed
	}

	summary, err := document.NewSummary(body.TotalAmount, body.DiscountAmount, body.FinalAmount)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateDocumentCommand(scopeFrom(ctx), id, lifecycle.Category(body.Category),
		body.Number, body.Title, summary, body.ValidUntil, toLineItemInputs(body.Items))
	if err != nil {
		return s.fail(ctx, err)
	}

	doc, err := s.handlers.CreateDocument.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toDocument(doc))
}

// ApplyTransition handles POST /api/v1/documents/:id/transitions.
func (s *Server) ApplyTransition(ctx echo.Context) error {
	id, err := documentID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body NewTransition
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewApplyTransitionCommand(scopeFrom(ctx), id, lifecycle.Status(body.To), body.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}

	doc, err := s.handlers.ApplyTransition.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toDocument(doc))
}

// CreateVersion handles POST /api/v1/documents/:id/versions.
func (s *Server) CreateVersion(ctx echo.Context) error {
	id, err := documentID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateVersionCommand(scopeFrom(ctx), id)
	if err != nil {
		return s.fail(ctx, err)
	}

	doc, err := s.handlers.CreateVersion.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toDocument(doc))
}

// ActivateVersion handles POST /api/v1/documents/:id/activate.
func (s *Server) ActivateVersion(ctx echo.Context) error {
	id, err := documentID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewActivateVersionCommand(scopeFrom(ctx), id)
	if err != nil {
		return s.fail(ctx, err)
	}

	doc, err := s.handlers.ActivateVersion.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toDocument(doc))
}

// GetLineage handles GET /api/v1/documents/:id/lineage.
func (s *Server) GetLineage(ctx echo.Context) error {
	id, err := documentID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetLineageQuery(scopeFrom(ctx), id)
	if err != nil {
		return s.fail(ctx, err)
	}

	versions, err := s.handlers.GetLineage.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toLineage(versions))
}

// GetHistory handles GET /api/v1/documents/:id/history.
func (s *Server) GetHistory(ctx echo.Context) error {
	id, err := documentID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetDocumentHistoryQuery(scopeFrom(ctx), id)
	if err != nil {
		return s.fail(ctx, err)
	}

	events, err := s.handlers.GetDocumentHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toHistory(events))
}

// CanTransition handles GET /api/v1/transitions?category=&from=&to=.
func (s *Server) CanTransition(ctx echo.Context) error {
	query, err := queries.NewCanTransitionQuery(
		lifecycle.Category(ctx.QueryParam("category")),
		lifecycle.Status(ctx.QueryParam("from")),
		lifecycle.Status(ctx.QueryParam("to")),
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.CanTransition.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	successors := make([]string, len(result.Successors))
	for i, status := range result.Successors {
		successors[i] = string(status)
	}
	return ctx.JSON(http.StatusOK, Transitions{Allowed: result.Allowed, Successors: successors})
}

// SweepExpirations handles POST /api/v1/expirations/sweep. It runs the same
// sweep as the scheduled job: the cut-off is always the current time and any
// request body is ignored.
func (s *Server) SweepExpirations(ctx echo.Context) error {
	cmd, err := commands.NewSweepExpirationsCommand(time.Now().UTC())
	if err != nil {
		return s.fail(ctx, err)
	}

	count, err := s.handlers.SweepExpirations.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, SweepResult{Expired: count})
}
