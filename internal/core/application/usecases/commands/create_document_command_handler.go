package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"docflow/internal/core/domain/model/audit"
	"docflow/internal/core/domain/model/document"
	"docflow/internal/core/domain/model/kernel"
)

// CreateDocumentCommandHandler persists a new document with its groups and
// line items and records the initial status in the audit log.
type CreateDocumentCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewCreateDocumentCommandHandler(uowFactory UoWFactory, logger *slog.Logger) CreateDocumentCommandHandler {
	return CreateDocumentCommandHandler{
		uowFactory: uowFactory,
		logger:     loggerOrDefault(logger, "create_document"),
	}
}

func (h CreateDocumentCommandHandler) Handle(ctx context.Context, command CreateDocumentCommand) (*document.Document, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	scope := command.Scope()
	now := time.Now().UTC()

	doc, err := document.NewDocument(
		command.DocumentID(),
		scope,
		command.Category(),
		command.Number(),
		command.Title(),
		command.Summary(),
		command.ValidUntil(),
		now,
	)
	if err != nil {
		return nil, err
	}

	contents, err := buildContents(doc, command.Items())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DocumentRepository()
	if err = repo.Add(ctx, scope, doc); err != nil {
		return nil, err
	}
	if err = repo.AddGroups(ctx, scope, contents.Groups); err != nil {
		return nil, err
	}
	if err = repo.AddLineItems(ctx, scope, contents.Items); err != nil {
		return nil, err
	}

	entry := audit.NewEntry(doc, audit.ActionStatusChanged, "", scope.ActorID(), "created", now)
	if err = uow.AuditLog().Record(ctx, scope, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.Info("document created",
		"document_id", doc.ID().String(),
		"category", doc.Category().String(),
		"items", len(contents.Items))
	return doc, nil
}

// buildContents flattens the input tree. Items are emitted breadth first so
// that every parent precedes its children.
func buildContents(doc *document.Document, inputs []LineItemInput) (document.Contents, error) {
	var contents document.Contents
	groups := make(map[string]kernel.UUID)

	type pending struct {
		input  LineItemInput
		parent *kernel.UUID
	}
	queue := make([]pending, 0, len(inputs))
	for _, in := range inputs {
		queue = append(queue, pending{input: in})
	}

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		var groupID *kernel.UUID
		if name := strings.TrimSpace(next.input.Group); name != "" {
			id, ok := groups[name]
			if !ok {
				id = kernel.NewUUID()
				g, err := document.NewGroup(id, doc.ID(), doc.TenantID(), name, len(contents.Groups))
				if err != nil {
					return document.Contents{}, err
				}
				groups[name] = id
				contents.Groups = append(contents.Groups, g)
			}
			groupID = &id
		}

		item, err := document.NewLineItem(kernel.NewUUID(), doc.ID(), doc.TenantID(), groupID, next.parent, next.input.Data)
		if err != nil {
			return document.Contents{}, err
		}
		contents.Items = append(contents.Items, item)

		itemID := item.ID()
		for _, child := range next.input.Children {
			queue = append(queue, pending{input: child, parent: &itemID})
		}
	}
	return contents, nil
}
