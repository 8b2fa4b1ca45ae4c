package queries

import (
	"context"
	"time"

	"docflow/internal/core/domain/model/audit"
	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/domain/model/lifecycle"
	"docflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetDocumentHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetDocumentHistoryQueryHandler(db *gorm.DB) GetDocumentHistoryQueryHandler {
	return GetDocumentHistoryQueryHandler{db: db}
}

// Handle returns the events oldest first.
func (h GetDocumentHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetDocumentHistoryQuery,
) ([]GetDocumentHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tenantID := query.scope.TenantID().Bytes()
	documentID := query.documentID.Bytes()

	var exists int64
	err := h.db.WithContext(ctx).
		Table("documents").
		Where("id = ? AND tenant_id = ?", documentID, tenantID).
		Count(&exists).Error
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, errs.NewObjectNotFoundError("document", query.documentID.String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			action,
			from_status,
			to_status,
			actor_id,
			reason,
			occurred_at
		FROM lifecycle_events
		WHERE tenant_id = ? AND document_id = ?
		ORDER BY occurred_at, id
	`, tenantID, documentID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]GetDocumentHistoryQueryResponse, 0)
	for rows.Next() {
		var (
			action, from, to, reason string
			actor                    uuid.UUID
			occurredAt               time.Time
		)
		if err = rows.Scan(&action, &from, &to, &actor, &reason, &occurredAt); err != nil {
			return nil, err
		}

		actorID, idErr := kernel.UUIDFromBytes(actor[:])
		if idErr != nil {
			return nil, idErr
		}
		history = append(history, GetDocumentHistoryQueryResponse{
			Action:     audit.Action(action),
			FromStatus: lifecycle.Status(from),
			ToStatus:   lifecycle.Status(to),
			ActorID:    actorID,
			Reason:     reason,
			OccurredAt: occurredAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}
