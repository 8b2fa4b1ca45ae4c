// Package auditrepo stores the lifecycle history of documents.
package auditrepo

import (
	"context"
	"time"

	"docflow/internal/core/domain/model/audit"
	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/domain/model/lifecycle"
	"docflow/internal/core/ports"
	"docflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ ports.AuditLog = (*GormAuditLog)(nil)

// EventDTO is the row of the lifecycle_events table. Rows are append-only.
type EventDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_lifecycle_events_document,priority:1"`
	DocumentID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_lifecycle_events_document,priority:2"`
	LineageRootID *uuid.UUID `gorm:"type:uuid"`
	Category      string     `gorm:"type:varchar(16);not null"`
	Action        string     `gorm:"type:varchar(32);not null"`
	FromStatus    string     `gorm:"type:varchar(64)"`
	ToStatus      string     `gorm:"type:varchar(64);not null"`
	ActorID       uuid.UUID  `gorm:"type:uuid;not null"`
	Reason        string     `gorm:"type:text"`
	OccurredAt    time.Time  `gorm:"not null"`
}

func (EventDTO) TableName() string {
	return "lifecycle_events"
}

// GormAuditLog implements ports.AuditLog on the lifecycle_events table. Built
// from a transaction handle, its rows commit or roll back with the change they
// describe.
type GormAuditLog struct {
	db *gorm.DB
}

func NewGormAuditLog(db *gorm.DB) *GormAuditLog {
	return &GormAuditLog{db: db}
}

// Record appends an entry under the scope's tenant.
func (l *GormAuditLog) Record(ctx context.Context, scope kernel.TenantScope, entry audit.Entry) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	if err := entry.ID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("entryId", err)
	}
	if err := entry.DocumentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("documentId", err)
	}

	dto := EventDTO{
		ID:            entry.ID.Bytes(),
		TenantID:      scope.TenantID().Bytes(),
		DocumentID:    entry.DocumentID.Bytes(),
		LineageRootID: kernel.OptionalBytes(entry.LineageRootID),
		Category:      string(entry.Category),
		Action:        string(entry.Action),
		FromStatus:    string(entry.FromStatus),
		ToStatus:      string(entry.ToStatus),
		ActorID:       entry.ActorID.Bytes(),
		Reason:        entry.Reason,
		OccurredAt:    entry.OccurredAt.UTC(),
	}
	return l.db.WithContext(ctx).Create(&dto).Error
}

// History returns the events of one document, oldest first.
func (l *GormAuditLog) History(ctx context.Context, scope kernel.TenantScope, documentID kernel.UUID) ([]audit.Entry, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	var dtos []EventDTO
	err := l.db.WithContext(ctx).
		Where("tenant_id = ? AND document_id = ?", scope.TenantID().Bytes(), documentID.Bytes()).
		Order("occurred_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]audit.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, convErr := toEntry(dto)
		if convErr != nil {
			return nil, convErr
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func toEntry(dto EventDTO) (audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return audit.Entry{}, err
	}
	documentID, err := kernel.UUIDFromBytes(dto.DocumentID[:])
	if err != nil {
		return audit.Entry{}, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return audit.Entry{}, err
	}
	root, err := kernel.OptionalFromBytes(dto.LineageRootID)
	if err != nil {
		return audit.Entry{}, err
	}

	return audit.Entry{
		ID:            id,
		DocumentID:    documentID,
		LineageRootID: root,
		Category:      lifecycle.Category(dto.Category),
		Action:        audit.Action(dto.Action),
		FromStatus:    lifecycle.Status(dto.FromStatus),
		ToStatus:      lifecycle.Status(dto.ToStatus),
		ActorID:       actorID,
		Reason:        dto.Reason,
		OccurredAt:    dto.OccurredAt,
	}, nil
}
