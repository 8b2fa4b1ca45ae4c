package queries

import (
	"context"
	"time"

	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/domain/model/lifecycle"
	"docflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetLineageQueryHandler struct {
	db *gorm.DB
}

func NewGetLineageQueryHandler(db *gorm.DB) GetLineageQueryHandler {
	return GetLineageQueryHandler{db: db}
}

// Handle returns the versions ordered by version number. A document outside the
// caller's tenant, or one without versions, is reported as not found.
func (h GetLineageQueryHandler) Handle(ctx context.Context, query GetLineageQuery) ([]GetLineageQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tenantID := query.scope.TenantID().Bytes()
	var root uuid.UUID
	result := h.db.WithContext(ctx).Raw(`
		SELECT lineage_root_id
		FROM documents
		WHERE id = ? AND tenant_id = ? AND lineage_root_id IS NOT NULL
	`, query.documentID.Bytes(), tenantID).Scan(&root)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("document", query.documentID.String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			version,
			parent_version_id,
			is_active,
			status,
			final_amount::text,
			updated_at
		FROM documents
		WHERE tenant_id = ? AND lineage_root_id = ?
		ORDER BY version, created_at, id
	`, tenantID, root).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := make([]GetLineageQueryResponse, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			parentID  *uuid.UUID
			status    string
			version   GetLineageQueryResponse
			updatedAt time.Time
		)
		if err = rows.Scan(&id, &version.Version, &parentID, &version.IsActive, &status, &version.FinalAmount, &updatedAt); err != nil {
			return nil, err
		}

		docID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		parent, parentErr := kernel.OptionalFromBytes(parentID)
		if parentErr != nil {
			return nil, parentErr
		}

		version.ID = docID
		version.ParentVersionID = parent
		version.Status = lifecycle.Status(status)
		version.UpdatedAt = updatedAt
		versions = append(versions, version)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return versions, nil
}
