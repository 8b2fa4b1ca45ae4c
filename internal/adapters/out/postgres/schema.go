package postgres

import (
	"context"
	"fmt"

	"docflow/internal/adapters/out/postgres/auditrepo"
	"docflow/internal/adapters/out/postgres/documentrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables of the engine and the partial unique
// index that allows one active version per lineage.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	if err := db.AutoMigrate(
		&documentrepo.DocumentDTO{},
		&documentrepo.GroupDTO{},
		&documentrepo.LineItemDTO{},
		&auditrepo.EventDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	stmt := fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON documents (lineage_root_id) WHERE is_active",
		documentrepo.ActiveVersionIndex,
	)
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("create %s: %w", documentrepo.ActiveVersionIndex, err)
	}
	return nil
}
