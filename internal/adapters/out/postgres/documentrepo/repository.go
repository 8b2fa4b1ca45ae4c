package documentrepo

import (
	"context"
	"errors"
	"time"

	"docflow/internal/core/domain/model/document"
	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/domain/model/lifecycle"
	"docflow/internal/core/ports"
	"docflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActiveVersionIndex is the partial unique index that allows one active
// version per lineage.
const ActiveVersionIndex = "idx_documents_active_version"

const uniqueViolation = "23505"

var _ ports.DocumentRepository = (*GormDocumentRepository)(nil)

// GormDocumentRepository implements ports.DocumentRepository using GORM.
type GormDocumentRepository struct {
	db *gorm.DB
}

func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// Add inserts a new document stamped with the scope's tenant.
func (r *GormDocumentRepository) Add(ctx context.Context, scope kernel.TenantScope, doc *document.Document) error {
	if err := r.checkOwnership(scope, doc); err != nil {
		return err
	}

	dto := fromDomain(doc)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translateWriteError(doc, err)
	}
	return nil
}

// Update writes every mutable column of the document. The row must exist in the
// scope's tenant.
func (r *GormDocumentRepository) Update(ctx context.Context, scope kernel.TenantScope, doc *document.Document) error {
	if err := r.checkOwnership(scope, doc); err != nil {
		return err
	}

	dto := fromDomain(doc)
	result := r.db.WithContext(ctx).
		Model(&DocumentDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Select("*").
		Omit("id", "tenant_id", "category", "created_by", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return translateWriteError(doc, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("document", doc.ID().String())
	}
	return nil
}

func (r *GormDocumentRepository) Get(ctx context.Context, scope kernel.TenantScope, id kernel.UUID) (*document.Document, error) {
	return r.get(r.db.WithContext(ctx), scope, id)
}

func (r *GormDocumentRepository) GetForUpdate(ctx context.Context, scope kernel.TenantScope, id kernel.UUID) (*document.Document, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), scope, id)
}

func (r *GormDocumentRepository) ListLineage(ctx context.Context, scope kernel.TenantScope, rootID kernel.UUID) ([]*document.Document, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	var dtos []DocumentDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND lineage_root_id = ?", scope.TenantID().Bytes(), rootID.Bytes()).
		Order("version, created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func (r *GormDocumentRepository) DemoteLineage(
	ctx context.Context,
	scope kernel.TenantScope,
	rootID kernel.UUID,
	now time.Time,
) (int64, error) {
	if err := scope.Validate(); err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).
		Model(&DocumentDTO{}).
		Where("tenant_id = ? AND lineage_root_id = ? AND is_active", scope.TenantID().Bytes(), rootID.Bytes()).
		Updates(map[string]any{
			"is_active":  false,
			"updated_by": scope.ActorID().Bytes(),
			"updated_at": now.UTC(),
		})
	return result.RowsAffected, result.Error
}

func (r *GormDocumentRepository) CountActiveInLineage(ctx context.Context, scope kernel.TenantScope, rootID kernel.UUID) (int64, error) {
	if err := scope.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&DocumentDTO{}).
		Where("tenant_id = ? AND lineage_root_id = ? AND is_active", scope.TenantID().Bytes(), rootID.Bytes()).
		Count(&count).Error
	return count, err
}

// ListExpirable locks the matching rows and skips rows another transaction is
// already holding; those are picked up by the next sweep.
func (r *GormDocumentRepository) ListExpirable(ctx context.Context, scope kernel.TenantScope, asOf time.Time) ([]*document.Document, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	var dtos []DocumentDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate, Options: clause.LockingOptionsSkipLocked}).
		Where("tenant_id = ? AND category = ? AND status = ? AND valid_until < ?",
			scope.TenantID().Bytes(), string(lifecycle.CategoryQuote), string(lifecycle.QuotePendingCustomer), asOf).
		Order("valid_until, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

// ListTenantsWithExpirable implements ports.TenantDirectory.
func (r *GormDocumentRepository) ListTenantsWithExpirable(ctx context.Context, asOf time.Time) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&DocumentDTO{}).
		Distinct("tenant_id").
		Where("category = ? AND status = ? AND valid_until < ?",
			string(lifecycle.CategoryQuote), string(lifecycle.QuotePendingCustomer), asOf).
		Order("tenant_id").
		Pluck("tenant_id", &raw).Error
	if err != nil {
		return nil, err
	}

	tenants := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		tenant, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		tenants = append(tenants, tenant)
	}
	return tenants, nil
}

func (r *GormDocumentRepository) AddGroups(ctx context.Context, scope kernel.TenantScope, groups []*document.Group) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	if len(groups) == 0 {
		return nil
	}

	dtos := make([]GroupDTO, 0, len(groups))
	for _, g := range groups {
		if !g.TenantID().IsEqual(scope.TenantID()) {
			return errs.NewObjectNotFoundError("document", g.DocumentID().String())
		}
		dtos = append(dtos, groupFromDomain(g))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// AddLineItems inserts items in the given order; callers pass parents before
// children.
func (r *GormDocumentRepository) AddLineItems(ctx context.Context, scope kernel.TenantScope, items []*document.LineItem) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	dtos := make([]LineItemDTO, 0, len(items))
	for _, item := range items {
		if !item.TenantID().IsEqual(scope.TenantID()) {
			return errs.NewObjectNotFoundError("document", item.DocumentID().String())
		}
		dtos = append(dtos, lineItemFromDomain(item))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

func (r *GormDocumentRepository) GetContents(ctx context.Context, scope kernel.TenantScope, documentID kernel.UUID) (document.Contents, error) {
	if err := scope.Validate(); err != nil {
		return document.Contents{}, err
	}

	var groupDTOs []GroupDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND document_id = ?", scope.TenantID().Bytes(), documentID.Bytes()).
		Order("sort_order, id").
		Find(&groupDTOs).Error
	if err != nil {
		return document.Contents{}, err
	}

	var itemDTOs []LineItemDTO
	err = r.db.WithContext(ctx).
		Where("tenant_id = ? AND document_id = ?", scope.TenantID().Bytes(), documentID.Bytes()).
		Order("sort_order, id").
		Find(&itemDTOs).Error
	if err != nil {
		return document.Contents{}, err
	}

	contents := document.Contents{
		Groups: make([]*document.Group, 0, len(groupDTOs)),
		Items:  make([]*document.LineItem, 0, len(itemDTOs)),
	}
	for _, dto := range groupDTOs {
		g, gErr := groupToDomain(dto)
		if gErr != nil {
			return document.Contents{}, gErr
		}
		contents.Groups = append(contents.Groups, g)
	}
	for _, dto := range itemDTOs {
		item, iErr := lineItemToDomain(dto)
		if iErr != nil {
			return document.Contents{}, iErr
		}
		contents.Items = append(contents.Items, item)
	}
	return contents, nil
}

func (r *GormDocumentRepository) CountLineItems(ctx context.Context, scope kernel.TenantScope, documentID kernel.UUID) (int64, error) {
	if err := scope.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&LineItemDTO{}).
		Where("tenant_id = ? AND document_id = ?", scope.TenantID().Bytes(), documentID.Bytes()).
		Count(&count).Error
	return count, err
}

func (r *GormDocumentRepository) get(db *gorm.DB, scope kernel.TenantScope, id kernel.UUID) (*document.Document, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DocumentDTO
	err := db.Where("id = ? AND tenant_id = ?", id.Bytes(), scope.TenantID().Bytes()).Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("document", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormDocumentRepository) checkOwnership(scope kernel.TenantScope, doc *document.Document) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	if !doc.BelongsTo(scope) {
		return errs.NewObjectNotFoundError("document", doc.ID().String())
	}
	return nil
}

func toDomainList(dtos []DocumentDTO) ([]*document.Document, error) {
	docs := make([]*document.Document, 0, len(dtos))
	for _, dto := range dtos {
		doc, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// translateWriteError maps a violation of the active-version index to an
// invariant violation.
func translateWriteError(doc *document.Document, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == ActiveVersionIndex {
		root, _ := doc.LineageRootID()
		return errs.NewInvariantViolationErrorWithCause(root.String(), "second active version rejected by storage", err)
	}
	return err
}
