// Package documentrepo persists documents, their groups and line items with GORM.
package documentrepo

import (
	"time"

	"docflow/internal/core/domain/model/document"
	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/domain/model/lifecycle"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	amountScale   = document.AmountScale
	quantityScale = document.QuantityScale
)

// DocumentDTO is the row of the documents table. Version columns are NULL for
// categories without lineages.
type DocumentDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_documents_tenant_status,priority:1"`
	Category        string          `gorm:"type:varchar(16);not null"`
	Status          string          `gorm:"type:varchar(64);not null;index:idx_documents_tenant_status,priority:2"`
	Number          string          `gorm:"type:varchar(64)"`
	Title           string          `gorm:"type:text"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	DiscountAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	FinalAmount     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ValidUntil      *time.Time      `gorm:"index"`
	Version         *int
	LineageRootID   *uuid.UUID `gorm:"type:uuid;index"`
	ParentVersionID *uuid.UUID `gorm:"type:uuid"`
	IsActive        bool       `gorm:"not null;default:false"`
	LockedAt        *time.Time
	CreatedBy       uuid.UUID `gorm:"type:uuid;not null"`
	UpdatedBy       uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

func (DocumentDTO) TableName() string {
	return "documents"
}

// GroupDTO is the row of the document_groups table.
type GroupDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null"`
	DocumentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	SortOrder  int       `gorm:"not null;default:0"`
}

func (GroupDTO) TableName() string {
	return "document_groups"
}

// LineItemDTO is the row of the document_line_items table.
type LineItemDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID       `gorm:"type:uuid;not null"`
	DocumentID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	GroupID      *uuid.UUID      `gorm:"type:uuid"`
	ParentItemID *uuid.UUID      `gorm:"type:uuid"`
	ProductName  string          `gorm:"type:varchar(255);not null"`
	Quantity     decimal.Decimal `gorm:"type:numeric(12,3);not null;default:0"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Subtotal     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Attributes   datatypes.JSON  `gorm:"type:jsonb"`
	Remark       string          `gorm:"type:text"`
	SortOrder    int             `gorm:"not null;default:0"`
}

func (LineItemDTO) TableName() string {
	return "document_line_items"
}

func fromDomain(doc *document.Document) DocumentDTO {
	dto := DocumentDTO{
		ID:             doc.ID().Bytes(),
		TenantID:       doc.TenantID().Bytes(),
		Category:       string(doc.Category()),
		Status:         string(doc.Status()),
		Number:         doc.Number(),
		Title:          doc.Title(),
		TotalAmount:    mustDecimal(doc.Summary().TotalAmount()),
		DiscountAmount: mustDecimal(doc.Summary().DiscountAmount()),
		FinalAmount:    mustDecimal(doc.Summary().FinalAmount()),
		ValidUntil:     doc.ValidUntil(),
		LockedAt:       doc.LockedAt(),
		CreatedBy:      doc.CreatedBy().Bytes(),
		UpdatedBy:      doc.UpdatedBy().Bytes(),
		CreatedAt:      doc.CreatedAt(),
		UpdatedAt:      doc.UpdatedAt(),
	}

	if v := doc.VersionInfo(); v != nil {
		version := v.Version()
		root := v.LineageRootID().Bytes()
		dto.Version = &version
		dto.LineageRootID = &root
		dto.ParentVersionID = kernel.OptionalBytes(v.ParentVersionID())
		dto.IsActive = v.IsActive()
	}
	return dto
}

func toDomain(dto DocumentDTO) (*document.Document, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}
	updatedBy, err := kernel.UUIDFromBytes(dto.UpdatedBy[:])
	if err != nil {
		return nil, err
	}
	summary, err := document.NewSummary(
		dto.TotalAmount.StringFixed(amountScale),
		dto.DiscountAmount.StringFixed(amountScale),
		dto.FinalAmount.StringFixed(amountScale),
	)
	if err != nil {
		return nil, err
	}

	var version *document.VersionInfo
	if dto.Version != nil && dto.LineageRootID != nil {
		root, rootErr := kernel.UUIDFromBytes(dto.LineageRootID[:])
		if rootErr != nil {
			return nil, rootErr
		}
		parent, parentErr := kernel.OptionalFromBytes(dto.ParentVersionID)
		if parentErr != nil {
			return nil, parentErr
		}
		v, vErr := document.RestoreVersionInfo(*dto.Version, root, parent, dto.IsActive)
		if vErr != nil {
			return nil, vErr
		}
		version = &v
	}

	return document.RestoreDocument(document.Snapshot{
		ID:         id,
		TenantID:   tenantID,
		Category:   lifecycle.Category(dto.Category),
		Status:     lifecycle.Status(dto.Status),
		Number:     dto.Number,
		Title:      dto.Title,
		Summary:    summary,
		ValidUntil: dto.ValidUntil,
		Version:    version,
		LockedAt:   dto.LockedAt,
		CreatedBy:  createdBy,
		UpdatedBy:  updatedBy,
		CreatedAt:  dto.CreatedAt,
		UpdatedAt:  dto.UpdatedAt,
	})
}

func groupFromDomain(g *document.Group) GroupDTO {
	return GroupDTO{
		ID:         g.ID().Bytes(),
		TenantID:   g.TenantID().Bytes(),
		DocumentID: g.DocumentID().Bytes(),
		Name:       g.Name(),
		SortOrder:  g.SortOrder(),
	}
}

func groupToDomain(dto GroupDTO) (*document.Group, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	documentID, err := kernel.UUIDFromBytes(dto.DocumentID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	return document.NewGroup(id, documentID, tenantID, dto.Name, dto.SortOrder)
}

func lineItemFromDomain(item *document.LineItem) LineItemDTO {
	data := item.Data()
	return LineItemDTO{
		ID:           item.ID().Bytes(),
		TenantID:     item.TenantID().Bytes(),
		DocumentID:   item.DocumentID().Bytes(),
		GroupID:      kernel.OptionalBytes(item.GroupID()),
		ParentItemID: kernel.OptionalBytes(item.ParentItemID()),
		ProductName:  data.ProductName,
		Quantity:     mustDecimal(data.Quantity),
		UnitPrice:    mustDecimal(data.UnitPrice),
		Subtotal:     mustDecimal(data.Subtotal),
		Attributes:   datatypes.JSON(data.Attributes),
		Remark:       data.Remark,
		SortOrder:    data.SortOrder,
	}
}

func lineItemToDomain(dto LineItemDTO) (*document.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	documentID, err := kernel.UUIDFromBytes(dto.DocumentID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	groupID, err := kernel.OptionalFromBytes(dto.GroupID)
	if err != nil {
		return nil, err
	}
	parentID, err := kernel.OptionalFromBytes(dto.ParentItemID)
	if err != nil {
		return nil, err
	}

	var attributes []byte
	if len(dto.Attributes) > 0 {
		attributes = []byte(dto.Attributes)
	}

	return document.NewLineItem(id, documentID, tenantID, groupID, parentID, document.LineItemData{
		ProductName: dto.ProductName,
		Quantity:    dto.Quantity.StringFixed(quantityScale),
		UnitPrice:   dto.UnitPrice.StringFixed(amountScale),
		Subtotal:    dto.Subtotal.StringFixed(amountScale),
		Attributes:  attributes,
		Remark:      dto.Remark,
		SortOrder:   dto.SortOrder,
	})
}

// mustDecimal parses an amount the domain has already validated.
func mustDecimal(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}
