package document

import (
	"encoding/json"
	"strings"

	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/pkg/errs"
)

// LineItem is one priced entry of a document. It optionally belongs to a group
// and optionally hangs under a parent item (an accessory under its product).
type LineItem struct {
	id           kernel.UUID
	documentID   kernel.UUID
	tenantID     kernel.UUID
	groupID      *kernel.UUID
	parentItemID *kernel.UUID
	productName  string
	quantity     string
	unitPrice    string
	subtotal     string
	attributes   json.RawMessage
	remark       string
	sortOrder    int
}

// LineItemData holds the descriptive fields of a line item.
type LineItemData struct {
	ProductName string
	Quantity    string
	UnitPrice   string
	Subtotal    string
	Attributes  json.RawMessage
	Remark      string
	SortOrder   int
}

// NewLineItem creates a line item owned by documentID. groupID and parentItemID
// may be nil; empty amounts default to "0". Quantities allow three decimals,
// prices and subtotals two.
func NewLineItem(
	id, documentID, tenantID kernel.UUID,
	groupID, parentItemID *kernel.UUID,
	data LineItemData,
) (*LineItem, error) {
	item := &LineItem{
		id:           id,
		documentID:   documentID,
		tenantID:     tenantID,
		groupID:      copyID(groupID),
		parentItemID: copyID(parentItemID),
		productName:  strings.TrimSpace(data.ProductName),
		quantity:     defaultAmount(data.Quantity),
		unitPrice:    defaultAmount(data.UnitPrice),
		subtotal:     defaultAmount(data.Subtotal),
		attributes:   copyRaw(data.Attributes),
		remark:       data.Remark,
		sortOrder:    data.SortOrder,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

func (i *LineItem) ID() kernel.UUID            { return i.id }
func (i *LineItem) DocumentID() kernel.UUID    { return i.documentID }
func (i *LineItem) TenantID() kernel.UUID      { return i.tenantID }
func (i *LineItem) GroupID() *kernel.UUID      { return copyID(i.groupID) }
func (i *LineItem) ParentItemID() *kernel.UUID { return copyID(i.parentItemID) }
func (i *LineItem) IsRoot() bool               { return i.parentItemID == nil }

func (i *LineItem) Data() LineItemData {
	return LineItemData{
		ProductName: i.productName,
		Quantity:    i.quantity,
		UnitPrice:   i.unitPrice,
		Subtotal:    i.subtotal,
		Attributes:  copyRaw(i.attributes),
		Remark:      i.remark,
		SortOrder:   i.sortOrder,
	}
}

// CopyTo returns a copy of i owned by another document, with group and parent
// references replaced. Pricing fields are copied unchanged.
func (i *LineItem) CopyTo(newID, documentID kernel.UUID, groupID, parentItemID *kernel.UUID) (*LineItem, error) {
	return NewLineItem(newID, documentID, i.tenantID, groupID, parentItemID, i.Data())
}

func (i *LineItem) Validate() error {
	if err := i.id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("lineItem.id", err)
	}
	if err := i.documentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("lineItem.documentId", err)
	}
	if err := i.tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("lineItem.tenantId", err)
	}
	if i.productName == "" {
		return errs.NewValueIsRequiredError("lineItem.productName")
	}
	if err := validateDecimals(
		quantityField("lineItem.quantity", i.quantity),
		amountField("lineItem.unitPrice", i.unitPrice),
		amountField("lineItem.subtotal", i.subtotal),
	); err != nil {
		return err
	}
	if i.parentItemID != nil && i.parentItemID.IsEqual(i.id) {
		return errs.NewValueIsInvalidError("lineItem.parentItemId")
	}
	if len(i.attributes) > 0 && !json.Valid(i.attributes) {
		return errs.NewValueIsInvalidError("lineItem.attributes")
	}
	return nil
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func copyRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	c := make(json.RawMessage, len(raw))
	copy(c, raw)
	return c
}
