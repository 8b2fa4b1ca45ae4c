package http

import (
	"encoding/json"
	"time"

	"docflow/internal/core/application/usecases/commands"
	"docflow/internal/core/application/usecases/queries"
	"docflow/internal/core/domain/model/document"
	"docflow/internal/core/domain/model/kernel"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type LineItem struct {
	Group       string          `json:"group,omitempty"`
	ProductName string          `json:"productName"`
	Quantity    string          `json:"quantity,omitempty"`
	UnitPrice   string          `json:"unitPrice,omitempty"`
	Subtotal    string          `json:"subtotal,omitempty"`
	Attributes  json.RawMessage `json:"attributes,omitempty"`
	Remark      string          `json:"remark,omitempty"`
	SortOrder   int             `json:"sortOrder,omitempty"`
	Children    []LineItem      `json:"children,omitempty"`
}

type NewDocument struct {
	ID             string     `json:"id,omitempty"`
	Category       string     `json:"category"`
	Number         string     `json:"number"`
	Title          string     `json:"title"`
	TotalAmount    string     `json:"totalAmount,omitempty"`
	DiscountAmount string     `json:"discountAmount,omitempty"`
	FinalAmount    string     `json:"finalAmount,omitempty"`
	ValidUntil     *time.Time `json:"validUntil,omitempty"`
	Items          []LineItem `json:"items,omitempty"`
}

type NewTransition struct {
	To     string `json:"to"`
	Reason string `json:"reason,omitempty"`
}

type SweepResult struct {
	Expired int `json:"expired"`
}

type Document struct {
	ID              string     `json:"id"`
	Category        string     `json:"category"`
	Status          string     `json:"status"`
	Number          string     `json:"number"`
	Title           string     `json:"title"`
	TotalAmount     string     `json:"totalAmount"`
	DiscountAmount  string     `json:"discountAmount"`
	FinalAmount     string     `json:"finalAmount"`
	ValidUntil      *time.Time `json:"validUntil,omitempty"`
	Version         *int       `json:"version,omitempty"`
	LineageRootID   *string    `json:"lineageRootId,omitempty"`
	ParentVersionID *string    `json:"parentVersionId,omitempty"`
	IsActive        *bool      `json:"isActive,omitempty"`
	LockedAt        *time.Time `json:"lockedAt,omitempty"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type Transitions struct {
	Allowed    bool     `json:"allowed"`
	Successors []string `json:"successors"`
}

type LineageVersion struct {
	ID              string    `json:"id"`
	Version         int       `json:"version"`
	ParentVersionID *string   `json:"parentVersionId,omitempty"`
	IsActive        bool      `json:"isActive"`
	Status          string    `json:"status"`
	FinalAmount     string    `json:"finalAmount"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type HistoryEvent struct {
	Action     string    `json:"action"`
	FromStatus string    `json:"fromStatus,omitempty"`
	ToStatus   string    `json:"toStatus"`
	ActorID    string    `json:"actorId"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func toDocument(doc *document.Document) Document {
	out := Document{
		ID:             doc.ID().String(),
		Category:       string(doc.Category()),
		Status:         string(doc.Status()),
		Number:         doc.Number(),
		Title:          doc.Title(),
		TotalAmount:    doc.Summary().TotalAmount(),
		DiscountAmount: doc.Summary().DiscountAmount(),
		FinalAmount:    doc.Summary().FinalAmount(),
		ValidUntil:     doc.ValidUntil(),
		LockedAt:       doc.LockedAt(),
		UpdatedAt:      doc.UpdatedAt(),
	}
	if v := doc.VersionInfo(); v != nil {
		version := v.Version()
		root := v.LineageRootID().String()
		active := v.IsActive()
		out.Version = &version
		out.LineageRootID = &root
		out.ParentVersionID = optionalString(v.ParentVersionID())
		out.IsActive = &active
	}
	return out
}

func toLineItemInputs(items []LineItem) []commands.LineItemInput {
	if len(items) == 0 {
		return nil
	}
	out := make([]commands.LineItemInput, 0, len(items))
	for _, item := range items {
		out = append(out, commands.LineItemInput{
			Group: item.Group,
			Data: document.LineItemData{
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Subtotal:    item.Subtotal,
				Attributes:  item.Attributes,
				Remark:      item.Remark,
				SortOrder:   item.SortOrder,
			},
			Children: toLineItemInputs(item.Children),
		})
	}
	return out
}

func toLineage(versions []queries.GetLineageQueryResponse) []LineageVersion {
	out := make([]LineageVersion, len(versions))
	for i, v := range versions {
		out[i] = LineageVersion{
			ID:              v.ID.String(),
			Version:         v.Version,
			ParentVersionID: optionalString(v.ParentVersionID),
			IsActive:        v.IsActive,
			Status:          string(v.Status),
			FinalAmount:     v.FinalAmount,
			UpdatedAt:       v.UpdatedAt,
		}
	}
	return out
}

func toHistory(events []queries.GetDocumentHistoryQueryResponse) []HistoryEvent {
	out := make([]HistoryEvent, len(events))
	for i, e := range events {
		out[i] = HistoryEvent{
			Action:     string(e.Action),
			FromStatus: string(e.FromStatus),
			ToStatus:   string(e.ToStatus),
			ActorID:    e.ActorID.String(),
			Reason:     e.Reason,
			OccurredAt: e.OccurredAt,
		}
	}
	return out
}

func optionalString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
