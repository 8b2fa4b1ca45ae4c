package document

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/domain/model/lifecycle"
	"docflow/internal/pkg/errs"
)

// ErrDocumentIsNotVersioned is returned by lineage operations on orders and leads.
var ErrDocumentIsNotVersioned = errs.NewValueIsInvalidErrorWithCause(
	"category",
	errors.New("document category does not form version lineages"),
)

// Document is the aggregate root for orders, leads and quotes.
type Document struct {
	id         kernel.UUID
	tenantID   kernel.UUID
	category   lifecycle.Category
	status     lifecycle.Status
	number     string
	title      string
	summary    Summary
	validUntil *time.Time
	version    *VersionInfo
	lockedAt   *time.Time
	createdBy  kernel.UUID
	updatedBy  kernel.UUID
	createdAt  time.Time
	updatedAt  time.Time
}

// NewDocument creates a document in its category's initial status. Quotes start
// as the root of a new lineage: version 1, active, their own lineage root.
func NewDocument(
	id kernel.UUID,
	scope kernel.TenantScope,
	category lifecycle.Category,
	number string,
	title string,
	summary Summary,
	validUntil *time.Time,
	now time.Time,
) (*Document, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}

	d := &Document{
		id:         id,
		tenantID:   scope.TenantID(),
		category:   category,
		status:     lifecycle.InitialStatus(category),
		number:     strings.TrimSpace(number),
		title:      strings.TrimSpace(title),
		summary:    summary,
		validUntil: copyTime(validUntil),
		createdBy:  scope.ActorID(),
		updatedBy:  scope.ActorID(),
		createdAt:  now.UTC(),
		updatedAt:  now.UTC(),
	}
	if category.IsVersioned() {
		v := rootVersionInfo(id)
		d.version = &v
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Snapshot is the full persisted state of a document.
type Snapshot struct {
	ID         kernel.UUID
	TenantID   kernel.UUID
	Category   lifecycle.Category
	Status     lifecycle.Status
	Number     string
	Title      string
	Summary    Summary
	ValidUntil *time.Time
	Version    *VersionInfo
	LockedAt   *time.Time
	CreatedBy  kernel.UUID
	UpdatedBy  kernel.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RestoreDocument rebuilds a document from storage. It runs the same validation
// as NewDocument but accepts any status of the category.
func RestoreDocument(s Snapshot) (*Document, error) {
	d := &Document{
		id:         s.ID,
		tenantID:   s.TenantID,
		category:   s.Category,
		status:     s.Status,
		number:     s.Number,
		title:      s.Title,
		summary:    s.Summary,
		validUntil: copyTime(s.ValidUntil),
		version:    s.Version,
		lockedAt:   copyTime(s.LockedAt),
		createdBy:  s.CreatedBy,
		updatedBy:  s.UpdatedBy,
		createdAt:  s.CreatedAt,
		updatedAt:  s.UpdatedAt,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Document) ID() kernel.UUID              { return d.id }
func (d *Document) TenantID() kernel.UUID        { return d.tenantID }
func (d *Document) Category() lifecycle.Category { return d.category }
func (d *Document) Status() lifecycle.Status     { return d.status }
func (d *Document) Number() string               { return d.number }
func (d *Document) Title() string                { return d.title }
func (d *Document) Summary() Summary             { return d.summary }
func (d *Document) ValidUntil() *time.Time       { return copyTime(d.validUntil) }
func (d *Document) LockedAt() *time.Time         { return copyTime(d.lockedAt) }
func (d *Document) CreatedBy() kernel.UUID       { return d.createdBy }
func (d *Document) UpdatedBy() kernel.UUID       { return d.updatedBy }
func (d *Document) CreatedAt() time.Time         { return d.createdAt }
func (d *Document) UpdatedAt() time.Time         { return d.updatedAt }

// VersionInfo returns nil for categories without lineages.
func (d *Document) VersionInfo() *VersionInfo {
	if d.version == nil {
		return nil
	}
	v := *d.version
	return &v
}

// LineageRootID returns the lineage root of a versioned document.
func (d *Document) LineageRootID() (kernel.UUID, error) {
	if d.version == nil {
		return kernel.UUID{}, ErrDocumentIsNotVersioned
	}
	return d.version.lineageRootID, nil
}

func (d *Document) IsActive() bool {
	return d.version != nil && d.version.isActive
}

// BelongsTo reports whether the document lives in the scope's tenant.
func (d *Document) BelongsTo(scope kernel.TenantScope) bool {
	return d.tenantID.IsEqual(scope.TenantID())
}

// TransitionTo moves the document along an edge of its category graph and
// returns the status it left. The document is unchanged on error.
func (d *Document) TransitionTo(to lifecycle.Status, actor kernel.UUID, now time.Time) (lifecycle.Status, error) {
	if err := actor.Validate(); err != nil {
		return "", err
	}
	if err := lifecycle.Validate(d.category, d.status, to); err != nil {
		return "", err
	}

	from := d.status
	d.status = to
	d.touch(actor, now)
	if d.category == lifecycle.CategoryQuote && to == lifecycle.QuoteLocked {
		at := now.UTC()
		d.lockedAt = &at
	}
	return from, nil
}

// IsExpirable reports whether a quote awaiting the customer is past its validity
// deadline. The deadline is exclusive: a quote valid until asOf is not expired.
func (d *Document) IsExpirable(asOf time.Time) bool {
	return d.category == lifecycle.CategoryQuote &&
		d.status == lifecycle.QuotePendingCustomer &&
		d.validUntil != nil &&
		d.validUntil.Before(asOf)
}

// Demote clears the active flag. Callers hold the lineage lock.
func (d *Document) Demote(actor kernel.UUID, now time.Time) error {
	if d.version == nil {
		return ErrDocumentIsNotVersioned
	}
	if d.version.isActive {
		d.version.isActive = false
		d.touch(actor, now)
	}
	return nil
}

// Promote sets the active flag. Callers demote the rest of the lineage first
// inside the same transaction.
func (d *Document) Promote(actor kernel.UUID, now time.Time) error {
	if d.version == nil {
		return ErrDocumentIsNotVersioned
	}
	d.version.isActive = true
	d.touch(actor, now)
	return nil
}

// Fork builds the next version of a quote: version+1, same lineage root, parent
// set to d, active, draft. The number gets a "-V<version>" suffix so every
// version carries its own; pricing totals and the title are copied verbatim.
// d itself is not modified.
func (d *Document) Fork(newID kernel.UUID, actor kernel.UUID, now time.Time) (*Document, error) {
	if d.version == nil {
		return nil, ErrDocumentIsNotVersioned
	}
	if err := newID.Validate(); err != nil {
		return nil, err
	}
	if newID.IsEqual(d.id) {
		return nil, errs.NewValueIsInvalidError("new version id equals source id")
	}

	parent := d.id
	forked := &Document{
		id:         newID,
		tenantID:   d.tenantID,
		category:   d.category,
		status:     lifecycle.InitialStatus(d.category),
		number:     versionNumber(d.number, d.version.version+1),
		title:      d.title,
		summary:    d.summary,
		validUntil: copyTime(d.validUntil),
		version: &VersionInfo{
			version:         d.version.version + 1,
			lineageRootID:   d.version.lineageRootID,
			parentVersionID: &parent,
			isActive:        true,
		},
		createdBy: actor,
		updatedBy: actor,
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
	}
	if err := forked.Validate(); err != nil {
		return nil, err
	}
	return forked, nil
}

// versionNumber replaces any "-V<n>" suffix of number with the given version.
// An empty number stays empty.
func versionNumber(number string, version int) string {
	if number == "" {
		return ""
	}
	if i := strings.LastIndex(number, "-V"); i > 0 && isDigits(number[i+2:]) {
		number = number[:i]
	}
	return number + "-V" + strconv.Itoa(version)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Validate checks the aggregate's structural invariants.
func (d *Document) Validate() error {
	if err := d.id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	if err := d.tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	graph, err := lifecycle.GraphFor(d.category)
	if err != nil {
		return err
	}
	if err = graph.ValidateStatus(d.status); err != nil {
		return err
	}
	if err = d.summary.Validate(); err != nil {
		return err
	}
	if d.category.IsVersioned() != (d.version != nil) {
		return errs.NewValueIsInvalidErrorWithCause(
			"version",
			fmt.Errorf("%s documents must%s carry version info", d.category, negate(d.category.IsVersioned())),
		)
	}
	if d.version != nil {
		if err = d.version.Validate(); err != nil {
			return err
		}
		if d.version.parentVersionID != nil && d.version.parentVersionID.IsEqual(d.id) {
			return errs.NewValueIsInvalidError("document cannot be its own parent version")
		}
		if d.version.version == 1 && !d.version.lineageRootID.IsEqual(d.id) {
			return errs.NewValueIsInvalidError("root version must be its own lineage root")
		}
	}
	return nil
}

func (d *Document) touch(actor kernel.UUID, now time.Time) {
	d.updatedBy = actor
	d.updatedAt = now.UTC()
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func negate(b bool) string {
	if b {
		return ""
	}
	return " not"
}
