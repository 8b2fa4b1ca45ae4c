package commands_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"docflow/internal/core/application/usecases/commands"
	"docflow/internal/core/domain/model/audit"
	"docflow/internal/core/domain/model/document"
	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/domain/model/lifecycle"
	"docflow/internal/core/ports"
	"docflow/internal/pkg/errs"
)

// memStore is an in-memory stand-in for the postgres adapter. A unit of work
// copies the committed state on Begin and swaps it back on Commit, so a failed
// handler leaves the store untouched.
type memStore struct {
	committed *memState

	// failAddLineItems makes the next AddLineItems call fail.
	failAddLineItems error
}

type memState struct {
	docs   map[kernel.UUID]*document.Document
	groups []*document.Group
	items  []*document.LineItem
	events []memEvent
}

type memEvent struct {
	tenantID kernel.UUID
	entry    audit.Entry
}

func newMemStore() *memStore {
	return &memStore{committed: &memState{docs: make(map[kernel.UUID]*document.Document)}}
}

func (s *memStore) Create() commands.UoW {
	return &memUoW{store: s}
}

func (s *memStore) doc(id kernel.UUID) *document.Document {
	return s.committed.docs[id]
}

func (s *memStore) lineage(rootID kernel.UUID) []*document.Document {
	var out []*document.Document
	for _, d := range s.committed.docs {
		if root, err := d.LineageRootID(); err == nil && root.IsEqual(rootID) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].VersionInfo().Version() < out[j].VersionInfo().Version()
	})
	return out
}

func (s *memStore) activeCount(rootID kernel.UUID) int {
	n := 0
	for _, d := range s.lineage(rootID) {
		if d.IsActive() {
			n++
		}
	}
	return n
}

func (s *memStore) contents(documentID kernel.UUID) document.Contents {
	return s.committed.contentsOf(documentID)
}

func (s *memStore) events(documentID kernel.UUID) []audit.Entry {
	var out []audit.Entry
	for _, e := range s.committed.events {
		if e.entry.DocumentID.IsEqual(documentID) {
			out = append(out, e.entry)
		}
	}
	return out
}

func (st *memState) clone() *memState {
	c := &memState{
		docs:   make(map[kernel.UUID]*document.Document, len(st.docs)),
		groups: append([]*document.Group(nil), st.groups...),
		items:  append([]*document.LineItem(nil), st.items...),
		events: append([]memEvent(nil), st.events...),
	}
	for id, d := range st.docs {
		c.docs[id] = copyDocument(d)
	}
	return c
}

func (st *memState) contentsOf(documentID kernel.UUID) document.Contents {
	var c document.Contents
	for _, g := range st.groups {
		if g.DocumentID().IsEqual(documentID) {
			c.Groups = append(c.Groups, g)
		}
	}
	for _, item := range st.items {
		if item.DocumentID().IsEqual(documentID) {
			c.Items = append(c.Items, item)
		}
	}
	return c
}

func copyDocument(d *document.Document) *document.Document {
	c, err := document.RestoreDocument(document.Snapshot{
		ID:         d.ID(),
		TenantID:   d.TenantID(),
		Category:   d.Category(),
		Status:     d.Status(),
		Number:     d.Number(),
		Title:      d.Title(),
		Summary:    d.Summary(),
		ValidUntil: d.ValidUntil(),
		Version:    d.VersionInfo(),
		LockedAt:   d.LockedAt(),
		CreatedBy:  d.CreatedBy(),
		UpdatedBy:  d.UpdatedBy(),
		CreatedAt:  d.CreatedAt(),
		UpdatedAt:  d.UpdatedAt(),
	})
	if err != nil {
		panic(err)
	}
	return c
}

type memUoW struct {
	store *memStore
	tx    *memState
}

func (u *memUoW) Begin(_ context.Context) error {
	if u.tx == nil {
		u.tx = u.store.committed.clone()
	}
	return nil
}

func (u *memUoW) Commit(_ context.Context) error {
	if u.tx == nil {
		return errors.New("no transaction")
	}
	u.store.committed = u.tx
	u.tx = nil
	return nil
}

func (u *memUoW) Rollback(_ context.Context) error {
	if u.tx == nil {
		return errors.New("no transaction")
	}
	u.tx = nil
	return nil
}

func (u *memUoW) LockLineage(_ context.Context, scope kernel.TenantScope, rootID kernel.UUID) error {
	if u.tx == nil {
		return errors.New("no transaction")
	}
	if err := scope.Validate(); err != nil {
		return err
	}
	return rootID.Validate()
}

func (u *memUoW) DocumentRepository() ports.DocumentRepository {
	return &memRepo{uow: u}
}

func (u *memUoW) AuditLog() ports.AuditLog {
	return &memRepo{uow: u}
}

func (u *memUoW) TenantDirectory() ports.TenantDirectory {
	return &memRepo{uow: u}
}

func (u *memUoW) state() *memState {
	if u.tx != nil {
		return u.tx
	}
	return u.store.committed
}

type memRepo struct {
	uow *memUoW
}

func (r *memRepo) Add(_ context.Context, scope kernel.TenantScope, doc *document.Document) error {
	if !doc.BelongsTo(scope) {
		return errs.NewObjectNotFoundError("document", doc.ID().String())
	}
	r.uow.state().docs[doc.ID()] = copyDocument(doc)
	return nil
}

func (r *memRepo) Update(_ context.Context, scope kernel.TenantScope, doc *document.Document) error {
	st := r.uow.state()
	if existing, ok := st.docs[doc.ID()]; !ok || !existing.BelongsTo(scope) {
		return errs.NewObjectNotFoundError("document", doc.ID().String())
	}
	st.docs[doc.ID()] = copyDocument(doc)
	return nil
}

func (r *memRepo) Get(_ context.Context, scope kernel.TenantScope, id kernel.UUID) (*document.Document, error) {
	d, ok := r.uow.state().docs[id]
	if !ok || !d.BelongsTo(scope) {
		return nil, errs.NewObjectNotFoundError("document", id.String())
	}
	return copyDocument(d), nil
}

func (r *memRepo) GetForUpdate(ctx context.Context, scope kernel.TenantScope, id kernel.UUID) (*document.Document, error) {
	return r.Get(ctx, scope, id)
}

func (r *memRepo) ListLineage(_ context.Context, scope kernel.TenantScope, rootID kernel.UUID) ([]*document.Document, error) {
	var out []*document.Document
	for _, d := range r.uow.state().docs {
		root, err := d.LineageRootID()
		if err == nil && d.BelongsTo(scope) && root.IsEqual(rootID) {
			out = append(out, copyDocument(d))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].VersionInfo().Version() < out[j].VersionInfo().Version()
	})
	return out, nil
}

func (r *memRepo) DemoteLineage(ctx context.Context, scope kernel.TenantScope, rootID kernel.UUID, now time.Time) (int64, error) {
	docs, _ := r.ListLineage(ctx, scope, rootID)
	var n int64
	for _, d := range docs {
		if !d.IsActive() {
			continue
		}
		if err := d.Demote(scope.ActorID(), now); err != nil {
			return 0, err
		}
		r.uow.state().docs[d.ID()] = d
		n++
	}
	return n, nil
}

func (r *memRepo) CountActiveInLineage(ctx context.Context, scope kernel.TenantScope, rootID kernel.UUID) (int64, error) {
	docs, _ := r.ListLineage(ctx, scope, rootID)
	var n int64
	for _, d := range docs {
		if d.IsActive() {
			n++
		}
	}
	return n, nil
}

func (r *memRepo) ListExpirable(_ context.Context, scope kernel.TenantScope, asOf time.Time) ([]*document.Document, error) {
	var out []*document.Document
	for _, d := range r.uow.state().docs {
		if d.BelongsTo(scope) && d.Category() == lifecycle.CategoryQuote &&
			d.Status() == lifecycle.QuotePendingCustomer &&
			d.ValidUntil() != nil && d.ValidUntil().Before(asOf) {
			out = append(out, copyDocument(d))
		}
	}
	return out, nil
}

func (r *memRepo) ListTenantsWithExpirable(_ context.Context, asOf time.Time) ([]kernel.UUID, error) {
	seen := make(map[kernel.UUID]struct{})
	var out []kernel.UUID
	for _, d := range r.uow.state().docs {
		if !d.IsExpirable(asOf) {
			continue
		}
		if _, ok := seen[d.TenantID()]; !ok {
			seen[d.TenantID()] = struct{}{}
			out = append(out, d.TenantID())
		}
	}
	return out, nil
}

func (r *memRepo) AddGroups(_ context.Context, _ kernel.TenantScope, groups []*document.Group) error {
	st := r.uow.state()
	st.groups = append(st.groups, groups...)
	return nil
}

func (r *memRepo) AddLineItems(_ context.Context, _ kernel.TenantScope, items []*document.LineItem) error {
	if err := r.uow.store.failAddLineItems; err != nil && len(items) > 0 {
		r.uow.store.failAddLineItems = nil
		return err
	}
	st := r.uow.state()
	known := make(map[kernel.UUID]struct{}, len(st.items))
	for _, item := range st.items {
		known[item.ID()] = struct{}{}
	}
	for _, item := range items {
		if pid := item.ParentItemID(); pid != nil {
			if _, ok := known[*pid]; !ok {
				return errors.New("foreign key violation: parent item inserted after child")
			}
		}
		known[item.ID()] = struct{}{}
		st.items = append(st.items, item)
	}
	return nil
}

func (r *memRepo) GetContents(_ context.Context, _ kernel.TenantScope, documentID kernel.UUID) (document.Contents, error) {
	return r.uow.state().contentsOf(documentID), nil
}

func (r *memRepo) CountLineItems(_ context.Context, _ kernel.TenantScope, documentID kernel.UUID) (int64, error) {
	return int64(len(r.uow.state().contentsOf(documentID).Items)), nil
}

func (r *memRepo) Record(_ context.Context, scope kernel.TenantScope, entry audit.Entry) error {
	st := r.uow.state()
	st.events = append(st.events, memEvent{tenantID: scope.TenantID(), entry: entry})
	return nil
}

func (r *memRepo) History(_ context.Context, scope kernel.TenantScope, documentID kernel.UUID) ([]audit.Entry, error) {
	var out []audit.Entry
	for _, e := range r.uow.state().events {
		if e.tenantID.IsEqual(scope.TenantID()) && e.entry.DocumentID.IsEqual(documentID) {
			out = append(out, e.entry)
		}
	}
	return out, nil
}
