package commands_test

import (
	"context"
	"time"

	"docflow/internal/core/application/usecases/commands"
	"docflow/internal/core/domain/model/audit"
	"docflow/internal/core/domain/model/document"
	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/domain/model/lifecycle"
	"docflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockDocumentRepository struct{ mock.Mock }

func (m *MockDocumentRepository) Add(ctx context.Context, scope kernel.TenantScope, doc *document.Document) error {
	return m.Called(ctx, scope, doc).Error(0)
}

func (m *MockDocumentRepository) Update(ctx context.Context, scope kernel.TenantScope, doc *document.Document) error {
	return m.Called(ctx, scope, doc).Error(0)
}

func (m *MockDocumentRepository) Get(ctx context.Context, scope kernel.TenantScope, id kernel.UUID) (*document.Document, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Document), args.Error(1)
}

func (m *MockDocumentRepository) GetForUpdate(ctx context.Context, scope kernel.TenantScope, id kernel.UUID) (*document.Document, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListLineage(ctx context.Context, scope kernel.TenantScope, rootID kernel.UUID) ([]*document.Document, error) {
	args := m.Called(ctx, scope, rootID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*document.Document), args.Error(1)
}

func (m *MockDocumentRepository) DemoteLineage(ctx context.Context, scope kernel.TenantScope, rootID kernel.UUID, now time.Time) (int64, error) {
	args := m.Called(ctx, scope, rootID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) CountActiveInLineage(ctx context.Context, scope kernel.TenantScope, rootID kernel.UUID) (int64, error) {
	args := m.Called(ctx, scope, rootID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) ListExpirable(ctx context.Context, scope kernel.TenantScope, asOf time.Time) ([]*document.Document, error) {
	args := m.Called(ctx, scope, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*document.Document), args.Error(1)
}

func (m *MockDocumentRepository) AddGroups(ctx context.Context, scope kernel.TenantScope, groups []*document.Group) error {
	return m.Called(ctx, scope, groups).Error(0)
}

func (m *MockDocumentRepository) AddLineItems(ctx context.Context, scope kernel.TenantScope, items []*document.LineItem) error {
	return m.Called(ctx, scope, items).Error(0)
}

func (m *MockDocumentRepository) GetContents(ctx context.Context, scope kernel.TenantScope, documentID kernel.UUID) (document.Contents, error) {
	args := m.Called(ctx, scope, documentID)
	return args.Get(0).(document.Contents), args.Error(1)
}

func (m *MockDocumentRepository) CountLineItems(ctx context.Context, scope kernel.TenantScope, documentID kernel.UUID) (int64, error) {
	args := m.Called(ctx, scope, documentID)
	return args.Get(0).(int64), args.Error(1)
}

type MockAuditLog struct{ mock.Mock }

func (m *MockAuditLog) Record(ctx context.Context, scope kernel.TenantScope, entry audit.Entry) error {
	return m.Called(ctx, scope, entry).Error(0)
}

func (m *MockAuditLog) History(ctx context.Context, scope kernel.TenantScope, documentID kernel.UUID) ([]audit.Entry, error) {
	args := m.Called(ctx, scope, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.Entry), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) LockLineage(ctx context.Context, scope kernel.TenantScope, rootID kernel.UUID) error {
	return m.Called(ctx, scope, rootID).Error(0)
}

func (m *MockUoW) DocumentRepository() ports.DocumentRepository {
	return m.Called().Get(0).(ports.DocumentRepository)
}

func (m *MockUoW) AuditLog() ports.AuditLog {
	return m.Called().Get(0).(ports.AuditLog)
}

func (m *MockUoW) TenantDirectory() ports.TenantDirectory {
	return m.Called().Get(0).(ports.TenantDirectory)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockLifecycleMetrics struct{ mock.Mock }

func (m *MockLifecycleMetrics) TransitionApplied(category lifecycle.Category, to lifecycle.Status) {
	m.Called(category, to)
}

func (m *MockLifecycleMetrics) VersionCreated() {
	m.Called()
}

func (m *MockLifecycleMetrics) VersionActivated() {
	m.Called()
}

func (m *MockLifecycleMetrics) DocumentsExpired(n int) {
	m.Called(n)
}

func (m *MockLifecycleMetrics) InvariantViolated() {
	m.Called()
}
