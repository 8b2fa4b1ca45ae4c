package commands_test

import (
	"testing"

	"docflow/internal/core/application/usecases/commands"
	"docflow/internal/core/domain/model/document"
	"docflow/internal/core/domain/services"
	"docflow/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateVersionCommandHandler_Handle_LocksBeforeDemoting(t *testing.T) {
	ctx := t.Context()
	scope := newScope(t)
	source := newQuote(t, scope)

	cmd, err := commands.NewCreateVersionCommand(scope, source.ID())
	require.NoError(t, err)

	repo := new(MockDocumentRepository)
	auditLog := new(MockAuditLog)
	metrics := new(MockLifecycleMetrics)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DocumentRepository").Return(repo).Once(),
		repo.On("Get", ctx, scope, source.ID()).Return(source, nil).Once(),
		uow.On("LockLineage", ctx, scope, source.ID()).Return(nil).Once(),
		repo.On("GetContents", ctx, scope, source.ID()).Return(document.Contents{}, nil).Once(),
		repo.On("DemoteLineage", ctx, scope, source.ID(), mock.Anything).Return(int64(1), nil).Once(),
		repo.On("Add", ctx, scope, mock.AnythingOfType("*document.Document")).Return(nil).Once(),
		repo.On("AddGroups", ctx, scope, mock.Anything).Return(nil).Once(),
		repo.On("AddLineItems", ctx, scope, mock.Anything).Return(nil).Twice(),
		repo.On("CountActiveInLineage", ctx, scope, source.ID()).Return(int64(1), nil).Once(),
		uow.On("AuditLog").Return(auditLog).Once(),
		auditLog.On("Record", ctx, scope, mock.Anything).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	metrics.On("VersionCreated").Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateVersionCommandHandler(factory, services.NewVersionCloner(nil), metrics, nil)
	forked, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, 2, forked.VersionInfo().Version())
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestCreateVersionCommandHandler_Handle_SecondActiveRollsBack(t *testing.T) {
	ctx := t.Context()
	scope := newScope(t)
	source := newQuote(t, scope)

	cmd, err := commands.NewCreateVersionCommand(scope, source.ID())
	require.NoError(t, err)

	repo := new(MockDocumentRepository)
	metrics := new(MockLifecycleMetrics)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DocumentRepository").Return(repo).Once()
	repo.On("Get", ctx, scope, source.ID()).Return(source, nil).Once()
	uow.On("LockLineage", ctx, scope, source.ID()).Return(nil).Once()
	repo.On("GetContents", ctx, scope, source.ID()).Return(document.Contents{}, nil).Once()
	repo.On("DemoteLineage", ctx, scope, source.ID(), mock.Anything).Return(int64(0), nil).Once()
	repo.On("Add", ctx, scope, mock.Anything).Return(nil).Once()
	repo.On("AddGroups", ctx, scope, mock.Anything).Return(nil).Once()
	repo.On("AddLineItems", ctx, scope, mock.Anything).Return(nil).Twice()
	repo.On("CountActiveInLineage", ctx, scope, source.ID()).Return(int64(2), nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	metrics.On("InvariantViolated").Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewCreateVersionCommandHandler(factory, services.NewVersionCloner(nil), metrics, nil).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvariantViolation)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
	metrics.AssertExpectations(t)
}
