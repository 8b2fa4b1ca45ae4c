package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "docflow/internal/adapters/out/postgres"
	"docflow/internal/core/application/usecases/commands"
	"docflow/internal/core/domain/model/document"
	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/domain/model/lifecycle"
	"docflow/internal/core/domain/services"
	"docflow/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type commandFactory struct {
	inner *postgres_adapter.GormUnitOfWorkFactory
}

func (f commandFactory) Create() commands.UoW {
	return f.inner.Create()
}

// UnitOfWorkIntegrationTestSuite runs the unit of work against a real
// PostgreSQL so transaction boundaries and lineage locks are exercised.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres_adapter.GormUnitOfWorkFactory
	scope     kernel.TenantScope
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(ctx, db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE documents, document_groups, document_line_items, lifecycle_events").Error
	suite.Require().NoError(err)

	suite.scope, err = kernel.NewTenantScope(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newQuote() *document.Document {
	doc, err := document.NewDocument(kernel.NewUUID(), suite.scope, lifecycle.CategoryQuote,
		"Q-1", "Kitchen", document.ZeroSummary(), nil, time.Now().UTC())
	suite.Require().NoError(err)
	return doc
}

func (suite *UnitOfWorkIntegrationTestSuite) countDocuments() int64 {
	var count int64
	suite.Require().NoError(suite.db.Table("documents").Count(&count).Error)
	return count
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DocumentRepository().Add(ctx, suite.scope, suite.newQuote()))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal(int64(1), suite.countDocuments())
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DocumentRepository().Add(ctx, suite.scope, suite.newQuote()))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(int64(0), suite.countDocuments())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBeginTwice_KeepsFirstTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DocumentRepository().Add(ctx, suite.scope, suite.newQuote()))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(int64(0), suite.countDocuments())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin() {
	suite.ErrorIs(suite.factory.Create().Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLockLineage_RequiresTransaction() {
	err := suite.factory.Create().LockLineage(context.Background(), suite.scope, kernel.NewUUID())
	suite.ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLockLineage_BlocksSecondWriter() {
	ctx := context.Background()
	root := kernel.NewUUID()

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(first.LockLineage(ctx, suite.scope, root))

	acquired := make(chan error, 1)
	go func() {
		second := suite.factory.Create()
		if err := second.Begin(ctx); err != nil {
			acquired <- err
			return
		}
		defer func() { _ = second.Rollback(ctx) }()
		acquired <- second.LockLineage(ctx, suite.scope, root)
	}()

	select {
	case err := <-acquired:
		suite.Failf("lock acquired while held", "err: %v", err)
	case <-time.After(300 * time.Millisecond):
	}

	suite.Require().NoError(first.Commit(ctx))

	select {
	case err := <-acquired:
		suite.NoError(err)
	case <-time.After(5 * time.Second):
		suite.Fail("lock not released by commit")
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLockLineage_OtherLineagesDoNotContend() {
	ctx := context.Background()

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	defer func() { _ = first.Rollback(ctx) }()
	suite.Require().NoError(first.LockLineage(ctx, suite.scope, kernel.NewUUID()))

	second := suite.factory.Create()
	suite.Require().NoError(second.Begin(ctx))
	defer func() { _ = second.Rollback(ctx) }()

	lockCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	suite.NoError(second.LockLineage(lockCtx, suite.scope, kernel.NewUUID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestSecondActiveVersion_RejectedByStorage() {
	ctx := context.Background()
	q1 := suite.newQuote()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	suite.Require().NoError(uow.DocumentRepository().Add(ctx, suite.scope, q1))

	q2, err := q1.Fork(kernel.NewUUID(), suite.scope.ActorID(), time.Now().UTC())
	suite.Require().NoError(err)

	err = uow.DocumentRepository().Add(ctx, suite.scope, q2)
	suite.ErrorIs(err, errs.ErrInvariantViolation)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentVersions_LeaveExactlyOneActive() {
	ctx := context.Background()
	factory := commandFactory{inner: suite.factory}

	create, err := commands.NewCreateDocumentCommand(suite.scope, kernel.NewUUID(), lifecycle.CategoryQuote,
		"Q-7", "Lounge", document.ZeroSummary(), nil,
		[]commands.LineItemInput{{Group: "Lounge", Data: document.LineItemData{ProductName: "Shutter", Quantity: "2"}}})
	suite.Require().NoError(err)
	q1, err := commands.NewCreateDocumentCommandHandler(factory, nil).Handle(ctx, create)
	suite.Require().NoError(err)

	handler := commands.NewCreateVersionCommandHandler(factory, services.NewVersionCloner(kernel.NewUUID), nil, nil)
	activate := commands.NewActivateVersionCommandHandler(factory, nil, nil)

	var wg sync.WaitGroup
	errCh := make(chan error, 16)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, cmdErr := commands.NewCreateVersionCommand(suite.scope, q1.ID())
			if cmdErr != nil {
				errCh <- cmdErr
				return
			}
			if _, hErr := handler.Handle(ctx, cmd); hErr != nil {
				errCh <- hErr
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, cmdErr := commands.NewActivateVersionCommand(suite.scope, q1.ID())
			if cmdErr != nil {
				errCh <- cmdErr
				return
			}
			if _, hErr := activate.Handle(ctx, cmd); hErr != nil {
				errCh <- hErr
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for hErr := range errCh {
		suite.NoError(hErr)
	}

	var total, active int64
	suite.Require().NoError(suite.db.Table("documents").
		Where("lineage_root_id = ?", q1.ID().Bytes()).Count(&total).Error)
	suite.Require().NoError(suite.db.Table("documents").
		Where("lineage_root_id = ? AND is_active", q1.ID().Bytes()).Count(&active).Error)
	suite.Equal(int64(9), total)
	suite.Equal(int64(1), active)

	var items int64
	suite.Require().NoError(suite.db.Table("document_line_items").Count(&items).Error)
	suite.Equal(int64(9), items)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
