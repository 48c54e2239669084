package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/driverrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/trackingrepo"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
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

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.LineItemDTO{},
		&trackingrepo.TrackingDTO{}, &driverrepo.DriverDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_line_items, trackings, drivers").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates isolated unit of
// work instances exposing all three repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.TrackingRepository())
	suite.NotNil(uow1.DriverRepository())
	suite.NotNil(uow2.OrderRepository())
}

// TestUnitOfWork_TransactionLifecycle verifies begin, commit and rollback.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_AcceptanceWorkflow runs the driver acceptance flow across
// all three repositories inside one transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_AcceptanceWorkflow() {
	ctx := context.Background()

	testOrder := createReadyOrder(suite.T())
	testTracking := createReadyTracking(suite.T(), testOrder.ID())
	testDriver := createEligibleDriver(suite.T())

	setupUow := suite.factory.Create()
	suite.Require().NoError(setupUow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(setupUow.TrackingRepository().Add(ctx, testTracking))
	suite.Require().NoError(setupUow.DriverRepository().Add(ctx, testDriver))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	assignment := services.NewDriverAssignment()
	err := assignment.Assign(testOrder, testTracking, testDriver)
	suite.Require().NoError(err)

	err = uow.TrackingRepository().BindDriver(ctx, testTracking)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Update(ctx, testOrder)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Commit(ctx))

	newUow := suite.factory.Create()
	retrievedOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrievedOrder.Driver())
	suite.True(retrievedOrder.Driver().IsEqual(testDriver.ID()))

	retrievedTracking, err := newUow.TrackingRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrievedTracking.Driver())
	suite.Equal(testDriver.Name(), retrievedTracking.DriverName())
}

// TestUnitOfWork_BindDriverLosesRace verifies the conditional driver bind
// rejects a second acceptance after the first one committed.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_BindDriverLosesRace() {
	ctx := context.Background()

	testOrder := createReadyOrder(suite.T())
	testTracking := createReadyTracking(suite.T(), testOrder.ID())
	firstDriver := createEligibleDriver(suite.T())
	secondDriver := createEligibleDriver(suite.T())

	setupUow := suite.factory.Create()
	suite.Require().NoError(setupUow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(setupUow.TrackingRepository().Add(ctx, testTracking))

	winner := suite.factory.Create()
	suite.Require().NoError(testTracking.AssignDriver(firstDriver.ID(), firstDriver.Name(), firstDriver.Phone()))
	suite.Require().NoError(winner.TrackingRepository().BindDriver(ctx, testTracking))

	// The loser loaded the record before the winner committed.
	staleTracking := createReadyTracking(suite.T(), testOrder.ID())
	suite.Require().NoError(staleTracking.AssignDriver(secondDriver.ID(), secondDriver.Name(), secondDriver.Phone()))

	loser := suite.factory.Create()
	err := loser.TrackingRepository().BindDriver(ctx, staleTracking)
	suite.Require().ErrorIs(err, errs.ErrPreconditionFailed)

	final := suite.factory.Create()
	retrieved, err := final.TrackingRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrieved.Driver())
	suite.True(retrieved.Driver().IsEqual(firstDriver.ID()))
}

// TestUnitOfWork_UpdateGuardedConflict verifies the status-guarded order
// update rejects a writer holding a stale status.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_UpdateGuardedConflict() {
	ctx := context.Background()

	testOrder := createReadyOrder(suite.T())
	setupUow := suite.factory.Create()
	suite.Require().NoError(setupUow.OrderRepository().Add(ctx, testOrder))

	// First writer cancels the order.
	first := suite.factory.Create()
	loaded, err := first.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Cancel())
	suite.Require().NoError(first.OrderRepository().UpdateGuarded(ctx, loaded, order.Ready))

	// Second writer still believes the order is Ready.
	suite.Require().NoError(testOrder.Cancel())
	second := suite.factory.Create()
	err = second.OrderRepository().UpdateGuarded(ctx, testOrder, order.Ready)
	suite.Require().ErrorIs(err, errs.ErrPreconditionFailed)
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction across multiple repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createReadyOrder(suite.T())
	testDriver := createEligibleDriver(suite.T())

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.DriverRepository().Add(ctx, testDriver))

	_, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Rollback(ctx))

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err, "Order should not exist after rollback")

	_, err = newUow.DriverRepository().Get(ctx, testDriver.ID())
	suite.Require().Error(err, "Driver should not exist after rollback")
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	order1 := createReadyOrder(suite.T())
	order2 := createReadyOrder(suite.T())

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, order2))

	_, err := uow1.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "UOW1 should see order1")

	_, err = uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "Order1 should persist after commit")

	_, err = newUow.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "Order2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createReadyOrder(suite.T())
	err := uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrievedOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(retrievedOrder.ID().IsEqual(testOrder.ID()))
}

// createReadyOrder creates an order walked to Ready status for testing.
func createReadyOrder(t *testing.T) *order.Order {
	t.Helper()

	price, err := kernel.NewMoney(8999)
	if err != nil {
		t.Fatal(err)
	}
	item, err := order.NewLineItem("family box", 1, price)
	if err != nil {
		t.Fatal(err)
	}
	address, err := order.NewAddress("1 Main St", "Springfield", "12345")
	if err != nil {
		t.Fatal(err)
	}
	shipping, err := kernel.NewMoney(500)
	if err != nil {
		t.Fatal(err)
	}

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{item}, address, order.NewContact("+15550100", "customer@example.com"), shipping, 10)
	if err != nil {
		t.Fatal(err)
	}
	if err := o.Confirm(); err != nil {
		t.Fatal(err)
	}
	if err := o.Accept("A-100"); err != nil {
		t.Fatal(err)
	}
	if err := o.MarkReady(); err != nil {
		t.Fatal(err)
	}
	return o
}

// createReadyTracking creates a tracking record in Ready status.
func createReadyTracking(t *testing.T, orderID kernel.UUID) *tracking.Tracking {
	t.Helper()

	tr, err := tracking.NewTracking(orderID)
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.MarkReady(); err != nil {
		t.Fatal(err)
	}
	return tr
}

// createEligibleDriver creates an approved, online, available driver.
func createEligibleDriver(t *testing.T) *driver.Driver {
	t.Helper()

	vehicle, err := driver.NewVehicle("bike", "AB-123", "Cargo One")
	if err != nil {
		t.Fatal(err)
	}
	d, err := driver.NewDriver(kernel.NewUUID(), kernel.NewUUID(), "Sam", "+15550100", vehicle)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Approve(); err != nil {
		t.Fatal(err)
	}
	d.SetOnline(true)
	if err := d.SetAvailable(true); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
