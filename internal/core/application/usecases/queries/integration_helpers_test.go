package queries_test

import (
	"context"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// noopTracker satisfies the aggregate tracker without recording anything.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// startPostgres spins up a throwaway database for one suite and returns
// the GORM handle plus the container for teardown.
func startPostgres(s *suite.Suite) (*postgres.PostgresContainer, *gorm.DB) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	s.Require().NoError(err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)

	return container, db
}

// newTestOrder builds a Pending order with two line items totalling
// 37.45 including shipping and tax.
func newTestOrder(s *suite.Suite, customerID kernel.UUID) *order.Order {
	padThai, err := kernel.NewMoney(1250)
	s.Require().NoError(err)
	springRolls, err := kernel.NewMoney(450)
	s.Require().NoError(err)

	item1, err := order.NewLineItem("Pad Thai", 2, padThai)
	s.Require().NoError(err)
	item2, err := order.NewLineItem("Spring Rolls", 1, springRolls)
	s.Require().NoError(err)

	address, err := order.NewAddress("12 Baker Street", "London", "NW1")
	s.Require().NoError(err)
	shipping, err := kernel.NewMoney(500)
	s.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		customerID,
		[]order.LineItem{item1, item2},
		address,
		order.NewContact("+15550100", "customer@example.com"),
		shipping,
		10,
	)
	s.Require().NoError(err)
	return o
}

// walkOrderToReady accepts and readies a pending order.
func walkOrderToReady(s *suite.Suite, o *order.Order) {
	s.Require().NoError(o.Accept("A-100"))
	s.Require().NoError(o.MarkReady())
}
