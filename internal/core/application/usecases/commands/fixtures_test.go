package commands_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
)

func makeActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()

	act, err := actor.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return act
}

func makeActorWithID(t *testing.T, id kernel.UUID, role actor.Role) actor.Actor {
	t.Helper()

	act, err := actor.NewActor(id, role)
	require.NoError(t, err)
	return act
}

func makePendingOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()

	price, err := kernel.NewMoneyFromFloat(12.50)
	require.NoError(t, err)
	item, err := order.NewLineItem("Pad Thai", 2, price)
	require.NoError(t, err)
	address, err := order.NewAddress("12 Baker Street", "London", "NW1")
	require.NoError(t, err)
	shipping, err := kernel.NewMoneyFromFloat(5.00)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), customerID, []order.LineItem{item}, address,
		order.NewContact("+15550100", "customer@example.com"), shipping, 10)
	require.NoError(t, err)
	return o
}

func makeReadyOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()

	o := makePendingOrder(t, customerID)
	require.NoError(t, o.Accept("A-1"))
	require.NoError(t, o.MarkReady())
	return o
}

func makeReadyTracking(t *testing.T, orderID kernel.UUID) *tracking.Tracking {
	t.Helper()

	tr, err := tracking.NewTracking(orderID)
	require.NoError(t, err)
	require.NoError(t, tr.MarkReady())
	return tr
}

func makeEligibleDriver(t *testing.T, userID kernel.UUID) *driver.Driver {
	t.Helper()

	vehicle, err := driver.NewVehicle("bike", "AB-123", "Cargo One")
	require.NoError(t, err)
	d, err := driver.NewDriver(kernel.NewUUID(), userID, "Sam Porter", "+15550177", vehicle)
	require.NoError(t, err)
	require.NoError(t, d.Approve())
	d.SetOnline(true)
	require.NoError(t, d.SetAvailable(true))
	return d
}
