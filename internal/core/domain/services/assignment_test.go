package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
)

func makeEligibleDriver(t *testing.T) *driver.Driver {
	t.Helper()

	vehicle, err := driver.NewVehicle("bike", "AB-123", "Cargo One")
	require.NoError(t, err)
	d, err := driver.NewDriver(kernel.NewUUID(), kernel.NewUUID(), "Sam", "+15550100", vehicle)
	require.NoError(t, err)
	require.NoError(t, d.Approve())
	d.SetOnline(true)
	require.NoError(t, d.SetAvailable(true))
	return d
}

func makeReadyOrderWithTracking(t *testing.T) (*order.Order, *tracking.Tracking) {
	t.Helper()

	o := makeOrder(t, kernel.NewUUID())
	require.NoError(t, o.Confirm())
	require.NoError(t, o.Accept("A-1"))
	require.NoError(t, o.MarkReady())

	tr, err := tracking.NewTracking(o.ID())
	require.NoError(t, err)
	require.NoError(t, tr.MarkReady())
	return o, tr
}

func Test_DriverAssignment_Assign(t *testing.T) {
	assignment := NewDriverAssignment()

	t.Run("should bind an eligible driver to order and tracking", func(t *testing.T) {
		o, tr := makeReadyOrderWithTracking(t)
		d := makeEligibleDriver(t)

		err := assignment.Assign(o, tr, d)
		require.NoError(t, err)

		require.NotNil(t, o.Driver())
		assert.True(t, o.Driver().IsEqual(d.ID()))
		require.NotNil(t, tr.Driver())
		assert.True(t, tr.Driver().IsEqual(d.ID()))
		assert.Equal(t, "Sam", tr.DriverName())
	})

	t.Run("should reject an offline driver", func(t *testing.T) {
		o, tr := makeReadyOrderWithTracking(t)
		d := makeEligibleDriver(t)
		d.SetOnline(false)

		err := assignment.Assign(o, tr, d)
		assert.ErrorIs(t, err, driver.ErrDriverNotEligible)
		assert.Nil(t, o.Driver())
	})

	t.Run("should reject when another driver is already bound", func(t *testing.T) {
		o, tr := makeReadyOrderWithTracking(t)
		first := makeEligibleDriver(t)
		second := makeEligibleDriver(t)

		require.NoError(t, assignment.Assign(o, tr, first))

		err := assignment.Assign(o, tr, second)
		assert.ErrorIs(t, err, tracking.ErrDriverAlreadyAssigned)
		assert.True(t, o.Driver().IsEqual(first.ID()))
	})

	t.Run("should reject when the order is not ready", func(t *testing.T) {
		o := makeOrder(t, kernel.NewUUID())
		tr, err := tracking.NewTracking(o.ID())
		require.NoError(t, err)
		d := makeEligibleDriver(t)

		err = assignment.Assign(o, tr, d)
		assert.Error(t, err)
	})
}
