package driver_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingDriver(t *testing.T) *driver.Driver {
	t.Helper()

	vehicle, err := driver.NewVehicle("scooter", "AB-123", "Vespa")
	require.NoError(t, err)

	d, err := driver.NewDriver(kernel.NewUUID(), kernel.NewUUID(), "Nikolai", "+15551234567", vehicle)
	require.NoError(t, err)
	return d
}

func newApprovedDriver(t *testing.T) *driver.Driver {
	t.Helper()

	d := newPendingDriver(t)
	require.NoError(t, d.Approve())
	return d
}

func TestNewDriver(t *testing.T) {
	t.Run("should register pending offline driver", func(t *testing.T) {
		d := newPendingDriver(t)

		require.NoError(t, d.Validate())
		assert.Equal(t, driver.StatusPending, d.Status())
		assert.False(t, d.IsOnline())
		assert.False(t, d.IsAvailable())
		assert.False(t, d.IsEligible())
		assert.Equal(t, 0, d.DeliveryCount())
	})

	t.Run("should fail without name", func(t *testing.T) {
		vehicle, _ := driver.NewVehicle("bike", "", "")

		_, err := driver.NewDriver(kernel.NewUUID(), kernel.NewUUID(), "", "+15551234567", vehicle)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with unconstructed vehicle", func(t *testing.T) {
		var vehicle driver.Vehicle

		_, err := driver.NewDriver(kernel.NewUUID(), kernel.NewUUID(), "Nikolai", "+15551234567", vehicle)

		require.Error(t, err)
	})
}

func TestDriverApprovalLifecycle(t *testing.T) {
	t.Run("admin should approve a pending driver", func(t *testing.T) {
		d := newPendingDriver(t)

		require.NoError(t, d.Approve())

		assert.Equal(t, driver.StatusApproved, d.Status())
	})

	t.Run("admin should reject a pending driver", func(t *testing.T) {
		d := newPendingDriver(t)

		require.NoError(t, d.Reject())

		assert.Equal(t, driver.StatusRejected, d.Status())
	})

	t.Run("rejected driver cannot be approved", func(t *testing.T) {
		d := newPendingDriver(t)
		require.NoError(t, d.Reject())

		err := d.Approve()

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("suspension forces driver out of the pool", func(t *testing.T) {
		d := newApprovedDriver(t)
		d.SetOnline(true)
		require.NoError(t, d.SetAvailable(true))

		require.NoError(t, d.Suspend())

		assert.Equal(t, driver.StatusSuspended, d.Status())
		assert.False(t, d.IsOnline())
		assert.False(t, d.IsAvailable())
	})

	t.Run("suspended driver can be reinstated", func(t *testing.T) {
		d := newApprovedDriver(t)
		require.NoError(t, d.Suspend())

		require.NoError(t, d.Approve())

		assert.Equal(t, driver.StatusApproved, d.Status())
	})
}

func TestDriverAvailability(t *testing.T) {
	t.Run("approved online driver can opt into the pool", func(t *testing.T) {
		d := newApprovedDriver(t)
		d.SetOnline(true)

		require.NoError(t, d.SetAvailable(true))

		assert.True(t, d.IsEligible())
	})

	t.Run("offline driver cannot opt in", func(t *testing.T) {
		d := newApprovedDriver(t)

		err := d.SetAvailable(true)

		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("pending driver cannot opt in", func(t *testing.T) {
		d := newPendingDriver(t)
		d.SetOnline(true)

		err := d.SetAvailable(true)

		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("going offline clears availability", func(t *testing.T) {
		d := newApprovedDriver(t)
		d.SetOnline(true)
		require.NoError(t, d.SetAvailable(true))

		d.SetOnline(false)

		assert.False(t, d.IsAvailable())
		assert.False(t, d.IsEligible())
	})
}

func TestDriverCompleteDelivery(t *testing.T) {
	t.Run("should increment counter and keep availability", func(t *testing.T) {
		d := newApprovedDriver(t)
		d.SetOnline(true)
		require.NoError(t, d.SetAvailable(true))

		d.CompleteDelivery()

		assert.Equal(t, 1, d.DeliveryCount())
		assert.True(t, d.IsAvailable())
	})
}

func TestDriverMoveTo(t *testing.T) {
	t.Run("should record reported position", func(t *testing.T) {
		d := newApprovedDriver(t)
		loc, err := kernel.NewGeoLocation(48.85, 2.35, "Paris")
		require.NoError(t, err)

		require.NoError(t, d.MoveTo(loc))

		require.NotNil(t, d.Location())
		assert.InDelta(t, 48.85, d.Location().Lat(), 0.0001)
	})

	t.Run("should reject unconstructed location", func(t *testing.T) {
		d := newApprovedDriver(t)
		var loc kernel.GeoLocation

		require.Error(t, d.MoveTo(loc))
	})
}

func TestApprovalStatusFromString(t *testing.T) {
	t.Run("should parse wire names", func(t *testing.T) {
		s, err := driver.ApprovalStatusFromString("Suspended")

		require.NoError(t, err)
		assert.Equal(t, driver.StatusSuspended, s)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := driver.ApprovalStatusFromString("Banned")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
