package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
)

func TestUpdateDriverLocationCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	userID := kernel.NewUUID()
	d := makeEligibleDriver(t, userID)
	tr := makeReadyTracking(t, kernel.NewUUID())

	cmd, err := commands.NewUpdateDriverLocationCommand(
		makeActorWithID(t, userID, actor.RoleDriver), 51.5007, -0.1246, "Westminster Bridge")
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	trackingRepo := new(MockTrackingRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("GetByUserID", mock.Anything, userID).Return(d, nil).Once(),
		driverRepo.On("Update", mock.Anything, d).Return(nil).Once(),
		uow.On("TrackingRepository").Return(trackingRepo).Once(),
		trackingRepo.On("GetActiveByDriver", mock.Anything, d.ID()).
			Return([]*tracking.Tracking{tr}, nil).Once(),
		trackingRepo.On("Update", mock.Anything, tr).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)
	uow.On("Rollback", ctx).Return(nil).Once()

	stream := new(RecordingStream)
	presence := NewFakePresence()

	h := commands.NewUpdateDriverLocationCommandHandler(factory, presence, stream)
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, d.Location())
	assert.InDelta(t, 51.5007, d.Location().Lat(), 1e-9)
	require.NotNil(t, tr.Location())
	assert.Equal(t, "Westminster Bridge", tr.Location().Address())

	events := stream.Events()
	require.Len(t, events, 1)
	assert.Equal(t, tr.OrderID(), events[0].OrderID)
	assert.Equal(t, "driver-location-update", events[0].Event)

	online, err := presence.IsOnline(ctx, d.ID())
	require.NoError(t, err)
	assert.True(t, online)

	driverRepo.AssertExpectations(t)
	trackingRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateDriverLocationCommandHandler_Handle_NoActiveDeliveries(t *testing.T) {
	ctx := context.Background()
	userID := kernel.NewUUID()
	d := makeEligibleDriver(t, userID)

	cmd, err := commands.NewUpdateDriverLocationCommand(
		makeActorWithID(t, userID, actor.RoleDriver), 40.7580, -73.9855, "")
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	driverRepo.On("GetByUserID", mock.Anything, userID).Return(d, nil).Once()
	driverRepo.On("Update", mock.Anything, d).Return(nil).Once()

	trackingRepo := new(MockTrackingRepository)
	trackingRepo.On("GetActiveByDriver", mock.Anything, d.ID()).
		Return([]*tracking.Tracking{}, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DriverRepository").Return(driverRepo).Once()
	uow.On("TrackingRepository").Return(trackingRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	stream := new(RecordingStream)

	h := commands.NewUpdateDriverLocationCommandHandler(factory, NewFakePresence(), stream)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Empty(t, stream.Events())
	trackingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNewUpdateDriverLocationCommand_RejectsNonDrivers(t *testing.T) {
	_, err := commands.NewUpdateDriverLocationCommand(
		makeActor(t, actor.RoleCustomer), 51.5007, -0.1246, "Westminster Bridge")

	require.Error(t, err)
}
