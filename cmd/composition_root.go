package cmd

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/presence"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/jobs"
	"fulfillment/internal/notify"
	"fulfillment/internal/realtime"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	hub        *realtime.Hub
	presence   *presence.RedisPresenceStore
	publisher  *notify.AsyncPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	hub := realtime.NewHub(logger)

	redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
	presenceStore := presence.NewRedisPresenceStore(redisClient)

	httpClient := &nethttp.Client{Timeout: 10 * time.Second}
	channels := []notify.Channel{
		notify.NewRealtimeChannel(hub),
		notify.NewSMSChannel(configs.SMSProviderURL, configs.SMSAPIKey, httpClient),
		notify.NewEmailChannel(
			configs.SMTPHost,
			configs.SMTPPort,
			configs.SMTPFrom,
			configs.SMTPUser,
			configs.SMTPPassword,
			logger,
		),
	}
	prefs := notify.StaticPreferences{Prefs: notification.DefaultPreferences()}
	var dispatcherOpts []notify.DispatcherOption
	if timeout, err := time.ParseDuration(configs.NotifyChannelTimeout); err == nil && timeout > 0 {
		dispatcherOpts = append(dispatcherOpts, notify.WithChannelTimeout(timeout))
	}
	dispatcher := notify.NewDispatcher(notify.NewComposer(), channels, prefs, logger, dispatcherOpts...)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:        hub,
		presence:   presenceStore,
		publisher:  notify.NewAsyncPublisher(dispatcher, logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateAcceptDeliveryCommandHandler() commands.AcceptDeliveryCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptDeliveryCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateUpdateTrackingStatusCommandHandler() commands.UpdateTrackingStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateTrackingStatusCommandHandler(f, c.publisher, c.hub)
}

func (c *CompositionRoot) CreateUpdateDriverAvailabilityCommandHandler() commands.UpdateDriverAvailabilityCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDriverAvailabilityCommandHandler(f, c.presence, c.hub)
}

func (c *CompositionRoot) CreateUpdateDriverLocationCommandHandler() commands.UpdateDriverLocationCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDriverLocationCommandHandler(f, c.presence, c.hub)
}

func (c *CompositionRoot) CreateRegisterDriverCommandHandler() commands.RegisterDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateSetDriverApprovalCommandHandler() commands.SetDriverApprovalCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetDriverApprovalCommandHandler(f, c.presence)
}

func (c *CompositionRoot) CreateGetTrackingQueryHandler() queries.GetTrackingQueryHandler {
	return queries.NewGetTrackingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableDriversQueryHandler() queries.GetAvailableDriversQueryHandler {
	return queries.NewGetAvailableDriversQueryHandler(c.gormDB, c.presence)
}

func (c *CompositionRoot) CreateHandlers() http.Handlers {
	return http.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		AcceptOrder:        c.CreateAcceptOrderCommandHandler(),
		RejectOrder:        c.CreateRejectOrderCommandHandler(),
		CancelOrder:        c.CreateCancelOrderCommandHandler(),
		AcceptDelivery:     c.CreateAcceptDeliveryCommandHandler(),
		UpdateTracking:     c.CreateUpdateTrackingStatusCommandHandler(),
		UpdateAvailability: c.CreateUpdateDriverAvailabilityCommandHandler(),
		UpdateLocation:     c.CreateUpdateDriverLocationCommandHandler(),
		RegisterDriver:     c.CreateRegisterDriverCommandHandler(),
		SetDriverApproval:  c.CreateSetDriverApprovalCommandHandler(),

		GetTracking:         c.CreateGetTrackingQueryHandler(),
		GetCustomerOrders:   c.CreateGetCustomerOrdersQueryHandler(),
		GetAvailableOrders:  c.CreateGetAvailableOrdersQueryHandler(),
		GetAvailableDrivers: c.CreateGetAvailableDriversQueryHandler(),
	}
}

func (c *CompositionRoot) CreateRealtimeHandler() *realtime.Handler {
	return realtime.NewHandler(c.hub, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetAvailableOrdersQueryHandler(),
		c.CreateGetAvailableDriversQueryHandler(),
		c.publisher,
		c.logger,
	)
}

func (c *CompositionRoot) WaitForDeliveries() {
	c.publisher.Wait()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
