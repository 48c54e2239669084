// Package http is the REST ingress. It parses identifiers and enums at
// the boundary, resolves the acting identity from headers and maps the
// error taxonomy onto status codes. Authentication is an external
// collaborator; this layer trusts the identity headers it receives.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"
)

// Handlers bundles every use case the server exposes.
type Handlers struct {
	CreateOrder        commands.CreateOrderCommandHandler
	AcceptOrder        commands.AcceptOrderCommandHandler
	RejectOrder        commands.RejectOrderCommandHandler
	CancelOrder        commands.CancelOrderCommandHandler
	AcceptDelivery     commands.AcceptDeliveryCommandHandler
	UpdateTracking     commands.UpdateTrackingStatusCommandHandler
	UpdateAvailability commands.UpdateDriverAvailabilityCommandHandler
	UpdateLocation     commands.UpdateDriverLocationCommandHandler
	RegisterDriver     commands.RegisterDriverCommandHandler
	SetDriverApproval  commands.SetDriverApprovalCommandHandler

	GetTracking         queries.GetTrackingQueryHandler
	GetCustomerOrders   queries.GetCustomerOrdersQueryHandler
	GetAvailableOrders  queries.GetAvailableOrdersQueryHandler
	GetAvailableDrivers queries.GetAvailableDriversQueryHandler
}

// Server coordinates between HTTP requests and application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates an HTTP server over the given use case handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes attaches every route to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.POST("/orders/create", s.CreateOrder)
	e.GET("/orders", s.GetCustomerOrders)
	e.PUT("/orders/:id/accept", s.AcceptOrder)
	e.PUT("/orders/:id/reject", s.RejectOrder)
	e.PUT("/orders/:id/cancel", s.CancelOrder)

	e.GET("/tracking/order/:id", s.GetTracking)
	e.PUT("/tracking/order/:id", s.UpdateTracking)

	e.POST("/driver/register", s.RegisterDriver)
	e.POST("/driver/orders/accept", s.AcceptDelivery)
	e.PUT("/driver/orders/status", s.UpdateDriverOrderStatus)
	e.PUT("/driver/availability", s.UpdateAvailability)
	e.PUT("/driver/location", s.UpdateLocation)
	e.GET("/driver/orders/available", s.GetAvailableOrders)

	e.PUT("/admin/drivers/:id/approval", s.SetDriverApproval)
	e.GET("/admin/drivers/available", s.GetAvailableDrivers)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type itemPayload struct {
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type createOrderRequest struct {
	Items            []itemPayload `json:"items"`
	Street           string        `json:"street"`
	City             string        `json:"city"`
	PostalCode       string        `json:"postal_code"`
	ContactPhone     string        `json:"contact_phone"`
	ContactEmail     string        `json:"contact_email"`
	ShippingFeeCents int64         `json:"shipping_fee_cents"`
	TaxRate          float64       `json:"tax_rate"`
}

// CreateOrder handles POST /orders/create.
func (s *Server) CreateOrder(ctx echo.Context) error {
	act, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	items := make([]commands.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, commands.ItemInput{
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		act.ID(),
		items,
		req.Street, req.City, req.PostalCode,
		req.ContactPhone, req.ContactEmail,
		req.ShippingFeeCents,
		req.TaxRate,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"order_id": orderID.String()})
}

// GetCustomerOrders handles GET /orders.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	act, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetCustomerOrdersQuery(act.ID())
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.handlers.GetCustomerOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		response = append(response, map[string]any{
			"id":              o.ID.String(),
			"status":          o.Status,
			"street":          o.Street,
			"city":            o.City,
			"item_count":      o.ItemCount,
			"total_cents":     o.TotalCents,
			"acceptance_code": o.AcceptanceCode,
			"placed_at":       o.PlacedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// AcceptOrder handles PUT /orders/:id/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	act, orderID, err := actorAndOrderID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, act)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.handlers.AcceptOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectOrder handles PUT /orders/:id/reject.
func (s *Server) RejectOrder(ctx echo.Context) error {
	act, orderID, err := actorAndOrderID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRejectOrderCommand(orderID, act)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.handlers.RejectOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles PUT /orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	act, orderID, err := actorAndOrderID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, act)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetTracking handles GET /tracking/order/:id.
func (s *Server) GetTracking(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetTrackingQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	record, err := s.handlers.GetTracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, trackingResponse(record))
}

type updateTrackingRequest struct {
	OrderID string     `json:"order_id"`
	Status  string     `json:"status"`
	Notes   string     `json:"notes"`
	ETA     *time.Time `json:"eta"`
}

// UpdateTracking handles PUT /tracking/order/:id.
func (s *Server) UpdateTracking(ctx echo.Context) error {
	act, orderID, err := actorAndOrderID(ctx)
	if err != nil {
		return err
	}

	var req updateTrackingRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	return s.advanceTracking(ctx, act, orderID, req)
}

// UpdateDriverOrderStatus handles PUT /driver/orders/status. Same use
// case as UpdateTracking; the driver client sends the order id in the
// body instead of the path.
func (s *Server) UpdateDriverOrderStatus(ctx echo.Context) error {
	act, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}

	var req updateTrackingRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	return s.advanceTracking(ctx, act, orderID, req)
}

func (s *Server) advanceTracking(
	ctx echo.Context,
	act actor.Actor,
	orderID kernel.UUID,
	req updateTrackingRequest,
) error {
	target, err := tracking.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewUpdateTrackingStatusCommand(orderID, target, act, req.Notes, req.ETA)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.handlers.UpdateTracking.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type registerDriverRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	VehicleType  string `json:"vehicle_type"`
	VehiclePlate string `json:"vehicle_plate"`
	VehicleModel string `json:"vehicle_model"`
}

// RegisterDriver handles POST /driver/register.
func (s *Server) RegisterDriver(ctx echo.Context) error {
	act, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}

	var req registerDriverRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	driverID := kernel.NewUUID()
	cmd, err := commands.NewRegisterDriverCommand(
		driverID, act,
		req.Name, req.Phone,
		req.VehicleType, req.VehiclePlate, req.VehicleModel,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.handlers.RegisterDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"driver_id": driverID.String()})
}

type acceptDeliveryRequest struct {
	OrderID string `json:"order_id"`
}

// AcceptDelivery handles POST /driver/orders/accept.
func (s *Server) AcceptDelivery(ctx echo.Context) error {
	act, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}

	var req acceptDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewAcceptDeliveryCommand(orderID, act)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.AcceptDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type availabilityRequest struct {
	IsOnline    bool `json:"is_online"`
	IsAvailable bool `json:"is_available"`
}

// UpdateAvailability handles PUT /driver/availability.
func (s *Server) UpdateAvailability(ctx echo.Context) error {
	act, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}

	var req availabilityRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewUpdateDriverAvailabilityCommand(act, req.IsOnline, req.IsAvailable)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.UpdateAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type locationRequest struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// UpdateLocation handles PUT /driver/location.
func (s *Server) UpdateLocation(ctx echo.Context) error {
	act, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}

	var req locationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewUpdateDriverLocationCommand(act, req.Lat, req.Lng, req.Address)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.UpdateLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAvailableOrders handles GET /driver/orders/available.
func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	if _, err := actorFromRequest(ctx); err != nil {
		return err
	}

	orders, err := s.handlers.GetAvailableOrders.Handle(
		ctx.Request().Context(), queries.NewGetAvailableOrdersQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		response = append(response, map[string]any{
			"id":          o.ID.String(),
			"street":      o.Street,
			"city":        o.City,
			"postal_code": o.PostalCode,
			"item_count":  o.ItemCount,
			"total_cents": o.TotalCents,
			"placed_at":   o.PlacedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

type approvalRequest struct {
	Status string `json:"status"`
}

// SetDriverApproval handles PUT /admin/drivers/:id/approval.
func (s *Server) SetDriverApproval(ctx echo.Context) error {
	act, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}

	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid driver id")
	}

	var req approvalRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := driver.ApprovalStatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewSetDriverApprovalCommand(driverID, target, act)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.handlers.SetDriverApproval.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAvailableDrivers handles GET /admin/drivers/available.
func (s *Server) GetAvailableDrivers(ctx echo.Context) error {
	act, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}
	if !act.Is(actor.RoleAdmin) && !act.Is(actor.RoleStaff) {
		return ctx.JSON(http.StatusForbidden, errorResponse{
			Code:    http.StatusForbidden,
			Message: "admin or staff role required",
		})
	}

	drivers, err := s.handlers.GetAvailableDrivers.Handle(
		ctx.Request().Context(), queries.NewGetAvailableDriversQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]map[string]any, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, map[string]any{
			"id":             d.ID.String(),
			"name":           d.Name,
			"phone":          d.Phone,
			"vehicle_kind":   d.VehicleKind,
			"rating":         d.Rating,
			"delivery_count": d.DeliveryCount,
			"lat":            d.Lat,
			"lng":            d.Lng,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

func trackingResponse(record queries.GetTrackingQueryResponse) map[string]any {
	body := map[string]any{
		"order_id":           record.OrderID.String(),
		"status":             record.Status,
		"driver_name":        record.DriverName,
		"driver_phone":       record.DriverPhone,
		"lat":                record.Lat,
		"lng":                record.Lng,
		"location_address":   record.LocationAddress,
		"estimated_delivery": record.EstimatedDelivery,
		"delivered_at":       record.DeliveredAt,
		"notes":              record.Notes,
	}
	if record.DriverID != nil {
		body["driver_id"] = record.DriverID.String()
	}
	return body
}

// actorFromRequest resolves the acting identity from the X-User-ID and
// X-User-Role headers the auth layer sets. Errors are echo HTTP errors
// and must be returned to the framework as-is.
func actorFromRequest(ctx echo.Context) (actor.Actor, error) {
	rawID := ctx.Request().Header.Get("X-User-ID")
	rawRole := ctx.Request().Header.Get("X-User-Role")
	if rawID == "" || rawRole == "" {
		return actor.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing identity headers")
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return actor.Actor{}, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	role, err := actor.RoleFromString(rawRole)
	if err != nil {
		return actor.Actor{}, echo.NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	act, err := actor.NewActor(id, role)
	if err != nil {
		return actor.Actor{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return act, nil
}

func actorAndOrderID(ctx echo.Context) (actor.Actor, kernel.UUID, error) {
	act, err := actorFromRequest(ctx)
	if err != nil {
		return actor.Actor{}, kernel.UUID{}, err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return actor.Actor{}, kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	return act, orderID, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// respondError maps the error taxonomy onto status codes. Anything
// outside the taxonomy is an infrastructure failure.
func respondError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrUnauthorized):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrIllegalTransition),
		errors.Is(err, errs.ErrPreconditionFailed):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, errorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
