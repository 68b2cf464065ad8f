// Package http exposes the public REST API: offer quoting and acceptance,
// parcel registration and state, vehicle positions, and the operational
// triggers for batching, the progress sweep and the nightly capacity reset.
package http

import (
	"errors"
	"net/http"
	"time"

	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/application/usecases/queries"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/domain/model/vehicle"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	acceptOfferHandler    commands.AcceptOfferCommandHandler
	registerParcelHandler commands.RegisterParcelCommandHandler
	createJobsHandler     commands.CreateJobsCommandHandler
	advanceJobsHandler    commands.AdvanceJobsCommandHandler
	resetVehiclesHandler  commands.ResetVehiclesCommandHandler

	getParcelHandler          queries.GetParcelQueryHandler
	getVehicleLocationHandler queries.GetVehicleLocationQueryHandler

	pricing ports.PricingClient
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	acceptOfferHandler commands.AcceptOfferCommandHandler,
	registerParcelHandler commands.RegisterParcelCommandHandler,
	createJobsHandler commands.CreateJobsCommandHandler,
	advanceJobsHandler commands.AdvanceJobsCommandHandler,
	resetVehiclesHandler commands.ResetVehiclesCommandHandler,
	getParcelHandler queries.GetParcelQueryHandler,
	getVehicleLocationHandler queries.GetVehicleLocationQueryHandler,
	pricing ports.PricingClient,
) *Server {
	return &Server{
		acceptOfferHandler:        acceptOfferHandler,
		registerParcelHandler:     registerParcelHandler,
		createJobsHandler:         createJobsHandler,
		advanceJobsHandler:        advanceJobsHandler,
		resetVehiclesHandler:      resetVehiclesHandler,
		getParcelHandler:          getParcelHandler,
		getVehicleLocationHandler: getVehicleLocationHandler,
		pricing:                   pricing,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/offers", s.GetOffer)
	api.POST("/offers/:offerID/accept", s.AcceptOffer)

	api.POST("/parcels", s.RegisterParcel)
	api.GET("/parcels/:parcelID", s.GetParcel)

	api.GET("/vehicles/:vehicleID/location", s.GetVehicleLocation)

	api.POST("/warehouses/:warehouseID/jobs", s.CreateJobs)
	api.POST("/sweeps", s.AdvanceJobs)
	api.POST("/vehicles/reset", s.ResetVehicles)
}

// ErrorBody is the JSON error envelope of every failed request.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// LocationBody carries a geographic point in requests and responses.
type LocationBody struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// OfferRequest asks the pricing service for a quote.
type OfferRequest struct {
	PickupLocation   LocationBody `json:"pickup_location"`
	DeliveryLocation LocationBody `json:"delivery_location"`
}

// OfferResponse is a priced shipping proposal.
type OfferResponse struct {
	ID    string  `json:"id"`
	Price float64 `json:"price"`
}

// RegistrationBody carries the parcel registration details shared by direct
// registration and offer acceptance.
type RegistrationBody struct {
	PickupDate       time.Time    `json:"pickup_date"`
	DeliveryDate     time.Time    `json:"delivery_date"`
	PickupLocation   LocationBody `json:"pickup_location"`
	DeliveryLocation LocationBody `json:"delivery_location"`
}

// AcceptOfferRequest completes a quoted offer for a buyer.
type AcceptOfferRequest struct {
	BuyerID      string           `json:"buyer_id"`
	Registration RegistrationBody `json:"registration"`
}

// ParcelCreatedResponse returns the identifier of a newly registered parcel.
type ParcelCreatedResponse struct {
	ParcelID string `json:"parcel_id"`
}

// ParcelResponse is a parcel's replayed state.
type ParcelResponse struct {
	ID                string       `json:"id"`
	Status            string       `json:"status"`
	PickupDate        time.Time    `json:"pickup_date"`
	DeliveryDate      time.Time    `json:"delivery_date"`
	PickupLocation    LocationBody `json:"pickup_location"`
	DeliveryLocation  LocationBody `json:"delivery_location"`
	TransitWarehouses []string     `json:"transit_warehouses"`
	CurrentWarehouse  *string      `json:"current_warehouse,omitempty"`
	CurrentVehicle    *string      `json:"current_vehicle,omitempty"`
	Version           int          `json:"version"`
}

// CreateJobsRequest triggers batching for one warehouse, day and direction.
type CreateJobsRequest struct {
	Date string `json:"date"`
	Kind string `json:"kind"`
}

// GetOffer handles POST /api/v1/offers.
func (s *Server) GetOffer(ctx echo.Context) error {
	var request OfferRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	pickup, err := toLocation(request.PickupLocation)
	if err != nil {
		return badRequest(ctx, "Invalid pickup location: "+err.Error())
	}
	delivery, err := toLocation(request.DeliveryLocation)
	if err != nil {
		return badRequest(ctx, "Invalid delivery location: "+err.Error())
	}

	offer, err := s.pricing.GetOffer(ctx.Request().Context(), pickup, delivery)
	if err != nil {
		return ctx.JSON(http.StatusBadGateway, ErrorBody{
			Code:    http.StatusBadGateway,
			Message: "Pricing service unavailable",
		})
	}

	return ctx.JSON(http.StatusOK, OfferResponse{
		ID:    offer.ID.String(),
		Price: offer.Price,
	})
}

// AcceptOffer handles POST /api/v1/offers/:offerID/accept.
func (s *Server) AcceptOffer(ctx echo.Context) error {
	offerID, err := kernel.UUIDFromString(ctx.Param("offerID"))
	if err != nil {
		return badRequest(ctx, "Invalid offer id")
	}

	var request AcceptOfferRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	buyerID, err := kernel.UUIDFromString(request.BuyerID)
	if err != nil {
		return badRequest(ctx, "Invalid buyer id")
	}

	parcelID := kernel.NewUUID()
	registration, err := toRegistrationCommand(parcelID, request.Registration)
	if err != nil {
		return badRequest(ctx, "Invalid registration: "+err.Error())
	}

	cmd, err := commands.NewAcceptOfferCommand(offerID, buyerID, registration)
	if err != nil {
		return badRequest(ctx, "Invalid acceptance: "+err.Error())
	}

	if err := s.acceptOfferHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err, "Failed to accept offer")
	}

	return ctx.JSON(http.StatusCreated, ParcelCreatedResponse{ParcelID: parcelID.String()})
}

// RegisterParcel handles POST /api/v1/parcels.
func (s *Server) RegisterParcel(ctx echo.Context) error {
	var request RegistrationBody
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	parcelID := kernel.NewUUID()
	cmd, err := toRegistrationCommand(parcelID, request)
	if err != nil {
		return badRequest(ctx, "Invalid registration: "+err.Error())
	}

	if err := s.registerParcelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err, "Failed to register parcel")
	}

	return ctx.JSON(http.StatusCreated, ParcelCreatedResponse{ParcelID: parcelID.String()})
}

// GetParcel handles GET /api/v1/parcels/:parcelID.
func (s *Server) GetParcel(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("parcelID"))
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	query, err := queries.NewGetParcelQuery(parcelID)
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	state, err := s.getParcelHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, "Parcel not found")
		}
		return internalError(ctx, "Failed to load parcel")
	}

	return ctx.JSON(http.StatusOK, toParcelResponse(state))
}

// GetVehicleLocation handles GET /api/v1/vehicles/:vehicleID/location.
func (s *Server) GetVehicleLocation(ctx echo.Context) error {
	vehicleID, err := kernel.UUIDFromString(ctx.Param("vehicleID"))
	if err != nil {
		return badRequest(ctx, "Invalid vehicle id")
	}

	query, err := queries.NewGetVehicleLocationQuery(vehicleID)
	if err != nil {
		return badRequest(ctx, "Invalid vehicle id")
	}

	response, err := s.getVehicleLocationHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, "Vehicle has no recorded position")
		}
		return internalError(ctx, "Failed to load vehicle position")
	}

	return ctx.JSON(http.StatusOK, LocationBody{
		Latitude:  response.Location.Latitude(),
		Longitude: response.Location.Longitude(),
	})
}

// CreateJobs handles POST /api/v1/warehouses/:warehouseID/jobs.
func (s *Server) CreateJobs(ctx echo.Context) error {
	warehouseID, err := kernel.UUIDFromString(ctx.Param("warehouseID"))
	if err != nil {
		return badRequest(ctx, "Invalid warehouse id")
	}

	var request CreateJobsRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	date, err := time.Parse("2006-01-02", request.Date)
	if err != nil {
		return badRequest(ctx, "Invalid date, expected YYYY-MM-DD")
	}

	kind, err := toKind(request.Kind)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCreateJobsCommand(warehouseID, date, kind)
	if err != nil {
		return badRequest(ctx, "Invalid batching request: "+err.Error())
	}

	if err := s.createJobsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusConflict, ErrorBody{
				Code:    http.StatusConflict,
				Message: "No vehicle has remaining capacity",
			})
		}
		return internalError(ctx, "Failed to create jobs")
	}

	return ctx.NoContent(http.StatusAccepted)
}

// AdvanceJobs handles POST /api/v1/sweeps.
func (s *Server) AdvanceJobs(ctx echo.Context) error {
	cmd, err := commands.NewAdvanceJobsCommand(time.Now())
	if err != nil {
		return internalError(ctx, "Failed to build sweep")
	}

	if err := s.advanceJobsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return internalError(ctx, "Sweep finished with errors: "+err.Error())
	}

	return ctx.NoContent(http.StatusAccepted)
}

// ResetVehicles handles POST /api/v1/vehicles/reset.
func (s *Server) ResetVehicles(ctx echo.Context) error {
	cmd := commands.NewResetVehiclesCommand()

	if err := s.resetVehiclesHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return internalError(ctx, "Failed to reset vehicle capacities")
	}

	return ctx.NoContent(http.StatusAccepted)
}

func toLocation(body LocationBody) (kernel.Location, error) {
	return kernel.NewLocation(body.Latitude, body.Longitude)
}

func toRegistrationCommand(parcelID kernel.UUID, body RegistrationBody) (commands.RegisterParcelCommand, error) {
	pickup, err := toLocation(body.PickupLocation)
	if err != nil {
		return commands.RegisterParcelCommand{}, err
	}

	delivery, err := toLocation(body.DeliveryLocation)
	if err != nil {
		return commands.RegisterParcelCommand{}, err
	}

	return commands.NewRegisterParcelCommand(parcelID,
		body.PickupDate, body.DeliveryDate, pickup, delivery, time.Now().UTC())
}

func toKind(raw string) (vehicle.Kind, error) {
	switch raw {
	case vehicle.KindPickup.String():
		return vehicle.KindPickup, nil
	case vehicle.KindDelivery.String():
		return vehicle.KindDelivery, nil
	default:
		return vehicle.KindUnknown, errors.New("kind must be PICKUP or DELIVERY")
	}
}

func toParcelResponse(state queries.GetParcelQueryResponse) ParcelResponse {
	warehouses := make([]string, 0, len(state.TransitWarehouses))
	for _, id := range state.TransitWarehouses {
		warehouses = append(warehouses, id.String())
	}

	response := ParcelResponse{
		ID:         state.ID.String(),
		Status:     state.Status,
		PickupDate: state.PickupDate,
		DeliveryDate: state.DeliveryDate,
		PickupLocation: LocationBody{
			Latitude:  state.PickupLocation.Latitude(),
			Longitude: state.PickupLocation.Longitude(),
		},
		DeliveryLocation: LocationBody{
			Latitude:  state.DeliveryLocation.Latitude(),
			Longitude: state.DeliveryLocation.Longitude(),
		},
		TransitWarehouses: warehouses,
		Version:           state.Version,
	}

	if state.CurrentWarehouse != nil {
		raw := state.CurrentWarehouse.String()
		response.CurrentWarehouse = &raw
	}
	if state.CurrentVehicle != nil {
		raw := state.CurrentVehicle.String()
		response.CurrentVehicle = &raw
	}

	return response
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorBody{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func notFound(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusNotFound, ErrorBody{
		Code:    http.StatusNotFound,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorBody{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}

func commandError(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return badRequest(ctx, err.Error())
	case errors.Is(err, parcel.ErrInvalidTransition):
		return ctx.JSON(http.StatusConflict, ErrorBody{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		return internalError(ctx, fallback)
	}
}
