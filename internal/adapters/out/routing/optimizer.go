// Package routing calls the external route optimization service over HTTP.
package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/model/vehicle"
	"parcelflow/internal/core/ports"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

type pointRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type orderRequest struct {
	ParcelID string       `json:"parcel_id"`
	Point    pointRequest `json:"point"`
}

type optimizeRequest struct {
	Depot    pointRequest   `json:"depot"`
	Orders   []orderRequest `json:"orders"`
	Vehicles []string       `json:"vehicles"`
}

type stepResponse struct {
	ParcelID             string       `json:"parcel_id"`
	Point                pointRequest `json:"point"`
	ArrivalOffsetSeconds int64        `json:"arrival_offset_seconds"`
}

type planResponse struct {
	VehicleID       string         `json:"vehicle_id"`
	DurationSeconds int64          `json:"duration_seconds"`
	Steps           []stepResponse `json:"steps"`
}

type optimizeResponse struct {
	Plans []planResponse `json:"plans"`
}

// Client implements ports.RouteOptimizer against the HTTP optimization
// service.
type Client struct {
	session *http.Client
	baseURL string
}

// NewClient creates an optimizer client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Optimize splits a batch of same-warehouse orders over the given vehicles.
func (c *Client) Optimize(
	ctx context.Context,
	warehouseLocation kernel.Location,
	orders []*order.Order,
	vehicles []*vehicle.Vehicle,
) ([]ports.RoutePlan, error) {
	request := optimizeRequest{
		Depot: pointRequest{
			Latitude:  warehouseLocation.Latitude(),
			Longitude: warehouseLocation.Longitude(),
		},
		Orders:   make([]orderRequest, 0, len(orders)),
		Vehicles: make([]string, 0, len(vehicles)),
	}
	for _, o := range orders {
		request.Orders = append(request.Orders, orderRequest{
			ParcelID: o.ParcelID().String(),
			Point: pointRequest{
				Latitude:  o.Location().Latitude(),
				Longitude: o.Location().Longitude(),
			},
		})
	}
	for _, v := range vehicles {
		request.Vehicles = append(request.Vehicles, v.ID().String())
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/optimize", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}

	var decoded optimizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return toPlans(decoded)
}

func toPlans(decoded optimizeResponse) ([]ports.RoutePlan, error) {
	plans := make([]ports.RoutePlan, 0, len(decoded.Plans))
	for _, plan := range decoded.Plans {
		vehicleID, err := kernel.UUIDFromString(plan.VehicleID)
		if err != nil {
			return nil, err
		}

		steps := make([]ports.RouteStep, 0, len(plan.Steps))
		for _, step := range plan.Steps {
			parcelID, err := kernel.UUIDFromString(step.ParcelID)
			if err != nil {
				return nil, err
			}

			location, err := kernel.NewLocation(step.Point.Latitude, step.Point.Longitude)
			if err != nil {
				return nil, err
			}

			steps = append(steps, ports.RouteStep{
				ParcelID:      parcelID,
				Location:      location,
				ArrivalOffset: time.Duration(step.ArrivalOffsetSeconds) * time.Second,
			})
		}

		plans = append(plans, ports.RoutePlan{
			VehicleID: vehicleID,
			Duration:  time.Duration(plan.DurationSeconds) * time.Second,
			Steps:     steps,
		})
	}

	return plans, nil
}
