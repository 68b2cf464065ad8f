package routing_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parcelflow/internal/adapters/out/routing"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/model/vehicle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Optimize(t *testing.T) {
	vehicleID := kernel.NewUUID()
	parcelID := kernel.NewUUID()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/optimize", r.URL.Path)

		var request map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Len(t, request["orders"], 1)
		assert.Len(t, request["vehicles"], 1)

		response := map[string]any{
			"plans": []map[string]any{{
				"vehicle_id":       vehicleID.String(),
				"duration_seconds": 1800,
				"steps": []map[string]any{{
					"parcel_id":              parcelID.String(),
					"point":                  map[string]float64{"latitude": 48.9, "longitude": 2.4},
					"arrival_offset_seconds": 600,
				}},
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
	defer server.Close()

	hub, err := kernel.NewLocation(48.85, 2.35)
	require.NoError(t, err)
	point, err := kernel.NewLocation(48.9, 2.4)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), parcelID, kernel.NewUUID(),
		vehicle.KindDelivery, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), point, hub)
	require.NoError(t, err)

	v, err := vehicle.NewVehicle(vehicleID, kernel.NewUUID(), vehicle.KindDelivery)
	require.NoError(t, err)

	plans, err := routing.NewClient(server.URL).Optimize(context.Background(),
		hub, []*order.Order{o}, []*vehicle.Vehicle{v})
	require.NoError(t, err)

	require.Len(t, plans, 1)
	assert.True(t, plans[0].VehicleID.IsEqual(vehicleID))
	assert.Equal(t, 30*time.Minute, plans[0].Duration)
	require.Len(t, plans[0].Steps, 1)
	assert.True(t, plans[0].Steps[0].ParcelID.IsEqual(parcelID))
	assert.Equal(t, 10*time.Minute, plans[0].Steps[0].ArrivalOffset)
}

func TestClient_OptimizeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no solution", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	hub, err := kernel.NewLocation(48.85, 2.35)
	require.NoError(t, err)

	_, err = routing.NewClient(server.URL).Optimize(context.Background(), hub, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}
