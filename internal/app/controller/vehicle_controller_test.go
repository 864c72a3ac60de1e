package controller_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *testServer) createVehicle(t *testing.T, token, plate string, clientID uint) uint {
	t.Helper()
	w := s.request(t, http.MethodPost, "/api/vehicles", token, map[string]interface{}{
		"licensePlate": plate,
		"model":        "MAN TGX",
		"vehicleType":  "Truck",
		"capacity":     20,
		"clientId":     clientID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id, _ := decodeBody(t, w)["id"].(float64)
	return uint(id)
}

func TestVehicleRentReturnOverHTTP(t *testing.T) {
	s := setupTestServer(t)
	_, clientID := s.registerAndLogin(t, clientRegistration("acme", "123456789"))
	driverToken, driverID := s.registerAndLogin(t, driverRegistration("ivan"))
	otherDriverToken, _ := s.registerAndLogin(t, driverRegistration("petr"))
	adminToken := s.loginAdmin(t)

	vehicleID := s.createVehicle(t, adminToken, "AB1234-7", clientID)

	t.Run("Driver rents with day count", func(t *testing.T) {
		w := s.request(t, http.MethodPost, fmt.Sprintf("/api/vehicles/%d/rent", vehicleID), driverToken,
			map[string]int{"days": 7})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decodeBody(t, w)
		assert.Equal(t, false, body["isAvailable"])
		assert.EqualValues(t, driverID, body["driverId"])
		assert.NotEmpty(t, body["rentalStartDate"])
		assert.NotEmpty(t, body["rentalEndDate"])
	})

	t.Run("Second driver is told the vehicle is taken", func(t *testing.T) {
		w := s.request(t, http.MethodPost, fmt.Sprintf("/api/vehicles/%d/rent", vehicleID), otherDriverToken, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Транспорт уже арендован другим водителем", decodeBody(t, w)["error"])
	})

	t.Run("Only the holder may return", func(t *testing.T) {
		w := s.request(t, http.MethodPost, fmt.Sprintf("/api/vehicles/%d/return", vehicleID), otherDriverToken, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Вы не арендовали этот транспорт", decodeBody(t, w)["error"])
	})

	t.Run("Holder returns the vehicle", func(t *testing.T) {
		w := s.request(t, http.MethodPost, fmt.Sprintf("/api/vehicles/%d/return", vehicleID), driverToken, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decodeBody(t, w)
		assert.Equal(t, true, body["isAvailable"])
		assert.Nil(t, body["driverId"])
		assert.Nil(t, body["rentalStartDate"])
	})
}

func TestVehicleRentRoleGuards(t *testing.T) {
	s := setupTestServer(t)
	clientToken, clientID := s.registerAndLogin(t, clientRegistration("acme", "123456789"))
	adminToken := s.loginAdmin(t)
	vehicleID := s.createVehicle(t, adminToken, "AB1234-7", clientID)

	t.Run("Client cannot rent", func(t *testing.T) {
		w := s.request(t, http.MethodPost, fmt.Sprintf("/api/vehicles/%d/rent", vehicleID), clientToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Anonymous cannot rent", func(t *testing.T) {
		w := s.request(t, http.MethodPost, fmt.Sprintf("/api/vehicles/%d/rent", vehicleID), "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Client cannot create vehicles", func(t *testing.T) {
		w := s.request(t, http.MethodPost, "/api/vehicles", clientToken, map[string]interface{}{
			"licensePlate": "XX0000-0",
			"clientId":     clientID,
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestVehicleOwnershipAndLookups(t *testing.T) {
	s := setupTestServer(t)
	acmeToken, acmeID := s.registerAndLogin(t, clientRegistration("acme", "123456789"))
	globexToken, _ := s.registerAndLogin(t, clientRegistration("globex", "987654321"))
	adminToken := s.loginAdmin(t)

	vehicleID := s.createVehicle(t, adminToken, "AB1234-7", acmeID)

	t.Run("Owner updates the vehicle", func(t *testing.T) {
		w := s.request(t, http.MethodPut, fmt.Sprintf("/api/vehicles/%d", vehicleID), acmeToken, map[string]interface{}{
			"licensePlate": "AB1234-7",
			"model":        "MAN TGX 2024",
			"vehicleType":  "Truck",
			"capacity":     22,
			"clientId":     acmeID,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "MAN TGX 2024", decodeBody(t, w)["model"])
	})

	t.Run("Non-owner client is rejected", func(t *testing.T) {
		w := s.request(t, http.MethodPut, fmt.Sprintf("/api/vehicles/%d", vehicleID), globexToken, map[string]interface{}{
			"licensePlate": "AB1234-7",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Missing vehicle yields 404 not 403", func(t *testing.T) {
		w := s.request(t, http.MethodDelete, "/api/vehicles/99999", globexToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Plate lookup honors ownership", func(t *testing.T) {
		w := s.request(t, http.MethodGet, "/api/vehicles/license-plate/AB1234-7", acmeToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = s.request(t, http.MethodGet, "/api/vehicles/license-plate/AB1234-7", globexToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Plate availability check is public", func(t *testing.T) {
		w := s.request(t, http.MethodGet, "/api/vehicles/check-license-plate/AB1234-7", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decodeBody(t, w)["exists"])
	})

	t.Run("Owner deletes with 204", func(t *testing.T) {
		w := s.request(t, http.MethodDelete, fmt.Sprintf("/api/vehicles/%d", vehicleID), acmeToken, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
