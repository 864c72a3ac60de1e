package controller

import (
	"net/http"

	"github.com/Maya170605/customs-backend/internal/app/model"
	"github.com/Maya170605/customs-backend/internal/app/service"
	apperrors "github.com/Maya170605/customs-backend/internal/errors"
	"github.com/Maya170605/customs-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type VehicleController struct {
	vehicleService service.VehicleService
}

func NewVehicleController(vehicleService service.VehicleService) *VehicleController {
	return &VehicleController{vehicleService: vehicleService}
}

// Create registers a vehicle for a client
// POST /api/vehicles
func (ctrl *VehicleController) Create(c *gin.Context) {
	var req service.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond400(c, "Некорректные данные транспорта")
		return
	}

	vehicle, err := ctrl.vehicleService.Create(req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehicle.ToDTO())
}

// GetByID returns one vehicle
// GET /api/vehicles/:id
func (ctrl *VehicleController) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	vehicle, err := ctrl.vehicleService.GetByID(id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle.ToDTO())
}

// GetAll lists every vehicle
// GET /api/vehicles
func (ctrl *VehicleController) GetAll(c *gin.Context) {
	vehicles, err := ctrl.vehicleService.GetAll()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toVehicleDTOs(vehicles))
}

// GetAvailable lists vehicles free for rental
// GET /api/vehicles/available
func (ctrl *VehicleController) GetAvailable(c *gin.Context) {
	vehicles, err := ctrl.vehicleService.GetAvailable()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toVehicleDTOs(vehicles))
}

// GetRented lists all vehicles currently held by a driver
// GET /api/vehicles/rented
func (ctrl *VehicleController) GetRented(c *gin.Context) {
	vehicles, err := ctrl.vehicleService.GetRented()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toVehicleDTOs(vehicles))
}

// GetRentedByDriver lists the driver's current rentals; drivers see only
// their own
// GET /api/vehicles/driver/:driverId/rented
func (ctrl *VehicleController) GetRentedByDriver(c *gin.Context) {
	driverID, ok := parseIDParam(c, "driverId")
	if !ok {
		return
	}
	if !requireSelfOrAdmin(c, driverID) {
		return
	}

	vehicles, err := ctrl.vehicleService.GetRentedByDriver(driverID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toVehicleDTOs(vehicles))
}

// GetByClient lists a client's vehicles; clients see only their own
// GET /api/vehicles/client/:clientId
func (ctrl *VehicleController) GetByClient(c *gin.Context) {
	clientID, ok := parseIDParam(c, "clientId")
	if !ok {
		return
	}
	if !requireSelfOrAdmin(c, clientID) {
		return
	}

	vehicles, err := ctrl.vehicleService.GetByClientID(clientID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toVehicleDTOs(vehicles))
}

// GetByType lists vehicles whose type contains the given fragment
// GET /api/vehicles/type/:vehicleType
func (ctrl *VehicleController) GetByType(c *gin.Context) {
	vehicles, err := ctrl.vehicleService.GetByType(c.Param("vehicleType"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toVehicleDTOs(vehicles))
}

// GetByLicensePlate returns the vehicle with the given plate; a client must
// own it
// GET /api/vehicles/license-plate/:plate
func (ctrl *VehicleController) GetByLicensePlate(c *gin.Context) {
	vehicle, err := ctrl.vehicleService.GetByLicensePlate(c.Param("plate"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if !middleware.IsAdmin(c) && !isSelf(c, vehicle.ClientID) {
		apperrors.Respond403(c, "Доступ запрещен")
		return
	}
	c.JSON(http.StatusOK, vehicle.ToDTO())
}

// CheckLicensePlate reports whether a plate is taken
// GET /api/vehicles/check-license-plate/:plate
func (ctrl *VehicleController) CheckLicensePlate(c *gin.Context) {
	exists, err := ctrl.vehicleService.ExistsByLicensePlate(c.Param("plate"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// Update rewrites a vehicle; owners only, unless administrator
// PUT /api/vehicles/:id
func (ctrl *VehicleController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !ctrl.requireOwnership(c, id) {
		return
	}

	var req service.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond400(c, "Некорректные данные транспорта")
		return
	}

	vehicle, err := ctrl.vehicleService.Update(id, req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle.ToDTO())
}

// Delete removes a vehicle; owners only, unless administrator
// DELETE /api/vehicles/:id
func (ctrl *VehicleController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !ctrl.requireOwnership(c, id) {
		return
	}

	if err := ctrl.vehicleService.Delete(id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Rent assigns the vehicle to the calling driver
// POST /api/vehicles/:id/rent
func (ctrl *VehicleController) Rent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// Body is optional: no body means the default rental term.
	var req service.RentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond400(c, "Некорректные данные аренды")
			return
		}
	}

	driverID, _ := middleware.GetUserID(c)
	vehicle, err := ctrl.vehicleService.Rent(id, driverID, req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle.ToDTO())
}

// Return releases the vehicle held by the calling driver
// POST /api/vehicles/:id/return
func (ctrl *VehicleController) Return(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	driverID, _ := middleware.GetUserID(c)
	vehicle, err := ctrl.vehicleService.Return(id, driverID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle.ToDTO())
}

// StatsByClient returns the client's vehicle aggregates
// GET /api/vehicles/client/:clientId/stats
func (ctrl *VehicleController) StatsByClient(c *gin.Context) {
	clientID, ok := parseIDParam(c, "clientId")
	if !ok {
		return
	}
	if !requireSelfOrAdmin(c, clientID) {
		return
	}

	stats, err := ctrl.vehicleService.StatsByClient(clientID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// requireOwnership gates vehicle mutations on the admin/owner rule, with a
// 404 winning over a 403 when the vehicle does not exist.
func (ctrl *VehicleController) requireOwnership(c *gin.Context, vehicleID uint) bool {
	if middleware.IsAdmin(c) {
		return true
	}

	userID, _ := middleware.GetUserID(c)
	owner, err := ctrl.vehicleService.IsOwner(vehicleID, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return false
	}
	if !owner {
		apperrors.Respond403(c, "Доступ запрещен")
		return false
	}
	return true
}

func toVehicleDTOs(vehicles []model.Vehicle) []model.VehicleDTO {
	dtos := make([]model.VehicleDTO, 0, len(vehicles))
	for i := range vehicles {
		dtos = append(dtos, vehicles[i].ToDTO())
	}
	return dtos
}
