package service

import (
	"strings"
	"time"

	"github.com/Maya170605/customs-backend/internal/app/model"
	"github.com/Maya170605/customs-backend/internal/app/repository"
	"github.com/Maya170605/customs-backend/internal/errors"
	"github.com/Maya170605/customs-backend/pkg/logger"
)

const defaultRentalDays = 30

// VehicleRequest carries the mutable vehicle fields for create and update.
type VehicleRequest struct {
	LicensePlate      string  `json:"licensePlate"`
	Model             string  `json:"model"`
	VehicleType       string  `json:"vehicleType"`
	YearOfManufacture int     `json:"yearOfManufacture"`
	Capacity          float64 `json:"capacity"`
	ClientID          uint    `json:"clientId"`
}

// RentRequest selects the rental end date: a positive day count, an explicit
// ISO-8601 end date, or neither for the default term.
type RentRequest struct {
	Days    *int   `json:"days"`
	EndDate string `json:"endDate"`
}

// VehicleStats is the per-client aggregate payload.
type VehicleStats struct {
	TotalVehicles int64   `json:"totalVehicles"`
	TrucksCount   int64   `json:"trucksCount"`
	TotalCapacity float64 `json:"totalCapacity"`
}

type VehicleService interface {
	Create(req VehicleRequest) (*model.Vehicle, error)
	GetByID(id uint) (*model.Vehicle, error)
	GetAll() ([]model.Vehicle, error)
	GetAvailable() ([]model.Vehicle, error)
	GetRented() ([]model.Vehicle, error)
	GetByClientID(clientID uint) ([]model.Vehicle, error)
	GetRentedByDriver(driverID uint) ([]model.Vehicle, error)
	GetByType(vehicleType string) ([]model.Vehicle, error)
	GetByLicensePlate(plate string) (*model.Vehicle, error)
	ExistsByLicensePlate(plate string) (bool, error)
	Update(id uint, req VehicleRequest) (*model.Vehicle, error)
	Delete(id uint) error
	Rent(vehicleID, driverID uint, req RentRequest) (*model.Vehicle, error)
	Return(vehicleID, driverID uint) (*model.Vehicle, error)
	StatsByClient(clientID uint) (*VehicleStats, error)
	IsOwner(id, userID uint) (bool, error)
}

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
}

func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
) VehicleService {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
	}
}

func (s *vehicleService) Create(req VehicleRequest) (*model.Vehicle, error) {
	if req.ClientID == 0 {
		return nil, errors.Validation("ID клиента обязателен")
	}
	if strings.TrimSpace(req.LicensePlate) == "" {
		return nil, errors.Validation("Госномер обязателен")
	}
	if _, err := s.userRepo.FindByID(req.ClientID); err != nil {
		return nil, errors.ParseDBError(err, "Клиент не найден")
	}

	exists, err := s.vehicleRepo.ExistsByLicensePlate(req.LicensePlate)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Conflictf("Транспорт с номером %s уже существует", req.LicensePlate)
	}

	available := true
	vehicle := &model.Vehicle{
		LicensePlate:      req.LicensePlate,
		Model:             req.Model,
		VehicleType:       req.VehicleType,
		YearOfManufacture: req.YearOfManufacture,
		Capacity:          req.Capacity,
		ClientID:          req.ClientID,
		IsAvailable:       &available,
	}

	if err := s.vehicleRepo.Create(vehicle); err != nil {
		return nil, errors.ParseDBError(err, "Транспорт не найден")
	}

	logger.Info("Vehicle created", map[string]interface{}{
		"vehicle_id":    vehicle.ID,
		"license_plate": vehicle.LicensePlate,
		"client_id":     vehicle.ClientID,
	})

	return s.vehicleRepo.FindByID(vehicle.ID)
}

func (s *vehicleService) GetByID(id uint) (*model.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(id)
	if err != nil {
		return nil, errors.ParseDBError(err, "Транспорт не найден")
	}
	return vehicle, nil
}

func (s *vehicleService) GetAll() ([]model.Vehicle, error) {
	return s.vehicleRepo.FindAll()
}

func (s *vehicleService) GetAvailable() ([]model.Vehicle, error) {
	return s.vehicleRepo.FindAvailable()
}

func (s *vehicleService) GetRented() ([]model.Vehicle, error) {
	return s.vehicleRepo.FindRented()
}

func (s *vehicleService) GetByClientID(clientID uint) ([]model.Vehicle, error) {
	return s.vehicleRepo.FindByClientID(clientID)
}

func (s *vehicleService) GetRentedByDriver(driverID uint) ([]model.Vehicle, error) {
	return s.vehicleRepo.FindByDriverID(driverID)
}

func (s *vehicleService) GetByType(vehicleType string) ([]model.Vehicle, error) {
	return s.vehicleRepo.FindByType(vehicleType)
}

func (s *vehicleService) GetByLicensePlate(plate string) (*model.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByLicensePlate(plate)
	if err != nil {
		return nil, errors.ParseDBError(err, "Транспорт не найден")
	}
	return vehicle, nil
}

func (s *vehicleService) ExistsByLicensePlate(plate string) (bool, error) {
	return s.vehicleRepo.ExistsByLicensePlate(plate)
}

func (s *vehicleService) Update(id uint, req VehicleRequest) (*model.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(id)
	if err != nil {
		return nil, errors.ParseDBError(err, "Транспорт не найден")
	}

	if req.LicensePlate != "" && req.LicensePlate != vehicle.LicensePlate {
		exists, err := s.vehicleRepo.ExistsByLicensePlate(req.LicensePlate)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errors.Conflictf("Транспорт с номером %s уже существует", req.LicensePlate)
		}
		vehicle.LicensePlate = req.LicensePlate
	}

	vehicle.Model = req.Model
	vehicle.VehicleType = req.VehicleType
	vehicle.YearOfManufacture = req.YearOfManufacture
	vehicle.Capacity = req.Capacity

	if err := s.vehicleRepo.Update(vehicle); err != nil {
		return nil, errors.ParseDBError(err, "Транспорт не найден")
	}
	return vehicle, nil
}

func (s *vehicleService) Delete(id uint) error {
	if _, err := s.vehicleRepo.FindByID(id); err != nil {
		return errors.ParseDBError(err, "Транспорт не найден")
	}
	return s.vehicleRepo.Delete(id)
}

// Rent assigns the vehicle to the driver for the requested term. The claim
// itself is a single conditional UPDATE, so of two drivers racing for the
// same vehicle exactly one wins and the other is told it is already rented.
func (s *vehicleService) Rent(vehicleID, driverID uint, req RentRequest) (*model.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(vehicleID)
	if err != nil {
		return nil, errors.ParseDBError(err, "Транспорт не найден")
	}

	driver, err := s.userRepo.FindByID(driverID)
	if err != nil {
		return nil, errors.ParseDBError(err, "Водитель не найден")
	}
	if driver.Role != model.RoleDriver {
		return nil, errors.Validation("Пользователь не является водителем")
	}

	if vehicle.DriverID != nil {
		if *vehicle.DriverID == driverID {
			return nil, errors.Lifecycle("Транспорт уже арендован")
		}
		return nil, errors.Lifecycle("Транспорт уже арендован другим водителем")
	}

	start := time.Now()
	end, err := resolveRentalEnd(start, req)
	if err != nil {
		return nil, err
	}

	claimed, err := s.vehicleRepo.ClaimForRental(vehicleID, driverID, start, end)
	if err != nil {
		return nil, err
	}
	if !claimed {
		// Lost the race to another rent call between read and update.
		return nil, errors.Lifecycle("Транспорт уже арендован")
	}

	logger.Info("Vehicle rented", map[string]interface{}{
		"vehicle_id": vehicleID,
		"driver_id":  driverID,
		"end_date":   end,
	})

	return s.vehicleRepo.FindByID(vehicleID)
}

// resolveRentalEnd picks the rental end date: a positive day count, an
// explicit end date, or the default term. Date-only input is accepted and
// read as midnight.
func resolveRentalEnd(start time.Time, req RentRequest) (time.Time, error) {
	if req.Days != nil {
		if *req.Days <= 0 {
			return time.Time{}, errors.Validation("Количество дней аренды должно быть положительным")
		}
		return start.AddDate(0, 0, *req.Days), nil
	}

	if req.EndDate != "" {
		raw := req.EndDate
		if len(raw) == len("2006-01-02") {
			raw += "T00:00:00"
		}
		end, err := time.ParseInLocation("2006-01-02T15:04:05", raw, time.Local)
		if err != nil {
			return time.Time{}, errors.Validation("Неверный формат даты окончания аренды")
		}
		return end, nil
	}

	return start.AddDate(0, 0, defaultRentalDays), nil
}

// Return releases the vehicle, but only for the driver who holds it.
func (s *vehicleService) Return(vehicleID, driverID uint) (*model.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(vehicleID)
	if err != nil {
		return nil, errors.ParseDBError(err, "Транспорт не найден")
	}

	if vehicle.DriverID == nil || *vehicle.DriverID != driverID {
		return nil, errors.Lifecycle("Вы не арендовали этот транспорт")
	}

	released, err := s.vehicleRepo.ReleaseFromRental(vehicleID, driverID)
	if err != nil {
		return nil, err
	}
	if !released {
		return nil, errors.Lifecycle("Вы не арендовали этот транспорт")
	}

	logger.Info("Vehicle returned", map[string]interface{}{
		"vehicle_id": vehicleID,
		"driver_id":  driverID,
	})

	return s.vehicleRepo.FindByID(vehicleID)
}

func (s *vehicleService) StatsByClient(clientID uint) (*VehicleStats, error) {
	total, err := s.vehicleRepo.CountByClient(clientID)
	if err != nil {
		return nil, err
	}
	trucks, err := s.vehicleRepo.CountTrucksByClient(clientID)
	if err != nil {
		return nil, err
	}
	capacity, err := s.vehicleRepo.TotalCapacityByClient(clientID)
	if err != nil {
		return nil, err
	}

	return &VehicleStats{
		TotalVehicles: total,
		TrucksCount:   trucks,
		TotalCapacity: capacity,
	}, nil
}

// IsOwner reports whether the user is the vehicle's client.
func (s *vehicleService) IsOwner(id, userID uint) (bool, error) {
	vehicle, err := s.vehicleRepo.FindByID(id)
	if err != nil {
		return false, errors.ParseDBError(err, "Транспорт не найден")
	}
	return vehicle.ClientID == userID, nil
}
