package repository

import (
	"time"

	"github.com/Maya170605/customs-backend/internal/app/model"
	"github.com/Maya170605/customs-backend/pkg/logger"
	"gorm.io/gorm"
)

type VehicleRepository interface {
	Create(vehicle *model.Vehicle) error
	FindByID(id uint) (*model.Vehicle, error)
	FindAll() ([]model.Vehicle, error)
	FindByClientID(clientID uint) ([]model.Vehicle, error)
	FindByDriverID(driverID uint) ([]model.Vehicle, error)
	FindByType(vehicleType string) ([]model.Vehicle, error)
	FindByLicensePlate(licensePlate string) (*model.Vehicle, error)
	FindAvailable() ([]model.Vehicle, error)
	FindRented() ([]model.Vehicle, error)
	ExistsByLicensePlate(licensePlate string) (bool, error)
	Update(vehicle *model.Vehicle) error
	Delete(id uint) error
	ClaimForRental(vehicleID, driverID uint, start, end time.Time) (bool, error)
	ReleaseFromRental(vehicleID, driverID uint) (bool, error)
	CountByClient(clientID uint) (int64, error)
	CountTrucksByClient(clientID uint) (int64, error)
	TotalCapacityByClient(clientID uint) (float64, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(vehicle *model.Vehicle) error {
	if err := r.db.Create(vehicle).Error; err != nil {
		logger.Error("Failed to create vehicle in database", err, map[string]interface{}{
			"license_plate": vehicle.LicensePlate,
		})
		return err
	}
	return nil
}

func (r *vehicleRepository) FindByID(id uint) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	err := r.db.Preload("Client").Preload("Driver").First(&vehicle, id).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) FindAll() ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := r.db.Preload("Client").Preload("Driver").Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepository) FindByClientID(clientID uint) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := r.db.Preload("Client").Preload("Driver").
		Where("client_id = ?", clientID).Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepository) FindByDriverID(driverID uint) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := r.db.Preload("Client").Preload("Driver").
		Where("driver_id = ?", driverID).Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepository) FindByType(vehicleType string) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := r.db.Preload("Client").Preload("Driver").
		Where("LOWER(vehicle_type) LIKE LOWER(?)", "%"+vehicleType+"%").
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepository) FindByLicensePlate(licensePlate string) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	err := r.db.Preload("Client").Preload("Driver").
		Where("license_plate = ?", licensePlate).First(&vehicle).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// FindAvailable treats a NULL is_available flag as available, matching the
// rental precondition.
func (r *vehicleRepository) FindAvailable() ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := r.db.Preload("Client").
		Where("driver_id IS NULL AND (is_available IS NULL OR is_available = ?)", true).
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepository) FindRented() ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := r.db.Preload("Client").Preload("Driver").
		Where("driver_id IS NOT NULL").Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepository) ExistsByLicensePlate(licensePlate string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Vehicle{}).Where("license_plate = ?", licensePlate).Count(&count).Error
	return count > 0, err
}

func (r *vehicleRepository) Update(vehicle *model.Vehicle) error {
	return r.db.Save(vehicle).Error
}

func (r *vehicleRepository) Delete(id uint) error {
	return r.db.Delete(&model.Vehicle{}, id).Error
}

// ClaimForRental atomically assigns the driver to a free vehicle. The
// conditional UPDATE is the serializing device against concurrent rents: only
// one of several racing calls can match the free-vehicle predicate, everyone
// else sees zero rows affected and reports the vehicle as already rented.
func (r *vehicleRepository) ClaimForRental(vehicleID, driverID uint, start, end time.Time) (bool, error) {
	notAvailable := false
	res := r.db.Model(&model.Vehicle{}).
		Where("id = ? AND driver_id IS NULL AND (is_available IS NULL OR is_available = ?)", vehicleID, true).
		Updates(map[string]interface{}{
			"driver_id":         driverID,
			"is_available":      notAvailable,
			"rental_start_date": start,
			"rental_end_date":   end,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ReleaseFromRental clears the rental only when the given driver holds it.
func (r *vehicleRepository) ReleaseFromRental(vehicleID, driverID uint) (bool, error) {
	res := r.db.Model(&model.Vehicle{}).
		Where("id = ? AND driver_id = ?", vehicleID, driverID).
		Updates(map[string]interface{}{
			"driver_id":         nil,
			"is_available":      true,
			"rental_start_date": nil,
			"rental_end_date":   nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *vehicleRepository) CountByClient(clientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Vehicle{}).Where("client_id = ?", clientID).Count(&count).Error
	return count, err
}

func (r *vehicleRepository) CountTrucksByClient(clientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Vehicle{}).
		Where("client_id = ? AND LOWER(vehicle_type) LIKE ?", clientID, "%truck%").
		Count(&count).Error
	return count, err
}

func (r *vehicleRepository) TotalCapacityByClient(clientID uint) (float64, error) {
	var total float64
	err := r.db.Model(&model.Vehicle{}).
		Where("client_id = ?", clientID).
		Select("COALESCE(SUM(capacity), 0)").Scan(&total).Error
	return total, err
}
